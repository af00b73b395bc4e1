// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/DutchRican/a11y-reports/shared"
	"github.com/DutchRican/a11y-reports/utils"
	"github.com/google/uuid"
	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// objectStore is the part of the minio client the archiver needs.
type objectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioArchiver struct {
	store  objectStore
	bucket string
	now    func() time.Time
}

var _ shared.UploadArchiver = (*minioArchiver)(nil)

func NewMinioArchiver(ctx context.Context, cfg shared.Config) (*minioArchiver, error) {
	mc, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: "us-east-1",
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create object storage client")
	}
	return newMinioArchiver(ctx, mc, cfg.UploadsBucket)
}

func newMinioArchiver(ctx context.Context, store objectStore, bucket string) (*minioArchiver, error) {
	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "could not check bucket %s", bucket)
	}
	if !exists {
		if err := store.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "could not create bucket %s", bucket)
		}
		slog.Info("created uploads bucket", "bucket", bucket)
	}

	return &minioArchiver{
		store:  store,
		bucket: bucket,
		now:    time.Now,
	}, nil
}

// ObjectKey is uploads/<project id>/<unix millis>-<sanitized file name>.
func ObjectKey(projectID uuid.UUID, name string, at time.Time) string {
	return fmt.Sprintf("uploads/%s/%d-%s", projectID, at.UnixMilli(), utils.SafeFileName(name))
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	case strings.HasSuffix(name, ".zip"):
		return "application/zip"
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return "application/gzip"
	case strings.HasSuffix(name, ".tar"):
		return "application/x-tar"
	}
	return "application/octet-stream"
}

func (a *minioArchiver) Store(ctx context.Context, projectID uuid.UUID, name string, data []byte) error {
	key := ObjectKey(projectID, name, a.now())
	_, err := a.store.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(strings.ToLower(name)),
	})
	if err != nil {
		return errors.Wrapf(err, "could not store %s", key)
	}
	slog.Debug("archived upload", "bucket", a.bucket, "key", key, "size", len(data))
	return nil
}

func (a *minioArchiver) Enabled() bool {
	return true
}

type noopArchiver struct{}

var _ shared.UploadArchiver = noopArchiver{}

func NewNoopArchiver() noopArchiver {
	return noopArchiver{}
}

func (noopArchiver) Store(context.Context, uuid.UUID, string, []byte) error {
	return nil
}

func (noopArchiver) Enabled() bool {
	return false
}
