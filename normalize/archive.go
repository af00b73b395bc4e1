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

package normalize

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

var (
	ErrArchiveTooManyEntries = errors.New("archive contains too many entries")
	ErrArchiveEntryTooLarge  = errors.New("archive entry is too large")
	ErrArchiveTooLarge       = errors.New("archive content is too large")
	ErrArchiveEmpty          = errors.New("archive does not contain any json files")
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zipMagic  = []byte{'P', 'K', 0x03, 0x04}
)

type ArchiveLimits struct {
	MaxEntries    int
	MaxEntryBytes int64
	// MaxTotalBytes caps the decompressed size of all json entries together.
	MaxTotalBytes int64
}

var DefaultArchiveLimits = ArchiveLimits{
	MaxEntries:    1000,
	MaxEntryBytes: 20 << 20,
	MaxTotalBytes: 200 << 20,
}

// entryReader reads entries while keeping track of the archive wide budget.
type entryReader struct {
	limits    ArchiveLimits
	remaining int64
	entries   []ArchiveEntry
}

func newEntryReader(limits ArchiveLimits) *entryReader {
	return &entryReader{limits: limits, remaining: limits.MaxTotalBytes}
}

func (e *entryReader) add(name string, r io.Reader) error {
	if len(e.entries) >= e.limits.MaxEntries {
		return ErrArchiveTooManyEntries
	}

	limit := e.limits.MaxEntryBytes
	tooLarge := ErrArchiveEntryTooLarge
	if e.remaining < limit {
		limit = e.remaining
		tooLarge = ErrArchiveTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return errors.Wrapf(err, "could not read %s", name)
	}
	if int64(len(data)) > limit {
		return errors.Wrapf(tooLarge, "could not read %s", name)
	}
	e.remaining -= int64(len(data))
	e.entries = append(e.entries, ArchiveEntry{Name: name, Data: data})
	return nil
}

type ArchiveEntry struct {
	Name string
	Data []byte
}

func isScanFile(name string) bool {
	base := path.Base(name)
	if strings.HasPrefix(base, "._") || strings.HasPrefix(name, "__MACOSX/") || strings.Contains(name, "/__MACOSX/") {
		return false
	}
	return strings.EqualFold(path.Ext(base), ".json")
}

// ReadArchive returns the json files of a tar, tar.gz, tar.xz or zip archive.
// The compression is detected from the content, not from the file name.
func ReadArchive(r io.Reader, limits ArchiveLimits) ([]ArchiveEntry, error) {
	if limits.MaxEntries <= 0 {
		limits.MaxEntries = DefaultArchiveLimits.MaxEntries
	}
	if limits.MaxEntryBytes <= 0 {
		limits.MaxEntryBytes = DefaultArchiveLimits.MaxEntryBytes
	}
	if limits.MaxTotalBytes <= 0 {
		limits.MaxTotalBytes = DefaultArchiveLimits.MaxTotalBytes
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "could not read archive")
	}

	var entries []ArchiveEntry
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "could not open gzip stream")
		}
		defer gz.Close()
		entries, err = readTar(gz, limits)
		if err != nil {
			return nil, err
		}
	case bytes.HasPrefix(head, xzMagic):
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "could not open xz stream")
		}
		entries, err = readTar(xzr, limits)
		if err != nil {
			return nil, err
		}
	case bytes.HasPrefix(head, zipMagic):
		entries, err = readZip(br, limits)
		if err != nil {
			return nil, err
		}
	default:
		entries, err = readTar(br, limits)
		if err != nil {
			return nil, err
		}
	}

	if len(entries) == 0 {
		return nil, ErrArchiveEmpty
	}
	return entries, nil
}

func readTar(r io.Reader, limits ArchiveLimits) ([]ArchiveEntry, error) {
	tr := tar.NewReader(r)
	er := newEntryReader(limits)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "could not read tar archive")
		}

		if header.Typeflag != tar.TypeReg || !isScanFile(header.Name) {
			continue
		}
		if err := er.add(header.Name, tr); err != nil {
			return nil, err
		}
	}
	return er.entries, nil
}

func readZip(r io.Reader, limits ArchiveLimits) ([]ArchiveEntry, error) {
	// zip needs random access, the upload size is already bounded by the server
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read zip archive")
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, errors.Wrap(err, "could not open zip archive")
	}

	er := newEntryReader(limits)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !isScanFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "could not open %s", f.Name)
		}
		err = er.add(f.Name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}
	return er.entries, nil
}
