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
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var archiveFiles = map[string]string{
	"scans/login.json":        `{"testName":"login","url":"https://example.com/login"}`,
	"scans/home.json":         `[{"testName":"home","url":"https://example.com"}]`,
	"scans/readme.md":         `# not a scan`,
	"__MACOSX/scans/._a.json": `garbage`,
	"scans/._login.json":      `garbage`,
}

func writeTar(t *testing.T, w io.Writer, files map[string]string) {
	t.Helper()
	tw := tar.NewWriter(w)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "scans/", Typeflag: tar.TypeDir, Mode: 0o755}))
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content))}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
}

func entryNames(entries []ArchiveEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func TestReadArchive(t *testing.T) {
	expected := []string{"scans/home.json", "scans/login.json"}

	t.Run("plain tar", func(t *testing.T) {
		var buf bytes.Buffer
		writeTar(t, &buf, archiveFiles)

		entries, err := ReadArchive(&buf, DefaultArchiveLimits)
		require.NoError(t, err)
		assert.ElementsMatch(t, expected, entryNames(entries))
	})

	t.Run("gzip compressed tar", func(t *testing.T) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		writeTar(t, gz, archiveFiles)
		require.NoError(t, gz.Close())

		entries, err := ReadArchive(&buf, DefaultArchiveLimits)
		require.NoError(t, err)
		assert.ElementsMatch(t, expected, entryNames(entries))
	})

	t.Run("xz compressed tar", func(t *testing.T) {
		var buf bytes.Buffer
		xzw, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		writeTar(t, xzw, archiveFiles)
		require.NoError(t, xzw.Close())

		entries, err := ReadArchive(&buf, DefaultArchiveLimits)
		require.NoError(t, err)
		assert.ElementsMatch(t, expected, entryNames(entries))
	})

	t.Run("zip", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		for name, content := range archiveFiles {
			w, err := zw.Create(name)
			require.NoError(t, err)
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
		require.NoError(t, zw.Close())

		entries, err := ReadArchive(&buf, DefaultArchiveLimits)
		require.NoError(t, err)
		assert.ElementsMatch(t, expected, entryNames(entries))
	})

	t.Run("should fail if the archive has no json files", func(t *testing.T) {
		var buf bytes.Buffer
		writeTar(t, &buf, map[string]string{"notes.txt": "hello"})

		_, err := ReadArchive(&buf, DefaultArchiveLimits)
		assert.ErrorIs(t, err, ErrArchiveEmpty)
	})

	t.Run("should fail on a broken archive", func(t *testing.T) {
		_, err := ReadArchive(bytes.NewReader(bytes.Repeat([]byte("x"), 1024)), DefaultArchiveLimits)
		assert.Error(t, err)
	})

	t.Run("should enforce the entry limits", func(t *testing.T) {
		var buf bytes.Buffer
		writeTar(t, &buf, archiveFiles)
		_, err := ReadArchive(&buf, ArchiveLimits{MaxEntries: 1, MaxEntryBytes: 1024})
		assert.ErrorIs(t, err, ErrArchiveTooManyEntries)

		buf.Reset()
		writeTar(t, &buf, archiveFiles)
		_, err = ReadArchive(&buf, ArchiveLimits{MaxEntries: 10, MaxEntryBytes: 10})
		assert.ErrorIs(t, err, ErrArchiveEntryTooLarge)
	})

	t.Run("should cap the decompressed size of all entries together", func(t *testing.T) {
		files := map[string]string{}
		for i := 0; i < 8; i++ {
			files[fmt.Sprintf("scans/%d.json", i)] = string(bytes.Repeat([]byte(" "), 512)) + "{}"
		}
		limits := ArchiveLimits{MaxEntries: 100, MaxEntryBytes: 1024, MaxTotalBytes: 2048}

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		writeTar(t, gz, files)
		require.NoError(t, gz.Close())
		// whitespace compresses well, so the upload itself stays small
		assert.Less(t, buf.Len(), 2048)

		_, err := ReadArchive(&buf, limits)
		assert.ErrorIs(t, err, ErrArchiveTooLarge)

		buf.Reset()
		zw := zip.NewWriter(&buf)
		for name, content := range files {
			w, err := zw.Create(name)
			require.NoError(t, err)
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
		require.NoError(t, zw.Close())

		_, err = ReadArchive(&buf, limits)
		assert.ErrorIs(t, err, ErrArchiveTooLarge)
	})

	t.Run("should accept archives within the total size", func(t *testing.T) {
		var buf bytes.Buffer
		writeTar(t, &buf, archiveFiles)

		entries, err := ReadArchive(&buf, ArchiveLimits{MaxEntries: 10, MaxEntryBytes: 1024, MaxTotalBytes: 4096})
		require.NoError(t, err)
		assert.ElementsMatch(t, expected, entryNames(entries))
	})
}
