package fileattr

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadSize(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, make([]byte, 953458), 0o644))

	attrs, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, int64(953458), attrs.Size)
}

func TestReadTimesAreSane(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	attrs, err := Read(path)
	require.NoError(t, err)

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	for name, ts := range map[string]*time.Time{"created": attrs.CreatedTime, "modified": attrs.ModifiedTime} {
		if ts == nil {
			// not every filesystem reports this
			continue
		}
		require.Truef(t, ts.After(start), "%s time %v before 2020", name, ts)
		require.Falsef(t, ts.After(now), "%s time %v in the future", name, ts)
		require.Equal(t, time.UTC, ts.Location())
	}
	require.NotNil(t, attrs.ModifiedTime)
}

func TestReadModifiedTime(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	stamp := time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	attrs, err := Read(path)
	require.NoError(t, err)
	require.NotNil(t, attrs.ModifiedTime)
	require.True(t, stamp.Equal(*attrs.ModifiedTime))
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Read(filepath.Join(t.TempDir(), "missing.jpg"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
}
