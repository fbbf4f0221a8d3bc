package multitrack_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/multitrack"
)

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	sink, err := multitrack.CreateFile(path)
	require.NoError(t, err)

	mw := multitrack.NewMultiWriter(sink)

	_, err = mw.Write([]byte("hello\n"))
	require.NoError(t, err)

	require.NoError(t, mw.Flush())
	require.NoError(t, mw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(data))
}

func TestCreateFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous contents"), 0644))

	sink, err := multitrack.CreateFile(path)
	require.NoError(t, err)

	_, err = sink.AttemptWrite([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, sink.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0644))

	sink, err := multitrack.AppendFile(path)
	require.NoError(t, err)

	_, err = sink.AttemptWrite([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, sink.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first\nsecond\n", string(data))
}

func TestAppendFileCreatesMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.txt")

	sink, err := multitrack.AppendFile(path)
	require.NoError(t, err)

	_, err = sink.AttemptWrite([]byte("born appending"))
	require.NoError(t, err)

	closer, ok := sink.(interface{ Close() error })
	require.True(t, ok)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "born appending", string(data))
}

func TestCreateFileBadPath(t *testing.T) {
	_, err := multitrack.CreateFile(filepath.Join(t.TempDir(), "no", "such", "dir", "f"))
	require.Error(t, err)
}
