package uploads

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func openMemoryFile(data []byte) multipart.File {
	return memoryFile{bytes.NewReader(data)}
}

func TestStore_SavePhoto(t *testing.T) {
	store, err := NewStore(t.TempDir(), "https://votewalk.example.com/")
	require.NoError(t, err)

	t.Run("stores jpeg under a random name", func(t *testing.T) {
		header := &multipart.FileHeader{Filename: "portrait.JPG"}
		url, err := store.SavePhoto(openMemoryFile([]byte("fake-jpeg-bytes")), header)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "https://votewalk.example.com/uploads/"))
		assert.True(t, strings.HasSuffix(url, ".jpg"))

		name := url[strings.LastIndex(url, "/")+1:]
		data, err := os.ReadFile(filepath.Join(store.Dir(), name))
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-jpeg-bytes"), data)
	})

	t.Run("rejects unsupported extensions", func(t *testing.T) {
		for _, filename := range []string{"malware.exe", "notes.txt", "archive", "photo.svg"} {
			header := &multipart.FileHeader{Filename: filename}
			_, err := store.SavePhoto(openMemoryFile([]byte("x")), header)
			assert.ErrorIs(t, err, ErrUnsupportedType, "filename %q", filename)
		}
	})
}
