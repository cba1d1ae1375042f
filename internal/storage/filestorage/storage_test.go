package storage_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	apperrors "tierra_admin/internal/storage"
	storage "tierra_admin/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T) *storage.LocalFileStorage {
	t.Helper()

	fs, err := storage.NewLocalFileStorage(t.TempDir(), "http://test.local", 1<<20)
	require.NoError(t, err)

	return fs
}

func createTestFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocalFileStorage_Save(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful save", func(t *testing.T) {
		testFile := createTestFile(t, "test.txt", "test content")

		filePath, size, err := fs.Save(ctx, testFile, "subdir")
		require.NoError(t, err)

		assert.Equal(t, "subdir/test.txt", filePath)
		assert.Equal(t, int64(12), size)

		data, err := os.ReadFile(fs.GetFullPath(filePath))
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("save with empty subpath", func(t *testing.T) {
		testFile := createTestFile(t, "root.txt", "x")

		filePath, _, err := fs.Save(ctx, testFile, "")
		require.NoError(t, err)
		assert.Equal(t, "root.txt", filePath)
	})

	t.Run("file over the size limit is rejected", func(t *testing.T) {
		small, err := storage.NewLocalFileStorage(t.TempDir(), "http://test.local", 4)
		require.NoError(t, err)

		testFile := createTestFile(t, "big.txt", "way past the limit")

		_, _, err = small.Save(ctx, testFile, "")
		assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)

		_, statErr := os.Stat(small.GetFullPath("big.txt"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("save with context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		testFile := createTestFile(t, "cancelled.txt", "data")

		_, _, err := fs.Save(ctx, testFile, "subdir")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		testFile := createTestFile(t, "to_delete.txt", "content")

		filePath, _, err := fs.Save(ctx, testFile, "")
		require.NoError(t, err)

		require.NoError(t, fs.Delete(ctx, filePath))

		_, err = os.Stat(fs.GetFullPath(filePath))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing file is a no-op", func(t *testing.T) {
		assert.NoError(t, fs.Delete(ctx, "nonexistent.txt"))
	})

	t.Run("path escaping the base dir is refused", func(t *testing.T) {
		err := fs.Delete(ctx, "../../etc/passwd")
		assert.Error(t, err)
	})
}

func TestLocalFileStorage_GetFullPath(t *testing.T) {
	fs := setupFileStorage(t)

	relPath := "test/file.txt"
	expected := filepath.Join(fs.GetBaseDir(), relPath)
	assert.Equal(t, expected, fs.GetFullPath(relPath))
}

func TestLocalFileStorage_BaseURL(t *testing.T) {
	fs := setupFileStorage(t)
	assert.Equal(t, "http://test.local", fs.BaseURL())
}

func TestNewLocalFileStorage(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		fs, err := storage.NewLocalFileStorage(t.TempDir(), "http://test.local", 1<<20)
		require.NoError(t, err)
		assert.NotNil(t, fs)
	})

	t.Run("invalid directory", func(t *testing.T) {
		_, err := storage.NewLocalFileStorage("/proc/nope/uploads", "http://test.local", 1<<20)
		assert.Error(t, err)
	})
}

func TestConcurrentSaves(t *testing.T) {
	fs := setupFileStorage(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			testFile := createTestFile(t, "concurrent.txt", "data")
			_, _, err := fs.Save(ctx, testFile, "concurrent")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
