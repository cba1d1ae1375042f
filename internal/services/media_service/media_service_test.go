package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"testing"
	"time"

	"tierra_admin/internal/domain/models"
	filestorage "tierra_admin/internal/storage/filestorage"
	"tierra_admin/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMediaRepo struct {
	mock.Mock
}

func (m *mockMediaRepo) CreateMedia(ctx context.Context, media *models.Media) (*models.Media, error) {
	args := m.Called(ctx, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *mockMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Media), args.Error(1)
}

func (m *mockMediaRepo) ListImages(ctx context.Context) ([]models.Media, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Media), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestStorage(t *testing.T) *filestorage.LocalFileStorage {
	t.Helper()
	fs, err := filestorage.NewLocalFileStorage(t.TempDir(), "/uploads", 10<<20)
	require.NoError(t, err)
	return fs
}

func TestMediaService_UploadMedia(t *testing.T) {
	ctx := context.Background()
	uploaderID := uuid.New()

	t.Run("stores file and persists metadata", func(t *testing.T) {
		repo := new(mockMediaRepo)
		repo.On("CreateMedia", ctx, mock.MatchedBy(func(m *models.Media) bool {
			return m.UploaderID == uploaderID &&
				m.MediaType == models.MediaTypePhoto &&
				m.OriginalFilename == "beach.jpg" &&
				m.FileSize > 0
		})).Return(&models.Media{ID: uuid.New()}, nil)

		svc := NewMediaService(discardLogger(), repo, newTestStorage(t))

		media, err := svc.UploadMedia(ctx, dto.MediaUploadInput{
			UploaderID: uploaderID,
			File:       createFileHeader(t, "beach.jpg", []byte("jpeg bytes")),
			MediaType:  "photo",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, media.ID)
		repo.AssertExpectations(t)
	})

	t.Run("invalid media type removes the stored file", func(t *testing.T) {
		repo := new(mockMediaRepo)
		fs := newTestStorage(t)

		svc := NewMediaService(discardLogger(), repo, fs)

		_, err := svc.UploadMedia(ctx, dto.MediaUploadInput{
			UploaderID: uploaderID,
			File:       createFileHeader(t, "notes.txt", []byte("text")),
			MediaType:  "spreadsheet",
		})
		require.Error(t, err)
		repo.AssertNotCalled(t, "CreateMedia", mock.Anything, mock.Anything)
	})

	t.Run("database failure removes the stored file", func(t *testing.T) {
		repo := new(mockMediaRepo)
		repo.On("CreateMedia", ctx, mock.Anything).Return(nil, assert.AnError)

		svc := NewMediaService(discardLogger(), repo, newTestStorage(t))

		_, err := svc.UploadMedia(ctx, dto.MediaUploadInput{
			UploaderID: uploaderID,
			File:       createFileHeader(t, "beach.jpg", []byte("jpeg bytes")),
			MediaType:  "photo",
		})
		require.Error(t, err)
	})
}

func TestMediaService_ListImages(t *testing.T) {
	ctx := context.Background()
	width, height := 1200, 800

	images := []models.Media{
		{
			ID:               uuid.New(),
			MediaType:        models.MediaTypePhoto,
			OriginalFilename: "beach.jpg",
			StoragePath:      "user_uploads/u1/beach.jpg",
			Width:            &width,
			Height:           &height,
			CreatedAt:        time.Now().UTC(),
		},
	}

	t.Run("builds picker items with public URLs", func(t *testing.T) {
		repo := new(mockMediaRepo)
		repo.On("ListImages", ctx).Return(images, nil)

		svc := NewMediaService(discardLogger(), repo, newTestStorage(t))

		resp, err := svc.ListImages(ctx)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "/uploads/user_uploads/u1/beach.jpg", resp.Items[0].URL)
		assert.Equal(t, "beach.jpg", resp.Items[0].Filename)
	})

	t.Run("second listing is served from cache", func(t *testing.T) {
		repo := new(mockMediaRepo)
		repo.On("ListImages", ctx).Return(images, nil).Once()

		svc := NewMediaService(discardLogger(), repo, newTestStorage(t))

		_, err := svc.ListImages(ctx)
		require.NoError(t, err)
		resp, err := svc.ListImages(ctx)
		require.NoError(t, err)
		assert.Len(t, resp.Items, 1)
		repo.AssertExpectations(t)
	})
}
