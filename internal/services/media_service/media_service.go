package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/lib/logger/sl"
	"tierra_admin/internal/metrics"
	"tierra_admin/internal/repository"
	storage "tierra_admin/internal/storage/filestorage"
	"tierra_admin/internal/transport/http/dto"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const imageListCacheKey = "media:images"

// MediaService handles uploads and feeds the picker with the image
// library. Listings are cached because the picker opens on every
// gallery slot edit; the cache is dropped on each new upload.
type MediaService struct {
	log         *slog.Logger
	repo        repository.MediaRepository
	fileStorage storage.FileStorage
	cache       *gocache.Cache
}

func NewMediaService(log *slog.Logger, repo repository.MediaRepository, fileStorage storage.FileStorage) *MediaService {
	return &MediaService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
		cache:       gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *MediaService) UploadMedia(ctx context.Context, input dto.MediaUploadInput) (*models.Media, error) {
	const op = "media_service.UploadMedia"

	log := s.log.With(
		slog.String("op", op),
		slog.String("media_type", input.MediaType),
	)

	log.Info("upload media")

	filePath, fileSize, err := s.fileStorage.Save(ctx, input.File, filepath.Join("user_uploads", input.UploaderID.String()))
	if err != nil {
		log.Error("failed to save file", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media := &models.Media{
		ID:               uuid.New(),
		UploaderID:       input.UploaderID,
		CreatedAt:        time.Now().UTC(),
		MediaType:        models.MediaType(input.MediaType),
		OriginalFilename: input.File.Filename,
		StoragePath:      filePath,
		FileSize:         fileSize,
		MimeType:         input.File.Header.Get("Content-Type"),
		Width:            input.Width,
		Height:           input.Height,
		Metadata:         input.Metadata,
	}

	if err := media.Validate(); err != nil {
		// The file is already on disk, remove it so failed uploads
		// leave nothing behind.
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Error("media validation failed", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	createdMedia, err := s.repo.CreateMedia(ctx, media)
	if err != nil {
		_ = s.fileStorage.Delete(ctx, filePath)
		log.Error("failed to save media to database", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(imageListCacheKey)
	metrics.MediaUploadsTotal.Inc()

	return createdMedia, nil
}

func (s *MediaService) GetMedia(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	const op = "media_service.GetMedia"
	log := s.log.With(slog.String("op", op), slog.String("media_id", id.String()))

	media, err := s.repo.FindByID(ctx, id)
	if err != nil {
		log.Warn("failed to get media", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}

// ListImages returns the picker library, newest first.
func (s *MediaService) ListImages(ctx context.Context) (*dto.MediaListResponse, error) {
	const op = "media_service.ListImages"
	log := s.log.With(slog.String("op", op))

	if cached, found := s.cache.Get(imageListCacheKey); found {
		return cached.(*dto.MediaListResponse), nil
	}

	images, err := s.repo.ListImages(ctx)
	if err != nil {
		log.Error("failed to list images", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &dto.MediaListResponse{Items: make([]dto.MediaItem, 0, len(images))}
	for i := range images {
		m := &images[i]
		resp.Items = append(resp.Items, dto.MediaItem{
			ID:        m.ID,
			URL:       m.URL(s.fileStorage.BaseURL()),
			Filename:  m.OriginalFilename,
			Width:     m.Width,
			Height:    m.Height,
			CreatedAt: m.CreatedAt,
		})
	}

	s.cache.Set(imageListCacheKey, resp, gocache.DefaultExpiration)

	return resp, nil
}
