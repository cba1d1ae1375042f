package repository

import (
	"context"
	"time"

	"tierra_admin/internal/domain/models"

	"github.com/google/uuid"
)

type ContentTypeRepository interface {
	SaveContentType(ctx context.Context, ct models.ContentType) (uuid.UUID, error)
	ContentTypeByID(ctx context.Context, id uuid.UUID) (*models.ContentType, error)
	ContentTypeBySlug(ctx context.Context, apiIdentifier string) (*models.ContentType, error)
	ListContentTypes(ctx context.Context) ([]models.ContentType, error)
	DeleteContentType(ctx context.Context, id uuid.UUID) error
}

type ContentEntryRepository interface {
	SaveEntry(ctx context.Context, entry models.ContentEntry) (uuid.UUID, error)
	UpdateEntryData(ctx context.Context, id uuid.UUID, data models.FieldValues) error
	// EntryByID eagerly loads the owning content type and its fields.
	EntryByID(ctx context.Context, id uuid.UUID) (*models.ContentEntry, error)
	ListEntries(ctx context.Context, contentTypeID uuid.UUID, page, perPage int) ([]models.ContentEntry, int, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

type ExperienceRepository interface {
	SaveExperience(ctx context.Context, exp models.Experience) (uuid.UUID, error)
	UpdateExperience(ctx context.Context, exp models.Experience) error
	UpdateExperienceStatus(ctx context.Context, id uuid.UUID, status models.ExperienceStatus, publishedAt *time.Time) error
	ExperienceByID(ctx context.Context, id uuid.UUID) (*models.Experience, error)
	ExperienceBySlug(ctx context.Context, slug string) (*models.Experience, error)
	ListExperiences(ctx context.Context, statusFilter string, page, perPage int) ([]models.Experience, int, error)
	ListDueScheduled(ctx context.Context, now time.Time) ([]models.Experience, error)
	DeleteExperience(ctx context.Context, id uuid.UUID) error
}

type MediaRepository interface {
	CreateMedia(ctx context.Context, media *models.Media) (*models.Media, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	ListImages(ctx context.Context) ([]models.Media, error)
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID string) error
}
