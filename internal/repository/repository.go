package repository

import (
	"context"
	"fmt"

	"tierra_admin/internal/storage/postgresql"
)

// Repository bundles all postgres-backed repositories over one pool.
type Repository struct {
	storage      *postgresql.Storage
	ContentTypes ContentTypeRepository
	Entries      ContentEntryRepository
	Experiences  ExperienceRepository
	Media        MediaRepository
	User         UserRepository
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	pg, err := postgresql.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := pg.Pool()

	return &Repository{
		storage:      pg,
		ContentTypes: NewContentTypeRepository(db),
		Entries:      NewContentEntryRepository(db),
		Experiences:  NewExperienceRepository(db),
		Media:        NewMediaRepository(db),
		User:         NewUserRepository(db),
	}, nil
}

func (r *Repository) Close() {
	r.storage.Stop()
}

// HealthCheck pings the underlying pool.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.storage.HealthCheck(ctx)
}
