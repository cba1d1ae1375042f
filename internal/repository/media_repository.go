package repository

import (
	"context"
	"errors"
	"fmt"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type MediaRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewMediaRepository(db *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var mediaColumns = []string{
	"id",
	"uploader_id",
	"created_at",
	"media_type",
	"original_filename",
	"storage_path",
	"file_size",
	"mime_type",
	"width",
	"height",
	"metadata",
}

func (r *MediaRepo) CreateMedia(ctx context.Context, media *models.Media) (*models.Media, error) {
	const op = "repository.MediaRepo.CreateMedia"

	query, args, err := r.sb.Insert("media").
		Columns(mediaColumns...).
		Values(
			media.ID,
			media.UploaderID,
			media.CreatedAt,
			string(media.MediaType),
			media.OriginalFilename,
			media.StoragePath,
			media.FileSize,
			media.MimeType,
			media.Width,
			media.Height,
			media.Metadata,
		).
		Suffix("RETURNING " + "id, uploader_id, created_at, media_type, original_filename, storage_path, file_size, mime_type, width, height, metadata").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	created, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (r *MediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	const op = "repository.MediaRepo.FindByID"

	query, args, err := r.sb.Select(mediaColumns...).
		From("media").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media, err := scanMedia(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrMediaNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return media, nil
}

func scanMedia(row rowScanner) (*models.Media, error) {
	var m models.Media
	var mediaType string

	err := row.Scan(
		&m.ID,
		&m.UploaderID,
		&m.CreatedAt,
		&mediaType,
		&m.OriginalFilename,
		&m.StoragePath,
		&m.FileSize,
		&m.MimeType,
		&m.Width,
		&m.Height,
		&m.Metadata,
	)
	if err != nil {
		return nil, err
	}

	m.MediaType = models.MediaType(mediaType)

	return &m, nil
}

// ListImages returns all uploaded photos, newest first. This backs the
// media picker of the experience form.
func (r *MediaRepo) ListImages(ctx context.Context) ([]models.Media, error) {
	const op = "repository.MediaRepo.ListImages"

	query, args, err := r.sb.Select(mediaColumns...).
		From("media").
		Where(sq.Eq{"media_type": string(models.MediaTypePhoto)}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}
	defer rows.Close()

	var images []models.Media
	for rows.Next() {
		img, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		images = append(images, *img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return images, nil
}
