package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ContentTypeRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContentTypeRepository(db *pgxpool.Pool) *ContentTypeRepo {
	return &ContentTypeRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var contentTypeColumns = []string{
	"id",
	"name",
	"api_identifier",
	"fields",
	"created_at",
	"updated_at",
}

func (r *ContentTypeRepo) SaveContentType(ctx context.Context, ct models.ContentType) (uuid.UUID, error) {
	const op = "repository.ContentTypeRepo.SaveContentType"

	query, args, err := r.sb.Insert("content_types").
		Columns("name", "api_identifier", "fields").
		Values(ct.Name, ct.APIIdentifier, ct.Fields).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrContentTypeExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *ContentTypeRepo) ContentTypeByID(ctx context.Context, id uuid.UUID) (*models.ContentType, error) {
	const op = "repository.ContentTypeRepo.ContentTypeByID"
	return r.one(ctx, op, sq.Eq{"id": id})
}

func (r *ContentTypeRepo) ContentTypeBySlug(ctx context.Context, apiIdentifier string) (*models.ContentType, error) {
	const op = "repository.ContentTypeRepo.ContentTypeBySlug"
	return r.one(ctx, op, sq.Eq{"api_identifier": apiIdentifier})
}

func (r *ContentTypeRepo) one(ctx context.Context, op string, pred sq.Eq) (*models.ContentType, error) {
	query, args, err := r.sb.Select(contentTypeColumns...).
		From("content_types").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var ct models.ContentType
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&ct.ID,
		&ct.Name,
		&ct.APIIdentifier,
		&ct.Fields,
		&ct.CreatedAt,
		&ct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrContentTypeNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ct, nil
}

func (r *ContentTypeRepo) ListContentTypes(ctx context.Context) ([]models.ContentType, error) {
	const op = "repository.ContentTypeRepo.ListContentTypes"

	query, args, err := r.sb.Select(contentTypeColumns...).
		From("content_types").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var types []models.ContentType
	for rows.Next() {
		var ct models.ContentType
		err := rows.Scan(
			&ct.ID,
			&ct.Name,
			&ct.APIIdentifier,
			&ct.Fields,
			&ct.CreatedAt,
			&ct.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		types = append(types, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return types, nil
}

func (r *ContentTypeRepo) DeleteContentType(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ContentTypeRepo.DeleteContentType"

	query, args, err := r.sb.Delete("content_types").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrContentTypeNotFound)
	}

	return nil
}
