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

type ContentEntryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContentEntryRepository(db *pgxpool.Pool) *ContentEntryRepo {
	return &ContentEntryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ContentEntryRepo) SaveEntry(ctx context.Context, entry models.ContentEntry) (uuid.UUID, error) {
	const op = "repository.ContentEntryRepo.SaveEntry"

	query, args, err := r.sb.Insert("content_entries").
		Columns("content_type_id", "data").
		Values(entry.ContentTypeID, entry.Data).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *ContentEntryRepo) UpdateEntryData(ctx context.Context, id uuid.UUID, data models.FieldValues) error {
	const op = "repository.ContentEntryRepo.UpdateEntryData"

	query, args, err := r.sb.Update("content_entries").
		Set("data", data).
		Set("updated_at", sq.Expr("NOW()")).
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
		return fmt.Errorf("%s: %w", op, storage.ErrEntryNotFound)
	}

	return nil
}

// EntryByID returns the entry together with its owning content type
// and that type's field definitions in a single round trip.
func (r *ContentEntryRepo) EntryByID(ctx context.Context, id uuid.UUID) (*models.ContentEntry, error) {
	const op = "repository.ContentEntryRepo.EntryByID"

	query, args, err := r.sb.Select(
		"e.id",
		"e.content_type_id",
		"e.data",
		"e.created_at",
		"e.updated_at",
		"ct.id",
		"ct.name",
		"ct.api_identifier",
		"ct.fields",
		"ct.created_at",
		"ct.updated_at",
	).
		From("content_entries e").
		Join("content_types ct ON ct.id = e.content_type_id").
		Where(sq.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var entry models.ContentEntry
	var ct models.ContentType
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&entry.ID,
		&entry.ContentTypeID,
		&entry.Data,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&ct.ID,
		&ct.Name,
		&ct.APIIdentifier,
		&ct.Fields,
		&ct.CreatedAt,
		&ct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEntryNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entry.ContentType = &ct

	return &entry, nil
}

func (r *ContentEntryRepo) ListEntries(ctx context.Context, contentTypeID uuid.UUID, page, perPage int) ([]models.ContentEntry, int, error) {
	const op = "repository.ContentEntryRepo.ListEntries"

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").
		From("content_entries").
		Where(sq.Eq{"content_type_id": contentTypeID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select("id", "content_type_id", "data", "created_at", "updated_at").
		From("content_entries").
		Where(sq.Eq{"content_type_id": contentTypeID}).
		OrderBy("created_at DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []models.ContentEntry
	for rows.Next() {
		var e models.ContentEntry
		err := rows.Scan(&e.ID, &e.ContentTypeID, &e.Data, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return entries, total, nil
}

func (r *ContentEntryRepo) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ContentEntryRepo.DeleteEntry"

	query, args, err := r.sb.Delete("content_entries").
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
		return fmt.Errorf("%s: %w", op, storage.ErrEntryNotFound)
	}

	return nil
}
