package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

type ExperienceRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewExperienceRepository(db *pgxpool.Pool) *ExperienceRepo {
	return &ExperienceRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var experienceColumns = []string{
	"id",
	"title",
	"slug",
	"location",
	"host_name",
	"host_bio",
	"gallery",
	"summary",
	"narrative",
	"activities",
	"duration_type",
	"duration_detail",
	"weekdays",
	"schedule_window",
	"schedule_notes",
	"reference_price",
	"currency",
	"inclusions",
	"exclusions",
	"status",
	"publish_at",
	"published_at",
	"created_at",
	"updated_at",
}

func weekdayStrings(days []models.Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, string(d))
	}
	return out
}

func weekdaysFromStrings(raw []string) []models.Weekday {
	out := make([]models.Weekday, 0, len(raw))
	for _, s := range raw {
		out = append(out, models.Weekday(s))
	}
	return out
}

func (r *ExperienceRepo) SaveExperience(ctx context.Context, exp models.Experience) (uuid.UUID, error) {
	const op = "repository.ExperienceRepo.SaveExperience"

	query, args, err := r.sb.Insert("experiences").
		Columns(
			"title",
			"slug",
			"location",
			"host_name",
			"host_bio",
			"gallery",
			"summary",
			"narrative",
			"activities",
			"duration_type",
			"duration_detail",
			"weekdays",
			"schedule_window",
			"schedule_notes",
			"reference_price",
			"currency",
			"inclusions",
			"exclusions",
			"status",
			"publish_at",
			"published_at",
		).
		Values(
			exp.Title,
			exp.Slug,
			exp.Location,
			exp.HostName,
			exp.HostBio,
			pq.Array([]string(exp.Gallery)),
			exp.Summary,
			exp.Narrative,
			exp.Activities,
			string(exp.DurationType),
			exp.DurationDetail,
			pq.Array(weekdayStrings(exp.Weekdays)),
			exp.ScheduleWindow,
			exp.ScheduleNotes,
			exp.ReferencePrice,
			string(exp.Currency),
			exp.Inclusions,
			exp.Exclusions,
			string(exp.Status),
			exp.PublishAt,
			exp.PublishedAt,
		).
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

func (r *ExperienceRepo) UpdateExperience(ctx context.Context, exp models.Experience) error {
	const op = "repository.ExperienceRepo.UpdateExperience"

	query, args, err := r.sb.Update("experiences").
		Set("title", exp.Title).
		Set("slug", exp.Slug).
		Set("location", exp.Location).
		Set("host_name", exp.HostName).
		Set("host_bio", exp.HostBio).
		Set("gallery", pq.Array([]string(exp.Gallery))).
		Set("summary", exp.Summary).
		Set("narrative", exp.Narrative).
		Set("activities", exp.Activities).
		Set("duration_type", string(exp.DurationType)).
		Set("duration_detail", exp.DurationDetail).
		Set("weekdays", pq.Array(weekdayStrings(exp.Weekdays))).
		Set("schedule_window", exp.ScheduleWindow).
		Set("schedule_notes", exp.ScheduleNotes).
		Set("reference_price", exp.ReferencePrice).
		Set("currency", string(exp.Currency)).
		Set("inclusions", exp.Inclusions).
		Set("exclusions", exp.Exclusions).
		Set("status", string(exp.Status)).
		Set("publish_at", exp.PublishAt).
		Set("published_at", exp.PublishedAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": exp.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrExperienceNotFound)
	}

	return nil
}

func (r *ExperienceRepo) UpdateExperienceStatus(ctx context.Context, id uuid.UUID, status models.ExperienceStatus, publishedAt *time.Time) error {
	const op = "repository.ExperienceRepo.UpdateExperienceStatus"

	query, args, err := r.sb.Update("experiences").
		Set("status", string(status)).
		Set("published_at", publishedAt).
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
		return fmt.Errorf("%s: %w", op, storage.ErrExperienceNotFound)
	}

	return nil
}

func (r *ExperienceRepo) ExperienceByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	const op = "repository.ExperienceRepo.ExperienceByID"
	return r.one(ctx, op, sq.Eq{"id": id})
}

func (r *ExperienceRepo) ExperienceBySlug(ctx context.Context, slug string) (*models.Experience, error) {
	const op = "repository.ExperienceRepo.ExperienceBySlug"
	return r.one(ctx, op, sq.Eq{"slug": slug})
}

func (r *ExperienceRepo) one(ctx context.Context, op string, pred sq.Eq) (*models.Experience, error) {
	query, args, err := r.sb.Select(experienceColumns...).
		From("experiences").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exp, err := scanExperience(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrExperienceNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return exp, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExperience(row rowScanner) (*models.Experience, error) {
	var exp models.Experience
	var gallery []string
	var weekdays []string
	var durationType, currency, status string

	err := row.Scan(
		&exp.ID,
		&exp.Title,
		&exp.Slug,
		&exp.Location,
		&exp.HostName,
		&exp.HostBio,
		pq.Array(&gallery),
		&exp.Summary,
		&exp.Narrative,
		&exp.Activities,
		&durationType,
		&exp.DurationDetail,
		pq.Array(&weekdays),
		&exp.ScheduleWindow,
		&exp.ScheduleNotes,
		&exp.ReferencePrice,
		&currency,
		&exp.Inclusions,
		&exp.Exclusions,
		&status,
		&exp.PublishAt,
		&exp.PublishedAt,
		&exp.CreatedAt,
		&exp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	exp.Gallery = models.Gallery(gallery)
	exp.Weekdays = weekdaysFromStrings(weekdays)
	exp.DurationType = models.DurationType(durationType)
	exp.Currency = models.Currency(currency)
	exp.Status = models.ExperienceStatus(status)

	return &exp, nil
}

func (r *ExperienceRepo) ListExperiences(ctx context.Context, statusFilter string, page, perPage int) ([]models.Experience, int, error) {
	const op = "repository.ExperienceRepo.ListExperiences"

	countBuilder := r.sb.Select("COUNT(*)").From("experiences")
	listBuilder := r.sb.Select(experienceColumns...).From("experiences")

	if statusFilter != "" {
		countBuilder = countBuilder.Where(sq.Eq{"status": statusFilter})
		listBuilder = listBuilder.Where(sq.Eq{"status": statusFilter})
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := listBuilder.
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

	var experiences []models.Experience
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		experiences = append(experiences, *exp)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return experiences, total, nil
}

// ListDueScheduled returns drafts whose publish_at is due.
func (r *ExperienceRepo) ListDueScheduled(ctx context.Context, now time.Time) ([]models.Experience, error) {
	const op = "repository.ExperienceRepo.ListDueScheduled"

	query, args, err := r.sb.Select(experienceColumns...).
		From("experiences").
		Where(sq.Eq{"status": string(models.StatusDraft)}).
		Where(sq.LtOrEq{"publish_at": now}).
		OrderBy("publish_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var due []models.Experience
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		due = append(due, *exp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return due, nil
}

func (r *ExperienceRepo) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ExperienceRepo.DeleteExperience"

	query, args, err := r.sb.Delete("experiences").
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
		return fmt.Errorf("%s: %w", op, storage.ErrExperienceNotFound)
	}

	return nil
}
