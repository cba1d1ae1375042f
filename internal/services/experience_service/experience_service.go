package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/lib/logger/sl"
	"tierra_admin/internal/metrics"
	"tierra_admin/internal/repository"
	"tierra_admin/internal/transport/http/dto"

	"github.com/google/uuid"
)

// Submit intents. The intent decides the target status of the record;
// it is orthogonal to what happens after the save succeeds.
const (
	IntentDraft   = "draft"
	IntentPublish = "publish"
)

// ExperienceService manages bookable activity listings: saving drafts,
// gating publication on the full record contract, and flipping
// scheduled drafts live.
type ExperienceService struct {
	log         *slog.Logger
	experiences repository.ExperienceRepository
}

func NewExperienceService(log *slog.Logger, experiences repository.ExperienceRepository) *ExperienceService {
	return &ExperienceService{log: log, experiences: experiences}
}

// CreateExperience persists a new listing. With IntentPublish the
// record must pass ValidateForPublish and comes out published; with
// IntentDraft it is stored as-is in draft state.
func (s *ExperienceService) CreateExperience(ctx context.Context, req dto.SubmitExperienceRequest) (*dto.ExperienceResult, error) {
	const op = "experience_service.CreateExperience"
	log := s.log.With(slog.String("op", op), slog.String("intent", req.Intent))

	exp := req.Experience.ToDomain()
	if exp.Slug == "" {
		exp.Slug = generateSlug(exp.Title)
	}
	exp.Status = models.StatusDraft

	if req.Intent == IntentPublish {
		if err := exp.ValidateForPublish(); err != nil {
			log.Warn("experience failed publish validation", sl.Err(err))
			return nil, err
		}
		now := time.Now().UTC()
		exp.Status = models.StatusPublished
		exp.PublishedAt = &now
	}

	id, err := s.experiences.SaveExperience(ctx, exp)
	if err != nil {
		// Slug collision on create: retry once with a unique suffix.
		if isDuplicateSlug(err) {
			exp.Slug = fmt.Sprintf("%s-%d", exp.Slug, time.Now().UnixNano())
			id, err = s.experiences.SaveExperience(ctx, exp)
		}
		if err != nil {
			log.Error("failed to save experience", sl.Err(err))
			return nil, fmt.Errorf("failed to save experience: %w", err)
		}
	}

	log.Info("experience created",
		slog.String("experience_id", id.String()),
		slog.String("status", string(exp.Status)),
	)

	if exp.Status == models.StatusPublished {
		metrics.ExperiencesPublishedTotal.Inc()
	}

	return s.result(id, &exp), nil
}

// UpdateExperience overwrites the stored listing with the submitted
// draft. A draft save of a previously published record demotes it back
// to draft; the original PublishedAt is kept for history.
func (s *ExperienceService) UpdateExperience(ctx context.Context, id uuid.UUID, req dto.SubmitExperienceRequest) (*dto.ExperienceResult, error) {
	const op = "experience_service.UpdateExperience"
	log := s.log.With(
		slog.String("op", op),
		slog.String("experience_id", id.String()),
		slog.String("intent", req.Intent),
	)

	existing, err := s.experiences.ExperienceByID(ctx, id)
	if err != nil {
		log.Warn("failed to load experience", sl.Err(err))
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}

	exp := req.Experience.ToDomain()
	exp.ID = existing.ID
	exp.CreatedAt = existing.CreatedAt
	if exp.Slug == "" {
		exp.Slug = existing.Slug
	}

	switch req.Intent {
	case IntentPublish:
		if err := exp.ValidateForPublish(); err != nil {
			log.Warn("experience failed publish validation", sl.Err(err))
			return nil, err
		}
		exp.Status = models.StatusPublished
		if existing.PublishedAt != nil {
			exp.PublishedAt = existing.PublishedAt
		} else {
			now := time.Now().UTC()
			exp.PublishedAt = &now
		}
	default:
		exp.Status = models.StatusDraft
		exp.PublishedAt = existing.PublishedAt
	}

	if err := s.experiences.UpdateExperience(ctx, exp); err != nil {
		log.Error("failed to update experience", sl.Err(err))
		return nil, fmt.Errorf("failed to update experience: %w", err)
	}

	log.Info("experience updated", slog.String("status", string(exp.Status)))

	if exp.Status == models.StatusPublished && existing.Status != models.StatusPublished {
		metrics.ExperiencesPublishedTotal.Inc()
	}

	return s.result(id, &exp), nil
}

func (s *ExperienceService) GetExperience(ctx context.Context, id uuid.UUID) (*dto.ExperienceResponse, error) {
	const op = "experience_service.GetExperience"
	log := s.log.With(slog.String("op", op), slog.String("experience_id", id.String()))

	exp, err := s.experiences.ExperienceByID(ctx, id)
	if err != nil {
		log.Warn("failed to get experience", sl.Err(err))
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	return dto.NewExperienceResponse(exp), nil
}

func (s *ExperienceService) GetExperienceBySlug(ctx context.Context, slug string) (*dto.ExperienceResponse, error) {
	const op = "experience_service.GetExperienceBySlug"
	log := s.log.With(slog.String("op", op), slog.String("slug", slug))

	exp, err := s.experiences.ExperienceBySlug(ctx, slug)
	if err != nil {
		log.Warn("failed to get experience", sl.Err(err))
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	return dto.NewExperienceResponse(exp), nil
}

func (s *ExperienceService) ListExperiences(ctx context.Context, statusFilter string, page, perPage int) (*dto.ExperienceListResponse, error) {
	const op = "experience_service.ListExperiences"
	log := s.log.With(slog.String("op", op), slog.String("status_filter", statusFilter))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	experiences, total, err := s.experiences.ListExperiences(ctx, statusFilter, page, perPage)
	if err != nil {
		log.Error("failed to list experiences", sl.Err(err))
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}

	resp := &dto.ExperienceListResponse{
		Experiences: make([]dto.ExperienceResponse, 0, len(experiences)),
		TotalCount:  total,
		Page:        page,
		PerPage:     perPage,
	}
	for i := range experiences {
		resp.Experiences = append(resp.Experiences, *dto.NewExperienceResponse(&experiences[i]))
	}

	return resp, nil
}

func (s *ExperienceService) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	const op = "experience_service.DeleteExperience"
	log := s.log.With(slog.String("op", op), slog.String("experience_id", id.String()))

	if err := s.experiences.DeleteExperience(ctx, id); err != nil {
		log.Error("failed to delete experience", sl.Err(err))
		return fmt.Errorf("failed to delete experience: %w", err)
	}

	log.Info("experience deleted")
	return nil
}

// PublishDue flips scheduled drafts whose publish_at has passed. A
// draft that no longer satisfies the publish contract is skipped and
// logged rather than failing the whole sweep.
func (s *ExperienceService) PublishDue(ctx context.Context, now time.Time) (int, error) {
	const op = "experience_service.PublishDue"
	log := s.log.With(slog.String("op", op))

	due, err := s.experiences.ListDueScheduled(ctx, now)
	if err != nil {
		log.Error("failed to list scheduled experiences", sl.Err(err))
		return 0, fmt.Errorf("failed to list scheduled experiences: %w", err)
	}

	published := 0
	for i := range due {
		exp := &due[i]
		expLog := log.With(slog.String("experience_id", exp.ID.String()))

		if err := exp.ValidateForPublish(); err != nil {
			expLog.Warn("scheduled experience skipped, fails publish validation", sl.Err(err))
			continue
		}

		publishedAt := now.UTC()
		if err := s.experiences.UpdateExperienceStatus(ctx, exp.ID, models.StatusPublished, &publishedAt); err != nil {
			expLog.Error("failed to publish scheduled experience", sl.Err(err))
			continue
		}

		expLog.Info("scheduled experience published")
		metrics.ExperiencesPublishedTotal.Inc()
		published++
	}

	return published, nil
}

func (s *ExperienceService) result(id uuid.UUID, exp *models.Experience) *dto.ExperienceResult {
	res := &dto.ExperienceResult{
		ID:           id,
		Slug:         exp.Slug,
		Status:       string(exp.Status),
		RedirectPath: "/admin/experiences/" + id.String() + "/edit",
	}
	if exp.Status == models.StatusPublished {
		res.PublicPath = "/experiences/" + exp.Slug
	}
	return res
}

func generateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, `"`, "")
	if slug == "" {
		slug = fmt.Sprintf("untitled-%d", time.Now().UnixNano())
	}
	return slug
}

func isDuplicateSlug(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
