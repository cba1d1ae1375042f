package dto

import (
	"time"

	"tierra_admin/internal/domain/models"

	"github.com/google/uuid"
)

// ExperienceInput is the full draft value object of the experience
// form. Required-field checks are deliberately absent from the
// validate tags: drafts are allowed to be incomplete, and the publish
// path gates on models.Experience.ValidateForPublish instead.
type ExperienceInput struct {
	Title          string     `json:"title" validate:"omitempty,max=200"`
	Slug           string     `json:"slug,omitempty" validate:"omitempty,slug"`
	Location       string     `json:"location,omitempty"`
	HostName       string     `json:"host_name,omitempty"`
	HostBio        string     `json:"host_bio,omitempty"`
	Gallery        []string   `json:"gallery,omitempty" validate:"max=4"`
	Summary        string     `json:"summary,omitempty"`
	Narrative      string     `json:"narrative,omitempty"`
	Activities     string     `json:"activities,omitempty"`
	DurationType   string     `json:"duration_type,omitempty" validate:"omitempty,oneof=flexible single_day multi_day hourly"`
	DurationDetail string     `json:"duration_detail,omitempty"`
	Weekdays       []string   `json:"weekdays,omitempty" validate:"dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	ScheduleWindow string     `json:"schedule_window,omitempty"`
	ScheduleNotes  string     `json:"schedule_notes,omitempty"`
	ReferencePrice string     `json:"reference_price,omitempty"`
	Currency       string     `json:"currency,omitempty" validate:"omitempty,oneof=COP USD EUR"`
	Inclusions     string     `json:"inclusions,omitempty"`
	Exclusions     string     `json:"exclusions,omitempty"`
	PublishAt      *time.Time `json:"publish_at,omitempty"`
}

// ToDomain maps the draft onto the domain record, normalizing the
// gallery and the recurring-days set on the way.
func (r *ExperienceInput) ToDomain() models.Experience {
	weekdays := make([]models.Weekday, 0, len(r.Weekdays))
	for _, d := range r.Weekdays {
		weekdays = append(weekdays, models.Weekday(d))
	}

	return models.Experience{
		Title:          r.Title,
		Slug:           r.Slug,
		Location:       r.Location,
		HostName:       r.HostName,
		HostBio:        r.HostBio,
		Gallery:        models.Gallery(r.Gallery).Compact(),
		Summary:        r.Summary,
		Narrative:      r.Narrative,
		Activities:     r.Activities,
		DurationType:   models.DurationType(r.DurationType),
		DurationDetail: r.DurationDetail,
		Weekdays:       weekdays,
		ScheduleWindow: r.ScheduleWindow,
		ScheduleNotes:  r.ScheduleNotes,
		ReferencePrice: r.ReferencePrice,
		Currency:       models.Currency(r.Currency),
		Inclusions:     r.Inclusions,
		Exclusions:     r.Exclusions,
		PublishAt:      r.PublishAt,
	}
}

type SubmitExperienceRequest struct {
	Intent     string          `json:"intent" validate:"required,oneof=draft publish"`
	Experience ExperienceInput `json:"experience" validate:"required"`
}

// ExperienceResult is the discriminated success payload of a
// persistence action: an optional public-facing path and/or an
// explicit redirect target for the caller to navigate to.
type ExperienceResult struct {
	ID           uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Slug         string    `json:"slug"`
	Status       string    `json:"status"`
	PublicPath   string    `json:"public_path,omitempty"`
	RedirectPath string    `json:"redirect_path,omitempty"`
}

type ExperienceResponse struct {
	ID             uuid.UUID  `json:"id" swaggertype:"string" format:"uuid"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Location       string     `json:"location,omitempty"`
	HostName       string     `json:"host_name,omitempty"`
	HostBio        string     `json:"host_bio,omitempty"`
	Gallery        []string   `json:"gallery"`
	Summary        string     `json:"summary"`
	Narrative      string     `json:"narrative"`
	Activities     string     `json:"activities,omitempty"`
	DurationType   string     `json:"duration_type"`
	DurationDetail string     `json:"duration_detail,omitempty"`
	Weekdays       []string   `json:"weekdays"`
	ScheduleWindow string     `json:"schedule_window,omitempty"`
	ScheduleNotes  string     `json:"schedule_notes,omitempty"`
	ReferencePrice string     `json:"reference_price,omitempty"`
	Currency       string     `json:"currency"`
	Inclusions     string     `json:"inclusions,omitempty"`
	Exclusions     string     `json:"exclusions,omitempty"`
	Status         string     `json:"status"`
	PublishAt      *time.Time `json:"publish_at,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewExperienceResponse(exp *models.Experience) *ExperienceResponse {
	weekdays := make([]string, 0, len(exp.Weekdays))
	for _, d := range models.SortWeekdays(exp.Weekdays) {
		weekdays = append(weekdays, string(d))
	}

	return &ExperienceResponse{
		ID:             exp.ID,
		Title:          exp.Title,
		Slug:           exp.Slug,
		Location:       exp.Location,
		HostName:       exp.HostName,
		HostBio:        exp.HostBio,
		Gallery:        []string(exp.Gallery),
		Summary:        exp.Summary,
		Narrative:      exp.Narrative,
		Activities:     exp.Activities,
		DurationType:   string(exp.DurationType),
		DurationDetail: exp.DurationDetail,
		Weekdays:       weekdays,
		ScheduleWindow: exp.ScheduleWindow,
		ScheduleNotes:  exp.ScheduleNotes,
		ReferencePrice: exp.ReferencePrice,
		Currency:       string(exp.Currency),
		Inclusions:     exp.Inclusions,
		Exclusions:     exp.Exclusions,
		Status:         string(exp.Status),
		PublishAt:      exp.PublishAt,
		PublishedAt:    exp.PublishedAt,
		CreatedAt:      exp.CreatedAt,
		UpdatedAt:      exp.UpdatedAt,
	}
}

type ExperienceListResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	TotalCount  int                  `json:"total_count"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"per_page"`
}
