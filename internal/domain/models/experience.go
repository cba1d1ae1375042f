package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type DurationType string

const (
	DurationFlexible  DurationType = "flexible"
	DurationSingleDay DurationType = "single_day"
	DurationMultiDay  DurationType = "multi_day"
	DurationHourly    DurationType = "hourly"
)

type Currency string

const (
	CurrencyCOP Currency = "COP"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

type ExperienceStatus string

const (
	StatusDraft     ExperienceStatus = "draft"
	StatusPublished ExperienceStatus = "published"
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekOrder is the display order. The recurring-days set itself is
// stored unordered.
var WeekOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// MaxGalleryImages caps the image gallery of an experience.
const MaxGalleryImages = 4

// Gallery is the ordered image URL sequence of an experience.
// Invariant: length <= MaxGalleryImages and no blank entries.
type Gallery []string

// SetSlot assigns url into position i. The index is clamped to
// [0, MaxGalleryImages-1]; an index beyond the current length appends
// up to the cap, otherwise the slot is overwritten. Blank entries are
// dropped afterwards. This is the effect of a picker selection.
func (g Gallery) SetSlot(i int, url string) Gallery {
	if i < 0 {
		i = 0
	}
	if i > MaxGalleryImages-1 {
		i = MaxGalleryImages - 1
	}

	out := make(Gallery, len(g))
	copy(out, g)

	switch {
	case i < len(out):
		out[i] = url
	case len(out) < MaxGalleryImages:
		out = append(out, url)
	default:
		out[len(out)-1] = url
	}

	return out.Compact()
}

// EditSlot mirrors SetSlot for direct text input: an empty value
// removes the slot and shifts later entries left.
func (g Gallery) EditSlot(i int, url string) Gallery {
	if strings.TrimSpace(url) == "" {
		return g.RemoveSlot(i)
	}
	return g.SetSlot(i, url)
}

// RemoveSlot deletes position i, keeping no gaps.
func (g Gallery) RemoveSlot(i int) Gallery {
	if i < 0 || i >= len(g) {
		return g
	}
	out := make(Gallery, 0, len(g)-1)
	out = append(out, g[:i]...)
	out = append(out, g[i+1:]...)
	return out.Compact()
}

// Compact drops blank entries and truncates to the cap.
func (g Gallery) Compact() Gallery {
	out := make(Gallery, 0, len(g))
	for _, url := range g {
		if strings.TrimSpace(url) == "" {
			continue
		}
		out = append(out, url)
		if len(out) == MaxGalleryImages {
			break
		}
	}
	return out
}

// Experience is a bookable activity listing.
type Experience struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	Title          string           `json:"title" db:"title"`
	Slug           string           `json:"slug" db:"slug"`
	Location       string           `json:"location,omitempty" db:"location"`
	HostName       string           `json:"host_name,omitempty" db:"host_name"`
	HostBio        string           `json:"host_bio,omitempty" db:"host_bio"`
	Gallery        Gallery          `json:"gallery" db:"gallery"`
	Summary        string           `json:"summary" db:"summary"`
	Narrative      string           `json:"narrative" db:"narrative"`
	Activities     string           `json:"activities,omitempty" db:"activities"`
	DurationType   DurationType     `json:"duration_type" db:"duration_type"`
	DurationDetail string           `json:"duration_detail,omitempty" db:"duration_detail"`
	Weekdays       []Weekday        `json:"weekdays" db:"weekdays"`
	ScheduleWindow string           `json:"schedule_window,omitempty" db:"schedule_window"`
	ScheduleNotes  string           `json:"schedule_notes,omitempty" db:"schedule_notes"`
	ReferencePrice string           `json:"reference_price,omitempty" db:"reference_price"`
	Currency       Currency         `json:"currency" db:"currency"`
	Inclusions     string           `json:"inclusions,omitempty" db:"inclusions"`
	Exclusions     string           `json:"exclusions,omitempty" db:"exclusions"`
	Status         ExperienceStatus `json:"status" db:"status"`
	PublishAt      *time.Time       `json:"publish_at,omitempty" db:"publish_at"`
	PublishedAt    *time.Time       `json:"published_at,omitempty" db:"published_at"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

func (d DurationType) Valid() bool {
	switch d {
	case DurationFlexible, DurationSingleDay, DurationMultiDay, DurationHourly:
		return true
	}
	return false
}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyCOP, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// ToggleWeekday flips membership of d in the recurring-days set.
func ToggleWeekday(days []Weekday, d Weekday) []Weekday {
	for i, existing := range days {
		if existing == d {
			return append(days[:i:i], days[i+1:]...)
		}
	}
	return append(days, d)
}

// SortWeekdays returns the set in Monday-to-Sunday display order.
func SortWeekdays(days []Weekday) []Weekday {
	out := make([]Weekday, 0, len(days))
	for _, d := range WeekOrder {
		for _, existing := range days {
			if existing == d {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// ValidateForPublish enforces the full record contract. Drafts are
// explicitly allowed to fail these checks; published records are not.
func (x *Experience) ValidateForPublish() error {
	var validationErrors []string

	if strings.TrimSpace(x.Title) == "" {
		validationErrors = append(validationErrors, "title is required")
	}
	if strings.TrimSpace(x.Summary) == "" {
		validationErrors = append(validationErrors, "summary is required")
	}
	if strings.TrimSpace(x.Narrative) == "" {
		validationErrors = append(validationErrors, "narrative is required")
	}
	if !x.DurationType.Valid() {
		validationErrors = append(validationErrors,
			fmt.Sprintf("invalid duration type %q", x.DurationType))
	}
	if !x.Currency.Valid() {
		validationErrors = append(validationErrors,
			fmt.Sprintf("invalid currency %q", x.Currency))
	}
	if len(x.Gallery) > MaxGalleryImages {
		validationErrors = append(validationErrors,
			fmt.Sprintf("gallery holds at most %d images", MaxGalleryImages))
	}
	for i, url := range x.Gallery {
		if strings.TrimSpace(url) == "" {
			validationErrors = append(validationErrors,
				fmt.Sprintf("gallery slot %d is empty", i))
		}
	}

	if len(validationErrors) > 0 {
		return &ExperienceValidationError{Errors: validationErrors}
	}

	return nil
}

// ExperienceValidationError aggregates publish-gating problems.
type ExperienceValidationError struct {
	Errors []string
}

func (e *ExperienceValidationError) Error() string {
	return fmt.Sprintf("experience validation failed: %s", strings.Join(e.Errors, "; "))
}

func IsExperienceValidationError(err error) bool {
	_, ok := err.(*ExperienceValidationError)
	return ok
}
