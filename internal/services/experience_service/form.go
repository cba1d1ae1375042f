package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/lib/logger/sl"
	"tierra_admin/internal/transport/http/dto"

	"github.com/google/uuid"
)

// Form modes. A session is created in one mode and keeps it for its
// whole lifetime.
const (
	ModeCreate = "create"
	ModeEdit   = "edit"
)

// Post-save actions, orthogonal to the persistence intent.
type PostSave string

const (
	PostSaveNone       PostSave = "none"
	PostSaveViewPublic PostSave = "view_public"
)

// ErrSubmitInFlight is returned when a submission arrives while a
// previous one has not resolved yet. The guard lives in the submit
// handler itself, so rapid or programmatic re-invocation cannot
// double-submit regardless of any control state upstream.
var ErrSubmitInFlight = errors.New("submission already in flight")

// pickerClosed marks that no gallery slot has an open selection dialog.
const pickerClosed = -1

// Persister is the write side the form delegates to.
type Persister interface {
	CreateExperience(ctx context.Context, req dto.SubmitExperienceRequest) (*dto.ExperienceResult, error)
	UpdateExperience(ctx context.Context, id uuid.UUID, req dto.SubmitExperienceRequest) (*dto.ExperienceResult, error)
}

// Notifier receives fire-and-forget user-facing confirmations.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

// Navigator performs post-save navigation. Exactly one of its methods
// is invoked per successful submission.
type Navigator interface {
	GoTo(path string)
	Refresh()
}

// FormSession holds the draft value object of one open experience form.
// Field edits mutate only the draft; nothing touches a persisted record
// until Submit succeeds. Safe for concurrent use.
type FormSession struct {
	mu         sync.Mutex
	inFlight   bool
	mode       string
	recordID   uuid.UUID
	values     dto.ExperienceInput
	pickerSlot int

	currentPath    string
	collectionPath string

	persister Persister
	notifier  Notifier
	nav       Navigator
	log       *slog.Logger
}

// NewCreateForm opens a blank form for a new experience.
func NewCreateForm(log *slog.Logger, persister Persister, notifier Notifier, nav Navigator, currentPath, collectionPath string) *FormSession {
	return &FormSession{
		mode:           ModeCreate,
		pickerSlot:     pickerClosed,
		currentPath:    currentPath,
		collectionPath: collectionPath,
		persister:      persister,
		notifier:       notifier,
		nav:            nav,
		log:            log,
	}
}

// NewEditForm opens a form pre-filled with an existing record's values.
func NewEditForm(log *slog.Logger, persister Persister, notifier Notifier, nav Navigator, recordID uuid.UUID, values dto.ExperienceInput, currentPath, collectionPath string) *FormSession {
	return &FormSession{
		mode:           ModeEdit,
		recordID:       recordID,
		values:         values,
		pickerSlot:     pickerClosed,
		currentPath:    currentPath,
		collectionPath: collectionPath,
		persister:      persister,
		notifier:       notifier,
		nav:            nav,
		log:            log,
	}
}

func (f *FormSession) Mode() string {
	return f.mode
}

// Values returns a snapshot of the current draft.
func (f *FormSession) Values() dto.ExperienceInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// SetValues replaces the whole draft at once.
func (f *FormSession) SetValues(values dto.ExperienceInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = values
}

func (f *FormSession) SetTitle(title string) {
	f.set(func(v *dto.ExperienceInput) { v.Title = title })
}

func (f *FormSession) SetSummary(summary string) {
	f.set(func(v *dto.ExperienceInput) { v.Summary = summary })
}

func (f *FormSession) SetNarrative(narrative string) {
	f.set(func(v *dto.ExperienceInput) { v.Narrative = narrative })
}

func (f *FormSession) set(apply func(*dto.ExperienceInput)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply(&f.values)
}

// ToggleWeekday flips one day in the recurring-days set.
func (f *FormSession) ToggleWeekday(day models.Weekday) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current := make([]models.Weekday, 0, len(f.values.Weekdays))
	for _, d := range f.values.Weekdays {
		current = append(current, models.Weekday(d))
	}
	toggled := models.ToggleWeekday(current, day)

	out := make([]string, 0, len(toggled))
	for _, d := range toggled {
		out = append(out, string(d))
	}
	f.values.Weekdays = out
}

// EditGallerySlot handles direct URL input into a slot; an empty value
// removes the slot.
func (f *FormSession) EditGallerySlot(slot int, url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Gallery = models.Gallery(f.values.Gallery).EditSlot(slot, url)
}

// RemoveGallerySlot deletes a slot and shifts later images left.
func (f *FormSession) RemoveGallerySlot(slot int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Gallery = models.Gallery(f.values.Gallery).RemoveSlot(slot)
}

// OpenPicker records which gallery slot the selection dialog is
// editing, so the eventual SelectImage knows where to write.
func (f *FormSession) OpenPicker(slot int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pickerSlot = slot
}

func (f *FormSession) ClosePicker() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pickerSlot = pickerClosed
}

// PickerSlot reports the slot with an open dialog, or -1 when closed.
func (f *FormSession) PickerSlot() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pickerSlot
}

// SelectImage applies a picker selection to the recorded slot and
// closes the dialog. A selection with no open dialog is ignored.
func (f *FormSession) SelectImage(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pickerSlot == pickerClosed {
		return
	}
	f.values.Gallery = models.Gallery(f.values.Gallery).SetSlot(f.pickerSlot, url)
	f.pickerSlot = pickerClosed
}

// CanPublish reports whether the draft satisfies the publish contract.
// It gates the publish control only; draft saves never consult it.
func (f *FormSession) CanPublish() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	exp := f.values.ToDomain()
	return exp.ValidateForPublish() == nil
}

// Saving reports whether a submission is currently in flight.
func (f *FormSession) Saving() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// Submit persists the draft with the given intent and then performs
// the post-save action. On failure the draft is retained untouched and
// no navigation happens. A second Submit while one is in flight
// returns ErrSubmitInFlight without calling the persister.
func (f *FormSession) Submit(ctx context.Context, intent string, postSave PostSave) error {
	const op = "experience_service.FormSession.Submit"

	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.inFlight = true
	values := f.values
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	log := f.log.With(
		slog.String("op", op),
		slog.String("mode", f.mode),
		slog.String("intent", intent),
	)

	if intent == IntentPublish {
		exp := values.ToDomain()
		if err := exp.ValidateForPublish(); err != nil {
			log.Warn("publish blocked by validation", sl.Err(err))
			f.notifier.Error("Cannot publish", err.Error())
			return err
		}
	}

	req := dto.SubmitExperienceRequest{Intent: intent, Experience: values}

	var (
		result *dto.ExperienceResult
		err    error
	)
	if f.mode == ModeEdit {
		result, err = f.persister.UpdateExperience(ctx, f.recordID, req)
	} else {
		result, err = f.persister.CreateExperience(ctx, req)
	}
	if err != nil {
		log.Error("submission failed", sl.Err(err))
		f.notifier.Error("Save failed", err.Error())
		return fmt.Errorf("%s: %w", op, err)
	}

	f.notifier.Success(confirmationTitle(intent), confirmationDetail(intent, result))
	f.navigate(postSave, result)

	log.Info("submission succeeded", slog.String("status", result.Status))
	return nil
}

// navigate performs exactly one navigation action per successful
// submission.
func (f *FormSession) navigate(postSave PostSave, result *dto.ExperienceResult) {
	switch {
	case postSave == PostSaveViewPublic && result.PublicPath != "":
		f.nav.GoTo(result.PublicPath)
	case result.RedirectPath != "":
		if result.RedirectPath == f.currentPath {
			f.nav.Refresh()
		} else {
			f.nav.GoTo(result.RedirectPath)
		}
	case f.mode == ModeEdit:
		f.nav.Refresh()
	default:
		f.nav.GoTo(f.collectionPath)
	}
}

func confirmationTitle(intent string) string {
	if intent == IntentPublish {
		return "Experience published"
	}
	return "Draft saved"
}

func confirmationDetail(intent string, result *dto.ExperienceResult) string {
	if intent == IntentPublish && result.PublicPath != "" {
		return fmt.Sprintf("Now live at %s", result.PublicPath)
	}
	title := strings.TrimSpace(result.Slug)
	if title == "" {
		return "Your changes were stored"
	}
	return fmt.Sprintf("Stored as %q", title)
}
