package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/lib/logger/sl"
	"tierra_admin/internal/metrics"
	"tierra_admin/internal/repository"
	"tierra_admin/internal/storage"
	"tierra_admin/internal/transport/http/dto"

	"github.com/google/uuid"
)

// ContentService covers the schema registry and the entry store: type
// management, entry writes validated against their schema, and the
// slug+id entry resolution used by public pages.
type ContentService struct {
	log     *slog.Logger
	types   repository.ContentTypeRepository
	entries repository.ContentEntryRepository
}

func NewContentService(log *slog.Logger, types repository.ContentTypeRepository, entries repository.ContentEntryRepository) *ContentService {
	return &ContentService{log: log, types: types, entries: entries}
}

func (s *ContentService) CreateContentType(ctx context.Context, req dto.CreateContentTypeRequest) (uuid.UUID, error) {
	const op = "content_service.CreateContentType"
	log := s.log.With(slog.String("op", op), slog.String("name", req.Name))

	ct := req.ToDomain()
	if ct.APIIdentifier == "" {
		ct.APIIdentifier = generateSlug(ct.Name)
		log.Debug("generated api identifier", slog.String("api_identifier", ct.APIIdentifier))
	}

	if err := ct.Validate(); err != nil {
		log.Warn("content type validation failed", sl.Err(err))
		return uuid.Nil, err
	}

	id, err := s.types.SaveContentType(ctx, ct)
	if err != nil {
		log.Error("failed to create content type", sl.Err(err))
		return uuid.Nil, fmt.Errorf("failed to create content type: %w", err)
	}

	log.Info("content type created", slog.String("content_type_id", id.String()))
	return id, nil
}

func (s *ContentService) GetContentTypeBySlug(ctx context.Context, apiIdentifier string) (*dto.ContentTypeResponse, error) {
	const op = "content_service.GetContentTypeBySlug"
	log := s.log.With(slog.String("op", op), slog.String("api_identifier", apiIdentifier))

	ct, err := s.types.ContentTypeBySlug(ctx, apiIdentifier)
	if err != nil {
		log.Warn("failed to get content type", sl.Err(err))
		return nil, fmt.Errorf("failed to get content type: %w", err)
	}

	resp := dto.NewContentTypeResponse(ct)
	return &resp, nil
}

func (s *ContentService) ListContentTypes(ctx context.Context) (*dto.ContentTypeListResponse, error) {
	const op = "content_service.ListContentTypes"
	log := s.log.With(slog.String("op", op))

	types, err := s.types.ListContentTypes(ctx)
	if err != nil {
		log.Error("failed to list content types", sl.Err(err))
		return nil, fmt.Errorf("failed to list content types: %w", err)
	}

	resp := &dto.ContentTypeListResponse{
		ContentTypes: make([]dto.ContentTypeResponse, 0, len(types)),
	}
	for i := range types {
		resp.ContentTypes = append(resp.ContentTypes, dto.NewContentTypeResponse(&types[i]))
	}

	return resp, nil
}

func (s *ContentService) DeleteContentType(ctx context.Context, id uuid.UUID) error {
	const op = "content_service.DeleteContentType"
	log := s.log.With(slog.String("op", op), slog.String("content_type_id", id.String()))

	if err := s.types.DeleteContentType(ctx, id); err != nil {
		log.Error("failed to delete content type", sl.Err(err))
		return fmt.Errorf("failed to delete content type: %w", err)
	}

	log.Info("content type deleted")
	return nil
}

// CreateEntry stores a new entry under the schema named by the slug.
// The data is checked against the schema's declared fields before any
// write happens.
func (s *ContentService) CreateEntry(ctx context.Context, schemaSlug string, data models.FieldValues) (uuid.UUID, error) {
	const op = "content_service.CreateEntry"
	log := s.log.With(slog.String("op", op), slog.String("schema_slug", schemaSlug))

	ct, err := s.types.ContentTypeBySlug(ctx, schemaSlug)
	if err != nil {
		log.Warn("failed to resolve schema", sl.Err(err))
		return uuid.Nil, fmt.Errorf("failed to resolve schema: %w", err)
	}

	entry := models.ContentEntry{ContentTypeID: ct.ID, Data: data}
	if err := entry.ValidateAgainst(ct); err != nil {
		log.Warn("entry validation failed", sl.Err(err))
		return uuid.Nil, err
	}

	id, err := s.entries.SaveEntry(ctx, entry)
	if err != nil {
		log.Error("failed to save entry", sl.Err(err))
		return uuid.Nil, fmt.Errorf("failed to save entry: %w", err)
	}

	log.Info("entry created", slog.String("entry_id", id.String()))
	return id, nil
}

func (s *ContentService) UpdateEntry(ctx context.Context, entryID uuid.UUID, data models.FieldValues) error {
	const op = "content_service.UpdateEntry"
	log := s.log.With(slog.String("op", op), slog.String("entry_id", entryID.String()))

	entry, err := s.entries.EntryByID(ctx, entryID)
	if err != nil {
		log.Warn("failed to get entry", sl.Err(err))
		return fmt.Errorf("failed to get entry: %w", err)
	}

	updated := models.ContentEntry{ContentTypeID: entry.ContentTypeID, Data: data}
	if err := updated.ValidateAgainst(entry.ContentType); err != nil {
		log.Warn("entry validation failed", sl.Err(err))
		return err
	}

	if err := s.entries.UpdateEntryData(ctx, entryID, data); err != nil {
		log.Error("failed to update entry", sl.Err(err))
		return fmt.Errorf("failed to update entry: %w", err)
	}

	log.Info("entry updated")
	return nil
}

func (s *ContentService) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	const op = "content_service.DeleteEntry"
	log := s.log.With(slog.String("op", op), slog.String("entry_id", entryID.String()))

	if err := s.entries.DeleteEntry(ctx, entryID); err != nil {
		log.Error("failed to delete entry", sl.Err(err))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	log.Info("entry deleted")
	return nil
}

func (s *ContentService) ListEntries(ctx context.Context, schemaSlug string, page, perPage int) (*dto.EntryListResponse, error) {
	const op = "content_service.ListEntries"
	log := s.log.With(slog.String("op", op), slog.String("schema_slug", schemaSlug))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	ct, err := s.types.ContentTypeBySlug(ctx, schemaSlug)
	if err != nil {
		log.Warn("failed to resolve schema", sl.Err(err))
		return nil, fmt.Errorf("failed to resolve schema: %w", err)
	}

	entries, total, err := s.entries.ListEntries(ctx, ct.ID, page, perPage)
	if err != nil {
		log.Error("failed to list entries", sl.Err(err))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := &dto.EntryListResponse{
		Entries:    make([]dto.ResolvedEntry, 0, len(entries)),
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}
	for i := range entries {
		entries[i].ContentType = ct
		resp.Entries = append(resp.Entries, *dto.NewResolvedEntry(&entries[i]))
	}

	return resp, nil
}

// ResolveEntry translates a (schema slug, entry id) pair into a
// verified, transport-safe projection.
//
// Absence in any form (unknown slug, unknown entry, an entry that
// belongs to a different schema) collapses into ErrEntryNotFound so a
// wrong URL namespace can never serve another schema's entry.
// Infrastructure faults are returned as distinct errors; mapping them
// to a response is the caller's decision, not this function's.
func (s *ContentService) ResolveEntry(ctx context.Context, schemaSlug, entryID string) (*dto.ResolvedEntry, error) {
	const op = "content_service.ResolveEntry"
	log := s.log.With(
		slog.String("op", op),
		slog.String("schema_slug", schemaSlug),
		slog.String("entry_id", entryID),
	)

	if strings.TrimSpace(schemaSlug) == "" {
		metrics.EntriesResolvedTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%s: %w", op, storage.ErrEntryNotFound)
	}

	// The entry id is opaque to callers; anything unparseable cannot
	// name a stored entry.
	id, err := uuid.Parse(entryID)
	if err != nil {
		metrics.EntriesResolvedTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%s: %w", op, storage.ErrEntryNotFound)
	}

	ct, err := s.types.ContentTypeBySlug(ctx, schemaSlug)
	if err != nil {
		if errors.Is(err, storage.ErrContentTypeNotFound) {
			metrics.EntriesResolvedTotal.WithLabelValues("not_found").Inc()
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEntryNotFound)
		}
		log.Error("content type lookup failed", sl.Err(err))
		metrics.EntriesResolvedTotal.WithLabelValues("fault").Inc()
		return nil, fmt.Errorf("%s: content type lookup failed: %w", op, err)
	}

	entry, err := s.entries.EntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			metrics.EntriesResolvedTotal.WithLabelValues("not_found").Inc()
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEntryNotFound)
		}
		log.Error("entry lookup failed", sl.Err(err))
		metrics.EntriesResolvedTotal.WithLabelValues("fault").Inc()
		return nil, fmt.Errorf("%s: entry lookup failed: %w", op, err)
	}

	if entry.ContentTypeID != ct.ID {
		log.Warn("entry does not belong to requested schema",
			slog.String("entry_content_type_id", entry.ContentTypeID.String()),
			slog.String("schema_content_type_id", ct.ID.String()),
		)
		metrics.EntriesResolvedTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%s: %w", op, storage.ErrEntryNotFound)
	}

	metrics.EntriesResolvedTotal.WithLabelValues("found").Inc()
	return dto.NewResolvedEntry(entry), nil
}

func generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, `"`, "")
	return slug
}
