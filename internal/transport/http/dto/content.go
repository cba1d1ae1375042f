package dto

import (
	"time"

	"tierra_admin/internal/domain/models"

	"github.com/google/uuid"
)

type FieldInput struct {
	Name        string         `json:"name" validate:"required,max=64"`
	Kind        string         `json:"kind" validate:"required,oneof=text richtext number boolean date media list"`
	Required    bool           `json:"required"`
	Constraints map[string]any `json:"constraints,omitempty"`
}

type CreateContentTypeRequest struct {
	Name          string       `json:"name" validate:"required,min=2,max=100"`
	APIIdentifier string       `json:"api_identifier,omitempty" validate:"omitempty,slug"`
	Fields        []FieldInput `json:"fields" validate:"required,min=1,dive"`
}

// ToDomain maps the request onto the schema model.
func (r *CreateContentTypeRequest) ToDomain() models.ContentType {
	fields := make(models.FieldList, 0, len(r.Fields))
	for _, f := range r.Fields {
		fields = append(fields, models.FieldDefinition{
			Name:        f.Name,
			Kind:        models.FieldKind(f.Kind),
			Required:    f.Required,
			Constraints: f.Constraints,
		})
	}

	return models.ContentType{
		Name:          r.Name,
		APIIdentifier: r.APIIdentifier,
		Fields:        fields,
	}
}

// ContentTypeResponse carries timestamps as RFC3339 strings so the
// payload is safe for renderers that cannot move rich temporal types
// across the server/client boundary.
type ContentTypeResponse struct {
	ID            uuid.UUID        `json:"id" swaggertype:"string" format:"uuid"`
	Name          string           `json:"name"`
	APIIdentifier string           `json:"api_identifier"`
	Fields        models.FieldList `json:"fields"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

func NewContentTypeResponse(ct *models.ContentType) ContentTypeResponse {
	return ContentTypeResponse{
		ID:            ct.ID,
		Name:          ct.Name,
		APIIdentifier: ct.APIIdentifier,
		Fields:        ct.Fields,
		CreatedAt:     ct.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     ct.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type ContentTypeListResponse struct {
	ContentTypes []ContentTypeResponse `json:"content_types"`
}

type CreateEntryRequest struct {
	Data models.FieldValues `json:"data" validate:"required"`
}

type UpdateEntryRequest struct {
	Data models.FieldValues `json:"data" validate:"required"`
}

// ResolvedEntry is the transport-safe projection of a content entry
// together with its normalized owning content type.
type ResolvedEntry struct {
	ID            uuid.UUID           `json:"id" swaggertype:"string" format:"uuid"`
	ContentTypeID uuid.UUID           `json:"content_type_id" swaggertype:"string" format:"uuid"`
	Data          models.FieldValues  `json:"data"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
	ContentType   ContentTypeResponse `json:"content_type"`
}

func NewResolvedEntry(entry *models.ContentEntry) *ResolvedEntry {
	resolved := &ResolvedEntry{
		ID:            entry.ID,
		ContentTypeID: entry.ContentTypeID,
		Data:          entry.Data,
		CreatedAt:     entry.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     entry.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if entry.ContentType != nil {
		resolved.ContentType = NewContentTypeResponse(entry.ContentType)
	}
	return resolved
}

type EntryListResponse struct {
	Entries    []ResolvedEntry `json:"entries"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}
