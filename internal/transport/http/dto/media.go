package dto

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

type MediaUploadInput struct {
	UploaderID uuid.UUID             `json:"uploader_id" validate:"required"`
	File       *multipart.FileHeader `json:"-" form:"file" validate:"required"`
	MediaType  string                `json:"media_type" validate:"required,oneof=photo document"`
	Width      *int                  `json:"width,omitempty" validate:"omitempty,min=1"`
	Height     *int                  `json:"height,omitempty" validate:"omitempty,min=1"`
	Metadata   map[string]any        `json:"metadata,omitempty"`
}

// MediaItem is one picker choice: the confirmed selection supplies
// exactly its URL to the form gallery.
type MediaItem struct {
	ID        uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MediaListResponse struct {
	Items []MediaItem `json:"items"`
}
