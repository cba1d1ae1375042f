package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MediaType string

type Metadata map[string]interface{}

const (
	MediaTypePhoto    MediaType = "photo"
	MediaTypeDocument MediaType = "document"
)

// Media is one uploaded file available to the picker.
type Media struct {
	ID               uuid.UUID `json:"id" db:"id"`
	UploaderID       uuid.UUID `json:"uploader_id" db:"uploader_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	MediaType        MediaType `json:"media_type" db:"media_type"`
	OriginalFilename string    `json:"original_filename" db:"original_filename"`
	StoragePath      string    `json:"storage_path" db:"storage_path"`
	FileSize         int64     `json:"file_size" db:"file_size"`
	MimeType         string    `json:"mime_type,omitempty" db:"mime_type"`
	Width            *int      `json:"width,omitempty" db:"width"`
	Height           *int      `json:"height,omitempty" db:"height"`
	Metadata         Metadata  `json:"metadata,omitempty" db:"metadata"`
}

// Value implements driver.Valuer for JSONB storage of Metadata.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB columns.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported scan type %T for Metadata", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, m)
}

// URL builds the public URL of the file under the given base.
func (m *Media) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(m.StoragePath, "/")
}

// Validate checks the fields the upload path must guarantee.
func (m *Media) Validate() error {
	var validationErrors []string

	if m.UploaderID == uuid.Nil {
		validationErrors = append(validationErrors, "uploader ID is required")
	}
	if m.OriginalFilename == "" {
		validationErrors = append(validationErrors, "original filename is required")
	}
	if len(m.OriginalFilename) > 255 {
		validationErrors = append(validationErrors, "original filename must be 255 characters or less")
	}
	if m.StoragePath == "" {
		validationErrors = append(validationErrors, "storage path is required")
	}
	if m.FileSize <= 0 {
		validationErrors = append(validationErrors, "file size must be positive")
	}

	switch m.MediaType {
	case MediaTypePhoto:
		if m.Width != nil && *m.Width <= 0 {
			validationErrors = append(validationErrors, "width must be positive")
		}
		if m.Height != nil && *m.Height <= 0 {
			validationErrors = append(validationErrors, "height must be positive")
		}
	case MediaTypeDocument:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("invalid media type %q, must be one of: %v",
				m.MediaType, []string{string(MediaTypePhoto), string(MediaTypeDocument)}))
	}

	if len(validationErrors) > 0 {
		return &MediaValidationError{Errors: validationErrors}
	}

	return nil
}

// MediaValidationError aggregates upload validation problems.
type MediaValidationError struct {
	Errors []string
}

func (e *MediaValidationError) Error() string {
	return fmt.Sprintf("media validation failed: %s", strings.Join(e.Errors, "; "))
}

func IsMediaValidationError(err error) bool {
	_, ok := err.(*MediaValidationError)
	return ok
}
