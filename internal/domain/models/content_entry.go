package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FieldValues is the open field-name to value mapping of an entry,
// stored as JSONB. Its shape is fixed by the owning content type and
// checked at write time, not by the storage layer.
type FieldValues map[string]any

// ContentEntry is one record conforming to a ContentType.
type ContentEntry struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	ContentTypeID uuid.UUID    `json:"content_type_id" db:"content_type_id"`
	Data          FieldValues  `json:"data" db:"data"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
	ContentType   *ContentType `json:"content_type,omitempty" db:"-"`
}

// Value implements driver.Valuer for JSONB storage.
func (v FieldValues) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// Scan implements sql.Scanner for JSONB columns.
func (v *FieldValues) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported scan type %T for FieldValues", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, v)
}

// ValidateAgainst checks the entry data against the declared schema:
// required fields must be present, values must match their declared
// kind, and fields the schema does not declare are rejected.
func (e *ContentEntry) ValidateAgainst(ct *ContentType) error {
	var validationErrors []string

	for _, f := range ct.Fields {
		val, ok := e.Data[f.Name]
		if !ok || val == nil {
			if f.Required {
				validationErrors = append(validationErrors,
					fmt.Sprintf("field %q is required", f.Name))
			}
			continue
		}
		if err := checkFieldKind(f, val); err != nil {
			validationErrors = append(validationErrors, err.Error())
		}
	}

	for name := range e.Data {
		if ct.Fields.Field(name) == nil {
			validationErrors = append(validationErrors,
				fmt.Sprintf("field %q is not declared by content type %q", name, ct.APIIdentifier))
		}
	}

	if len(validationErrors) > 0 {
		return &EntryValidationError{Errors: validationErrors}
	}

	return nil
}

func checkFieldKind(f FieldDefinition, val any) error {
	switch f.Kind {
	case FieldKindText, FieldKindRichText:
		if _, ok := val.(string); !ok {
			return fmt.Errorf("field %q must be a string", f.Name)
		}
	case FieldKindNumber:
		switch val.(type) {
		case float64, int, int64:
		default:
			return fmt.Errorf("field %q must be a number", f.Name)
		}
	case FieldKindBoolean:
		if _, ok := val.(bool); !ok {
			return fmt.Errorf("field %q must be a boolean", f.Name)
		}
	case FieldKindDate:
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("field %q must be an RFC3339 date string", f.Name)
		}
		if _, err := time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("field %q is not a valid RFC3339 date: %v", f.Name, err)
		}
	case FieldKindMedia:
		s, ok := val.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("field %q must be a non-empty media URL", f.Name)
		}
	case FieldKindList:
		if _, ok := val.([]any); !ok {
			return fmt.Errorf("field %q must be a list", f.Name)
		}
	}
	return nil
}

// EntryValidationError aggregates schema conformance problems.
type EntryValidationError struct {
	Errors []string
}

func (e *EntryValidationError) Error() string {
	return fmt.Sprintf("entry validation failed: %s", strings.Join(e.Errors, "; "))
}

func IsEntryValidationError(err error) bool {
	_, ok := err.(*EntryValidationError)
	return ok
}
