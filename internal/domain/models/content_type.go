package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindRichText FieldKind = "richtext"
	FieldKindNumber   FieldKind = "number"
	FieldKindBoolean  FieldKind = "boolean"
	FieldKindDate     FieldKind = "date"
	FieldKindMedia    FieldKind = "media"
	FieldKindList     FieldKind = "list"
)

// FieldDefinition describes one typed field of a content type.
type FieldDefinition struct {
	Name        string         `json:"name"`
	Kind        FieldKind      `json:"kind"`
	Required    bool           `json:"required"`
	Constraints map[string]any `json:"constraints,omitempty"`
}

// FieldList is the ordered field set of a content type, stored as JSONB.
type FieldList []FieldDefinition

// ContentType is a named schema definition for entries. Entry operations
// reference it by its api identifier and never mutate it.
type ContentType struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	APIIdentifier string    `json:"api_identifier" db:"api_identifier"`
	Fields        FieldList `json:"fields" db:"fields"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindRichText, FieldKindNumber,
		FieldKindBoolean, FieldKindDate, FieldKindMedia, FieldKindList:
		return true
	}
	return false
}

// Field returns the definition with the given name, or nil.
func (l FieldList) Field(name string) *FieldDefinition {
	for i := range l {
		if l[i].Name == name {
			return &l[i]
		}
	}
	return nil
}

// Value implements driver.Valuer so a FieldList is stored as JSONB.
func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB columns.
func (l *FieldList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported scan type %T for FieldList", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// Validate checks the schema definition itself: a URL-safe unique
// identifier, at least one field, valid kinds and no duplicate names.
func (ct *ContentType) Validate() error {
	var validationErrors []string

	if ct.Name == "" {
		validationErrors = append(validationErrors, "name is required")
	}
	if ct.APIIdentifier == "" {
		validationErrors = append(validationErrors, "api identifier is required")
	} else if !slugPattern.MatchString(ct.APIIdentifier) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("api identifier %q is not a valid slug", ct.APIIdentifier))
	}
	if len(ct.Fields) == 0 {
		validationErrors = append(validationErrors, "at least one field is required")
	}

	seen := make(map[string]struct{}, len(ct.Fields))
	for _, f := range ct.Fields {
		if f.Name == "" {
			validationErrors = append(validationErrors, "field name is required")
			continue
		}
		if _, dup := seen[f.Name]; dup {
			validationErrors = append(validationErrors,
				fmt.Sprintf("duplicate field name %q", f.Name))
		}
		seen[f.Name] = struct{}{}

		if !f.Kind.Valid() {
			validationErrors = append(validationErrors,
				fmt.Sprintf("field %q has invalid kind %q", f.Name, f.Kind))
		}
	}

	if len(validationErrors) > 0 {
		return &SchemaValidationError{Errors: validationErrors}
	}

	return nil
}

// SchemaValidationError aggregates content type definition problems.
type SchemaValidationError struct {
	Errors []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("content type validation failed: %s", strings.Join(e.Errors, "; "))
}

func IsSchemaValidationError(err error) bool {
	_, ok := err.(*SchemaValidationError)
	return ok
}
