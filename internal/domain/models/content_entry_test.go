package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tourContentType() *ContentType {
	return &ContentType{
		ID:            uuid.New(),
		Name:          "Tours",
		APIIdentifier: "tours",
		Fields: FieldList{
			{Name: "title", Kind: FieldKindText, Required: true},
			{Name: "body", Kind: FieldKindRichText},
			{Name: "price", Kind: FieldKindNumber},
			{Name: "featured", Kind: FieldKindBoolean},
			{Name: "starts_at", Kind: FieldKindDate},
			{Name: "cover", Kind: FieldKindMedia},
			{Name: "tags", Kind: FieldKindList},
		},
	}
}

func TestContentEntry_ValidateAgainst(t *testing.T) {
	ct := tourContentType()

	tests := []struct {
		name    string
		data    FieldValues
		wantErr string
	}{
		{
			name: "complete valid entry",
			data: FieldValues{
				"title":     "City Walk",
				"body":      "<p>Full text</p>",
				"price":     float64(120000),
				"featured":  true,
				"starts_at": time.Now().UTC().Format(time.RFC3339),
				"cover":     "/uploads/cover.jpg",
				"tags":      []any{"walking", "city"},
			},
		},
		{
			name: "optional fields may be absent",
			data: FieldValues{"title": "Bare minimum"},
		},
		{
			name:    "required field missing",
			data:    FieldValues{"body": "text"},
			wantErr: `field "title" is required`,
		},
		{
			name:    "wrong kind for number",
			data:    FieldValues{"title": "x", "price": "cheap"},
			wantErr: `field "price" must be a number`,
		},
		{
			name:    "wrong kind for boolean",
			data:    FieldValues{"title": "x", "featured": "yes"},
			wantErr: `field "featured" must be a boolean`,
		},
		{
			name:    "malformed date",
			data:    FieldValues{"title": "x", "starts_at": "tomorrow"},
			wantErr: `not a valid RFC3339 date`,
		},
		{
			name:    "blank media url",
			data:    FieldValues{"title": "x", "cover": "  "},
			wantErr: `must be a non-empty media URL`,
		},
		{
			name:    "undeclared field rejected",
			data:    FieldValues{"title": "x", "rating": 5},
			wantErr: `field "rating" is not declared`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ContentEntry{ID: uuid.New(), ContentTypeID: ct.ID, Data: tt.data}

			err := entry.ValidateAgainst(ct)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsEntryValidationError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestContentType_Validate(t *testing.T) {
	ct := tourContentType()
	require.NoError(t, ct.Validate())

	bad := &ContentType{
		Name:          "Broken",
		APIIdentifier: "Not A Slug",
		Fields: FieldList{
			{Name: "a", Kind: FieldKindText},
			{Name: "a", Kind: "enum"},
		},
	}

	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, IsSchemaValidationError(err))
	assert.Contains(t, err.Error(), "is not a valid slug")
	assert.Contains(t, err.Error(), `duplicate field name "a"`)
	assert.Contains(t, err.Error(), `invalid kind "enum"`)
}
