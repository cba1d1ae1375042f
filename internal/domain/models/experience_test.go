package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGallery_SetSlot(t *testing.T) {
	tests := []struct {
		name    string
		gallery Gallery
		index   int
		url     string
		want    Gallery
	}{
		{
			name:    "append to empty gallery",
			gallery: Gallery{},
			index:   0,
			url:     "a.jpg",
			want:    Gallery{"a.jpg"},
		},
		{
			name:    "overwrite existing slot",
			gallery: Gallery{"a.jpg", "b.jpg"},
			index:   1,
			url:     "c.jpg",
			want:    Gallery{"a.jpg", "c.jpg"},
		},
		{
			name:    "index beyond length appends",
			gallery: Gallery{"a.jpg"},
			index:   3,
			url:     "b.jpg",
			want:    Gallery{"a.jpg", "b.jpg"},
		},
		{
			name:    "fifth image overwrites last slot",
			gallery: Gallery{"a.jpg", "b.jpg", "c.jpg", "d.jpg"},
			index:   4,
			url:     "e.jpg",
			want:    Gallery{"a.jpg", "b.jpg", "c.jpg", "e.jpg"},
		},
		{
			name:    "negative index clamps to first slot",
			gallery: Gallery{"a.jpg", "b.jpg"},
			index:   -2,
			url:     "z.jpg",
			want:    Gallery{"z.jpg", "b.jpg"},
		},
		{
			name:    "blank url is dropped",
			gallery: Gallery{"a.jpg", "b.jpg"},
			index:   0,
			url:     "   ",
			want:    Gallery{"b.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.gallery.SetSlot(tt.index, tt.url)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), MaxGalleryImages)
		})
	}
}

func TestGallery_EditSlot(t *testing.T) {
	g := Gallery{"a.jpg", "b.jpg", "c.jpg"}

	g = g.EditSlot(1, "x.jpg")
	assert.Equal(t, Gallery{"a.jpg", "x.jpg", "c.jpg"}, g)

	// empty value removes the slot and shifts left, no gaps retained
	g = g.EditSlot(1, "")
	assert.Equal(t, Gallery{"a.jpg", "c.jpg"}, g)

	g = g.RemoveSlot(5)
	assert.Equal(t, Gallery{"a.jpg", "c.jpg"}, g)
}

func TestGallery_InvariantUnderOpSequences(t *testing.T) {
	g := Gallery{}
	ops := []func(Gallery) Gallery{
		func(g Gallery) Gallery { return g.SetSlot(0, "1.jpg") },
		func(g Gallery) Gallery { return g.SetSlot(7, "2.jpg") },
		func(g Gallery) Gallery { return g.EditSlot(1, " ") },
		func(g Gallery) Gallery { return g.SetSlot(2, "3.jpg") },
		func(g Gallery) Gallery { return g.SetSlot(3, "4.jpg") },
		func(g Gallery) Gallery { return g.SetSlot(3, "5.jpg") },
		func(g Gallery) Gallery { return g.RemoveSlot(0) },
		func(g Gallery) Gallery { return g.SetSlot(9, "6.jpg") },
	}

	for _, op := range ops {
		g = op(g)
		assert.LessOrEqual(t, len(g), MaxGalleryImages)
		for _, url := range g {
			assert.NotEmpty(t, url)
		}
	}
}

func TestToggleWeekday(t *testing.T) {
	days := []Weekday{}

	days = ToggleWeekday(days, Friday)
	days = ToggleWeekday(days, Monday)
	assert.ElementsMatch(t, []Weekday{Monday, Friday}, days)

	days = ToggleWeekday(days, Friday)
	assert.ElementsMatch(t, []Weekday{Monday}, days)

	days = ToggleWeekday(days, Sunday)
	days = ToggleWeekday(days, Wednesday)
	assert.Equal(t, []Weekday{Monday, Wednesday, Sunday}, SortWeekdays(days))
}

func TestExperience_ValidateForPublish(t *testing.T) {
	valid := Experience{
		Title:        "City Walk",
		Summary:      "A walk",
		Narrative:    "Full text",
		DurationType: DurationSingleDay,
		Currency:     CurrencyUSD,
	}

	require.NoError(t, valid.ValidateForPublish())

	tests := []struct {
		name    string
		mutate  func(*Experience)
		wantErr string
	}{
		{"missing title", func(x *Experience) { x.Title = "" }, "title is required"},
		{"missing summary", func(x *Experience) { x.Summary = " " }, "summary is required"},
		{"missing narrative", func(x *Experience) { x.Narrative = "" }, "narrative is required"},
		{"bad duration type", func(x *Experience) { x.DurationType = "weekly" }, "invalid duration type"},
		{"bad currency", func(x *Experience) { x.Currency = "GBP" }, "invalid currency"},
		{"blank gallery slot", func(x *Experience) { x.Gallery = Gallery{"a.jpg", ""} }, "gallery slot 1 is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := valid
			tt.mutate(&x)

			err := x.ValidateForPublish()
			require.Error(t, err)
			assert.True(t, IsExperienceValidationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
