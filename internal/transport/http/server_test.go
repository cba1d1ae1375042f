package http_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/storage"
	httpapp "tierra_admin/internal/transport/http"
	"tierra_admin/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContentService struct {
	mock.Mock
}

func (m *mockContentService) CreateContentType(ctx context.Context, req dto.CreateContentTypeRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockContentService) GetContentTypeBySlug(ctx context.Context, apiIdentifier string) (*dto.ContentTypeResponse, error) {
	args := m.Called(ctx, apiIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ContentTypeResponse), args.Error(1)
}

func (m *mockContentService) ListContentTypes(ctx context.Context) (*dto.ContentTypeListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ContentTypeListResponse), args.Error(1)
}

func (m *mockContentService) DeleteContentType(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockContentService) CreateEntry(ctx context.Context, schemaSlug string, data models.FieldValues) (uuid.UUID, error) {
	args := m.Called(ctx, schemaSlug, data)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockContentService) UpdateEntry(ctx context.Context, entryID uuid.UUID, data models.FieldValues) error {
	args := m.Called(ctx, entryID, data)
	return args.Error(0)
}

func (m *mockContentService) DeleteEntry(ctx context.Context, entryID uuid.UUID) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *mockContentService) ListEntries(ctx context.Context, schemaSlug string, page, perPage int) (*dto.EntryListResponse, error) {
	args := m.Called(ctx, schemaSlug, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EntryListResponse), args.Error(1)
}

func (m *mockContentService) ResolveEntry(ctx context.Context, schemaSlug, entryID string) (*dto.ResolvedEntry, error) {
	args := m.Called(ctx, schemaSlug, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ResolvedEntry), args.Error(1)
}

type mockExperienceService struct {
	mock.Mock
}

func (m *mockExperienceService) CreateExperience(ctx context.Context, req dto.SubmitExperienceRequest) (*dto.ExperienceResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExperienceResult), args.Error(1)
}

func (m *mockExperienceService) UpdateExperience(ctx context.Context, id uuid.UUID, req dto.SubmitExperienceRequest) (*dto.ExperienceResult, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExperienceResult), args.Error(1)
}

func (m *mockExperienceService) GetExperience(ctx context.Context, id uuid.UUID) (*dto.ExperienceResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExperienceResponse), args.Error(1)
}

func (m *mockExperienceService) GetExperienceBySlug(ctx context.Context, slug string) (*dto.ExperienceResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExperienceResponse), args.Error(1)
}

func (m *mockExperienceService) ListExperiences(ctx context.Context, statusFilter string, page, perPage int) (*dto.ExperienceListResponse, error) {
	args := m.Called(ctx, statusFilter, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExperienceListResponse), args.Error(1)
}

func (m *mockExperienceService) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestRouter(content *mockContentService, experience *mockExperienceService) *httpapp.Routers {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpapp.NewRouter(log, nil, nil, content, experience, nil)
}

func doResolve(t *testing.T, router *httpapp.Routers, slug, id string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/content/%s/entries/%s", slug, id), nil)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/content/:slug/entries/:id")
	c.SetParamNames("slug", "id")
	c.SetParamValues(slug, id)

	require.NoError(t, router.ResolveEntry(c))
	return rec
}

func TestRouters_ResolveEntry(t *testing.T) {
	entryID := uuid.New()

	t.Run("found entry returns the envelope", func(t *testing.T) {
		content := new(mockContentService)
		content.On("ResolveEntry", mock.Anything, "tours", entryID.String()).
			Return(&dto.ResolvedEntry{ID: entryID}, nil)

		rec := doResolve(t, newTestRouter(content, nil), "tours", entryID.String())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"success"`)
		assert.Contains(t, rec.Body.String(), entryID.String())
	})

	t.Run("missing entry is 404", func(t *testing.T) {
		content := new(mockContentService)
		content.On("ResolveEntry", mock.Anything, "tours", entryID.String()).
			Return(nil, storage.ErrEntryNotFound)

		rec := doResolve(t, newTestRouter(content, nil), "tours", entryID.String())

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("infrastructure fault is 500, not 404", func(t *testing.T) {
		content := new(mockContentService)
		content.On("ResolveEntry", mock.Anything, "tours", entryID.String()).
			Return(nil, fmt.Errorf("content type lookup failed: %w", assert.AnError))

		rec := doResolve(t, newTestRouter(content, nil), "tours", entryID.String())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "internal_error")
	})
}

func TestRouters_GetPublicExperience(t *testing.T) {
	doGet := func(t *testing.T, router *httpapp.Routers, slug string) *httptest.ResponseRecorder {
		t.Helper()

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/experiences/"+slug, nil)
		rec := httptest.NewRecorder()

		c := e.NewContext(req, rec)
		c.SetPath("/experiences/:slug")
		c.SetParamNames("slug")
		c.SetParamValues(slug)

		require.NoError(t, router.GetPublicExperience(c))
		return rec
	}

	t.Run("published experience is served", func(t *testing.T) {
		experience := new(mockExperienceService)
		experience.On("GetExperienceBySlug", mock.Anything, "city-walk").
			Return(&dto.ExperienceResponse{Slug: "city-walk", Status: "published"}, nil)

		rec := doGet(t, newTestRouter(nil, experience), "city-walk")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "city-walk")
	})

	t.Run("draft is hidden from the public route", func(t *testing.T) {
		experience := new(mockExperienceService)
		experience.On("GetExperienceBySlug", mock.Anything, "secret-draft").
			Return(&dto.ExperienceResponse{Slug: "secret-draft", Status: "draft"}, nil)

		rec := doGet(t, newTestRouter(nil, experience), "secret-draft")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		experience := new(mockExperienceService)
		experience.On("GetExperienceBySlug", mock.Anything, "missing").
			Return(nil, storage.ErrExperienceNotFound)

		rec := doGet(t, newTestRouter(nil, experience), "missing")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
