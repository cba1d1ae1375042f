package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"tierra_admin/internal/domain/models"
	"tierra_admin/internal/lib/logger/sl"
	"tierra_admin/internal/storage"
	"tierra_admin/internal/transport/http/dto"
	"tierra_admin/internal/transport/http/dto/request"
	"tierra_admin/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "tierra_admin/docs"
)

type UserService interface {
	Login(ctx context.Context, email, password string) (string, error)
	RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type AuthService interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

type ContentService interface {
	CreateContentType(ctx context.Context, req dto.CreateContentTypeRequest) (uuid.UUID, error)
	GetContentTypeBySlug(ctx context.Context, apiIdentifier string) (*dto.ContentTypeResponse, error)
	ListContentTypes(ctx context.Context) (*dto.ContentTypeListResponse, error)
	DeleteContentType(ctx context.Context, id uuid.UUID) error
	CreateEntry(ctx context.Context, schemaSlug string, data models.FieldValues) (uuid.UUID, error)
	UpdateEntry(ctx context.Context, entryID uuid.UUID, data models.FieldValues) error
	DeleteEntry(ctx context.Context, entryID uuid.UUID) error
	ListEntries(ctx context.Context, schemaSlug string, page, perPage int) (*dto.EntryListResponse, error)
	ResolveEntry(ctx context.Context, schemaSlug, entryID string) (*dto.ResolvedEntry, error)
}

type ExperienceService interface {
	CreateExperience(ctx context.Context, req dto.SubmitExperienceRequest) (*dto.ExperienceResult, error)
	UpdateExperience(ctx context.Context, id uuid.UUID, req dto.SubmitExperienceRequest) (*dto.ExperienceResult, error)
	GetExperience(ctx context.Context, id uuid.UUID) (*dto.ExperienceResponse, error)
	GetExperienceBySlug(ctx context.Context, slug string) (*dto.ExperienceResponse, error)
	ListExperiences(ctx context.Context, statusFilter string, page, perPage int) (*dto.ExperienceListResponse, error)
	DeleteExperience(ctx context.Context, id uuid.UUID) error
}

type MediaService interface {
	UploadMedia(ctx context.Context, input dto.MediaUploadInput) (*models.Media, error)
	ListImages(ctx context.Context) (*dto.MediaListResponse, error)
}

type Routers struct {
	log               *slog.Logger
	UserService       UserService
	AuthService       AuthService
	ContentService    ContentService
	ExperienceService ExperienceService
	MediaService      MediaService
}

func NewRouter(log *slog.Logger, userService UserService, authService AuthService, contentService ContentService, experienceService ExperienceService, mediaService MediaService) *Routers {
	return &Routers{
		log:               log,
		UserService:       userService,
		AuthService:       authService,
		ContentService:    contentService,
		ExperienceService: experienceService,
		MediaService:      mediaService,
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExist          = errors.New("user already exist")
	ErrInvalidUUID        = errors.New("not valid UUID")
)

// Login godoc
// @Summary Staff login
// @Description Authenticates by email and password, returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=map[string]string} "Token"
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Failure 401 {object} response.ErrorResponse "Authentication failed"
// @Router /api/v1/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	token, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		log.Warn("login failed", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	sess, _ := session.Get("session", c)
	sess.Values["token"] = token
	_ = sess.Save(c.Request(), c.Response())

	return c.JSON(http.StatusOK, response.Response{
		Status: "success",
		Data:   map[string]string{"access_token": token},
	})
}

// Register godoc
// @Summary Register a staff account
// @Description Creates an account and returns its id.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Registration data"
// @Success 201 {object} response.Response{data=object{user_id=string}} "Registered"
// @Failure 400 {object} response.ErrorResponse "Invalid request format"
// @Failure 409 {object} response.ErrorResponse "User already exists"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /api/v1/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UserRegisterInput

	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	userID, err := r.UserService.RegisterNewUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, ErrUserExist) {
			log.Warn("user already exists", slog.String("email", req.Email))
			return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
		}

		log.Error("registration failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	log.Info("user registered successfully", slog.String("user_id", userID.String()))

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data: map[string]uuid.UUID{
			"user_id": userID,
		},
	})
}

func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("validation bind", sl.Err(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	newTokens, err := r.AuthService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		log.Error("error refresh tokens", sl.Err(err))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	return c.JSON(http.StatusOK, newTokens)
}

// IsAdminPermission godoc
// @Summary Check admin status
// @Tags auth
// @Accept json
// @Produce json
// @Param user_id path string true "User UUID" format(uuid)
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.ErrorResponse "Invalid UUID"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/users/{user_id}/is-admin [get]
func (r *Routers) IsAdminPermission(c echo.Context) error {
	const op = "http.routers.IsAdminPermission"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("error parse uuid", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Status: "error",
			Error:  "invalid user ID format",
		})
	}

	isAdmin, err := r.UserService.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		log.Error("failed to check admin status", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status: "error",
			Error:  "failed to check admin status",
		})
	}

	sess, _ := session.Get("session", c)
	sess.Values["user_id"] = userID.String()
	_ = sess.Save(c.Request(), c.Response())

	return c.JSON(http.StatusOK, map[string]bool{
		"is_admin": isAdmin,
	})
}

// CreateContentType godoc
// @Summary Create a content type
// @Description Registers a new schema. The api identifier is generated from the name when omitted.
// @Tags content-types
// @Accept json
// @Produce json
// @Param request body dto.CreateContentTypeRequest true "Schema definition"
// @Success 201 {object} response.Response{data=object{content_type_id=string}}
// @Failure 400 {object} response.ErrorResponse "Invalid schema"
// @Failure 409 {object} response.ErrorResponse "Identifier already taken"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/content-types [post]
func (r *Routers) CreateContentType(c echo.Context) error {
	const op = "http.routers.CreateContentType"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateContentTypeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id, err := r.ContentService.CreateContentType(c.Request().Context(), req)
	if err != nil {
		if models.IsSchemaValidationError(err) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_schema", err.Error()))
		}
		if errors.Is(err, storage.ErrContentTypeExists) {
			return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails("identifier_taken", "API identifier already in use"))
		}
		log.Error("failed to create content type", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data:   map[string]uuid.UUID{"content_type_id": id},
	})
}

// ListContentTypes godoc
// @Summary List content types
// @Tags content-types
// @Produce json
// @Success 200 {object} response.Response{data=dto.ContentTypeListResponse}
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/content-types [get]
func (r *Routers) ListContentTypes(c echo.Context) error {
	const op = "http.routers.ListContentTypes"

	log := r.log.With(
		slog.String("op", op),
	)

	resp, err := r.ContentService.ListContentTypes(c.Request().Context())
	if err != nil {
		log.Error("failed to list content types", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resp))
}

// GetContentType godoc
// @Summary Get a content type by its api identifier
// @Tags content-types
// @Produce json
// @Param slug path string true "API identifier"
// @Success 200 {object} response.Response{data=dto.ContentTypeResponse}
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/content-types/{slug} [get]
func (r *Routers) GetContentType(c echo.Context) error {
	const op = "http.routers.GetContentType"

	log := r.log.With(
		slog.String("op", op),
	)

	resp, err := r.ContentService.GetContentTypeBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, storage.ErrContentTypeNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to get content type", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resp))
}

// DeleteContentType godoc
// @Summary Delete a content type
// @Tags content-types
// @Param id path string true "Content type UUID" format(uuid)
// @Success 204 "Deleted"
// @Failure 400 {object} response.ErrorResponse "Invalid UUID"
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/content-types/{id} [delete]
func (r *Routers) DeleteContentType(c echo.Context) error {
	const op = "http.routers.DeleteContentType"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", ErrInvalidUUID.Error()))
	}

	if err := r.ContentService.DeleteContentType(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrContentTypeNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to delete content type", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateEntry godoc
// @Summary Create a content entry
// @Description Stores an entry under the schema named by the slug, validating the data against it.
// @Tags entries
// @Accept json
// @Produce json
// @Param slug path string true "Schema api identifier"
// @Param request body dto.CreateEntryRequest true "Entry data"
// @Success 201 {object} response.Response{data=object{entry_id=string}}
// @Failure 400 {object} response.ErrorResponse "Data does not match the schema"
// @Failure 404 {object} response.ErrorResponse "Schema not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/content/{slug}/entries [post]
func (r *Routers) CreateEntry(c echo.Context) error {
	const op = "http.routers.CreateEntry"

	log := r.log.With(
		slog.String("op", op),
		slog.String("schema_slug", c.Param("slug")),
	)

	var req dto.CreateEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	id, err := r.ContentService.CreateEntry(c.Request().Context(), c.Param("slug"), req.Data)
	if err != nil {
		if models.IsEntryValidationError(err) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_entry", err.Error()))
		}
		if errors.Is(err, storage.ErrContentTypeNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to create entry", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.Response{
		Status: "success",
		Data:   map[string]uuid.UUID{"entry_id": id},
	})
}

// UpdateEntry godoc
// @Summary Update a content entry
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry UUID" format(uuid)
// @Param request body dto.UpdateEntryRequest true "New entry data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Data does not match the schema"
// @Failure 404 {object} response.ErrorResponse "Entry not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/entries/{id} [put]
func (r *Routers) UpdateEntry(c echo.Context) error {
	const op = "http.routers.UpdateEntry"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", ErrInvalidUUID.Error()))
	}

	var req dto.UpdateEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	if err := r.ContentService.UpdateEntry(c.Request().Context(), id, req.Data); err != nil {
		if models.IsEntryValidationError(err) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_entry", err.Error()))
		}
		if errors.Is(err, storage.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to update entry", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessMessage("entry updated"))
}

// DeleteEntry godoc
// @Summary Delete a content entry
// @Tags entries
// @Param id path string true "Entry UUID" format(uuid)
// @Success 204 "Deleted"
// @Failure 400 {object} response.ErrorResponse "Invalid UUID"
// @Failure 404 {object} response.ErrorResponse "Entry not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/entries/{id} [delete]
func (r *Routers) DeleteEntry(c echo.Context) error {
	const op = "http.routers.DeleteEntry"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", ErrInvalidUUID.Error()))
	}

	if err := r.ContentService.DeleteEntry(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to delete entry", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListEntries godoc
// @Summary List entries of a schema
// @Tags entries
// @Produce json
// @Param slug path string true "Schema api identifier"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} response.Response{data=dto.EntryListResponse}
// @Failure 404 {object} response.ErrorResponse "Schema not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/content/{slug}/entries [get]
func (r *Routers) ListEntries(c echo.Context) error {
	const op = "http.routers.ListEntries"

	log := r.log.With(
		slog.String("op", op),
		slog.String("schema_slug", c.Param("slug")),
	)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	resp, err := r.ContentService.ListEntries(c.Request().Context(), c.Param("slug"), page, perPage)
	if err != nil {
		if errors.Is(err, storage.ErrContentTypeNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to list entries", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resp))
}

// ResolveEntry godoc
// @Summary Resolve an entry by schema slug and entry id
// @Description Returns the entry only when it exists and belongs to the named schema. Any form of absence is a 404; infrastructure faults are a 500.
// @Tags entries
// @Produce json
// @Param slug path string true "Schema api identifier"
// @Param id path string true "Entry UUID" format(uuid)
// @Success 200 {object} response.Response{data=dto.ResolvedEntry}
// @Failure 404 {object} response.ErrorResponse "Entry not found under this schema"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /api/v1/content/{slug}/entries/{id} [get]
func (r *Routers) ResolveEntry(c echo.Context) error {
	const op = "http.routers.ResolveEntry"

	log := r.log.With(
		slog.String("op", op),
		slog.String("schema_slug", c.Param("slug")),
		slog.String("entry_id", c.Param("id")),
	)

	resolved, err := r.ContentService.ResolveEntry(c.Request().Context(), c.Param("slug"), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("entry resolution fault", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resolved))
}

// CreateExperience godoc
// @Summary Create an experience
// @Description Persists a new listing. Intent "draft" stores it as-is; "publish" requires the full record contract.
// @Tags experiences
// @Accept json
// @Produce json
// @Param request body dto.SubmitExperienceRequest true "Submission"
// @Success 201 {object} response.Response{data=dto.ExperienceResult}
// @Failure 400 {object} response.ErrorResponse "Invalid submission"
// @Failure 422 {object} response.ErrorResponse "Record not publishable"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/experiences [post]
func (r *Routers) CreateExperience(c echo.Context) error {
	const op = "http.routers.CreateExperience"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.SubmitExperienceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	result, err := r.ExperienceService.CreateExperience(c.Request().Context(), req)
	if err != nil {
		if models.IsExperienceValidationError(err) {
			return c.JSON(http.StatusUnprocessableEntity, response.ErrorResponseWithDetails("not_publishable", err.Error()))
		}
		log.Error("failed to create experience", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(result))
}

// UpdateExperience godoc
// @Summary Update an experience
// @Tags experiences
// @Accept json
// @Produce json
// @Param id path string true "Experience UUID" format(uuid)
// @Param request body dto.SubmitExperienceRequest true "Submission"
// @Success 200 {object} response.Response{data=dto.ExperienceResult}
// @Failure 400 {object} response.ErrorResponse "Invalid submission"
// @Failure 404 {object} response.ErrorResponse "Experience not found"
// @Failure 422 {object} response.ErrorResponse "Record not publishable"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/experiences/{id} [put]
func (r *Routers) UpdateExperience(c echo.Context) error {
	const op = "http.routers.UpdateExperience"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", ErrInvalidUUID.Error()))
	}

	var req dto.SubmitExperienceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	result, err := r.ExperienceService.UpdateExperience(c.Request().Context(), id, req)
	if err != nil {
		if models.IsExperienceValidationError(err) {
			return c.JSON(http.StatusUnprocessableEntity, response.ErrorResponseWithDetails("not_publishable", err.Error()))
		}
		if errors.Is(err, storage.ErrExperienceNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to update experience", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(result))
}

// GetExperience godoc
// @Summary Get an experience by id
// @Tags experiences
// @Produce json
// @Param id path string true "Experience UUID" format(uuid)
// @Success 200 {object} response.Response{data=dto.ExperienceResponse}
// @Failure 400 {object} response.ErrorResponse "Invalid UUID"
// @Failure 404 {object} response.ErrorResponse "Experience not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/experiences/{id} [get]
func (r *Routers) GetExperience(c echo.Context) error {
	const op = "http.routers.GetExperience"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", ErrInvalidUUID.Error()))
	}

	resp, err := r.ExperienceService.GetExperience(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrExperienceNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to get experience", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resp))
}

// GetPublicExperience godoc
// @Summary Get a published experience by slug
// @Tags experiences
// @Produce json
// @Param slug path string true "Experience slug"
// @Success 200 {object} response.Response{data=dto.ExperienceResponse}
// @Failure 404 {object} response.ErrorResponse "Experience not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /experiences/{slug} [get]
func (r *Routers) GetPublicExperience(c echo.Context) error {
	const op = "http.routers.GetPublicExperience"

	log := r.log.With(
		slog.String("op", op),
		slog.String("slug", c.Param("slug")),
	)

	resp, err := r.ExperienceService.GetExperienceBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, storage.ErrExperienceNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to get experience", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	// Drafts are admin-only; the public route pretends they do not
	// exist.
	if resp.Status != string(models.StatusPublished) {
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resp))
}

// ListExperiences godoc
// @Summary List experiences
// @Tags experiences
// @Produce json
// @Param status query string false "Status filter" Enums(draft, published)
// @Param page query int false "Page number"
// @Param per_page query int false "Page size"
// @Success 200 {object} response.Response{data=dto.ExperienceListResponse}
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/experiences [get]
func (r *Routers) ListExperiences(c echo.Context) error {
	const op = "http.routers.ListExperiences"

	log := r.log.With(
		slog.String("op", op),
	)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	resp, err := r.ExperienceService.ListExperiences(c.Request().Context(), c.QueryParam("status"), page, perPage)
	if err != nil {
		log.Error("failed to list experiences", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resp))
}

// DeleteExperience godoc
// @Summary Delete an experience
// @Tags experiences
// @Param id path string true "Experience UUID" format(uuid)
// @Success 204 "Deleted"
// @Failure 400 {object} response.ErrorResponse "Invalid UUID"
// @Failure 404 {object} response.ErrorResponse "Experience not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/experiences/{id} [delete]
func (r *Routers) DeleteExperience(c echo.Context) error {
	const op = "http.routers.DeleteExperience"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", ErrInvalidUUID.Error()))
	}

	if err := r.ExperienceService.DeleteExperience(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrExperienceNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrNotFound)
		}
		log.Error("failed to delete experience", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadMedia godoc
// @Summary Upload a media file
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param uploader_id formData string true "Uploader UUID" format(uuid)
// @Param media_type formData string true "Media type" Enums(photo, document)
// @Param width formData integer false "Width in pixels"
// @Param height formData integer false "Height in pixels"
// @Success 201 {object} models.Media
// @Failure 400 {object} response.ErrorResponse "Invalid input"
// @Failure 413 {object} response.ErrorResponse "File too large"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/media/upload [post]
func (r *Routers) UploadMedia(c echo.Context) error {
	const op = "http.routers.UploadMedia"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", "File is required"))
	}

	input, err := r.parseMediaUploadInput(c)
	if err != nil {
		log.Warn("error parsing upload input", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}
	input.File = file

	media, err := r.MediaService.UploadMedia(c.Request().Context(), *input)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails("file_too_large", err.Error()))
		}
		if models.IsMediaValidationError(err) {
			return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_media", err.Error()))
		}
		log.Error("failed to upload media", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	log.Info("upload successful",
		slog.String("media_id", media.ID.String()),
		slog.Int64("file_size", media.FileSize),
	)

	return c.JSON(http.StatusCreated, media)
}

// ListImages godoc
// @Summary List images for the gallery picker
// @Tags media
// @Produce json
// @Success 200 {object} response.Response{data=dto.MediaListResponse}
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Security ApiKeyAuth
// @Router /api/v1/media/images [get]
func (r *Routers) ListImages(c echo.Context) error {
	const op = "http.routers.ListImages"

	log := r.log.With(
		slog.String("op", op),
	)

	resp, err := r.MediaService.ListImages(c.Request().Context())
	if err != nil {
		log.Error("failed to list images", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(resp))
}

func (r *Routers) parseMediaUploadInput(c echo.Context) (*dto.MediaUploadInput, error) {
	uploaderID, err := uuid.Parse(c.FormValue("uploader_id"))
	if err != nil {
		return nil, ErrInvalidUUID
	}

	input := &dto.MediaUploadInput{
		UploaderID: uploaderID,
		MediaType:  c.FormValue("media_type"),
	}

	if v := c.FormValue("width"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid width")
		}
		input.Width = &width
	}
	if v := c.FormValue("height"); v != "" {
		height, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid height")
		}
		input.Height = &height
	}

	return input, nil
}
