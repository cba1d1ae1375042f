package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	appmw "tierra_admin/internal/middleware"
	httprouters "tierra_admin/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m         *http.ServeMux
	log       *slog.Logger
	e         *echo.Echo
	routers   *httprouters.Routers
	host      string
	port      string
	token     string
	uploadDir string
	health    func(ctx context.Context) error
}

// SetHealthCheck registers the probe /health reports on.
func (s *Server) SetHealthCheck(fn func(ctx context.Context) error) {
	s.health = fn
}

func New(log *slog.Logger, token, sessionSecret, host, port, uploadDir string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appmw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:         mux,
		log:       log,
		e:         e,
		routers:   routers,
		host:      host,
		port:      port,
		token:     token,
		uploadDir: uploadDir,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get("session", c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session required"})
		}

		userID, ok := sess.Values["user_id"].(string)
		if !ok || userID == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		}

		parsedUUID, err := uuid.Parse(userID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user ID format"})
		}

		isAdmin, err := s.routers.UserService.IsAdmin(c.Request().Context(), parsedUUID)
		if err != nil || !isAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
		}

		return next(c)
	}
}

func (s *Server) BuildRouters() {
	// Public surface: published experiences and the entry resolver.
	s.e.GET("/experiences/:slug", s.routers.GetPublicExperience)
	s.e.Static("/uploads", s.uploadDir)

	s.e.GET("/health", func(c echo.Context) error {
		if s.health != nil {
			if err := s.health(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := s.e.Group("/api/v1")
	{
		api.POST("/register", s.routers.Register)
		api.POST("/login", s.routers.Login)
		api.POST("/refresh", s.routers.Refresh)

		api.GET("/content/:slug/entries/:id", s.routers.ResolveEntry)

		debug := s.e.Group("/debug")
		{
			debug.GET("/statsviz/", echo.WrapHandler(s.m))
			debug.GET("/statsviz/*", echo.WrapHandler(s.m))
		}

		s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

		swagger := s.e.Group("/swag")
		{
			swagger.GET("/swagger/*", echoSwagger.WrapHandler)
		}

		userGroup := api.Group("/users")
		userGroup.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(s.token),
		}))
		{
			userGroup.GET("/:user_id/is-admin", s.routers.IsAdminPermission)
		}

		contentGroup := api.Group("/content-types", s.adminOnlyMiddleware)
		{
			contentGroup.POST("", s.routers.CreateContentType)
			contentGroup.GET("", s.routers.ListContentTypes)
			contentGroup.GET("/:slug", s.routers.GetContentType)
			contentGroup.DELETE("/:id", s.routers.DeleteContentType)
		}

		entryGroup := api.Group("/content/:slug/entries", s.adminOnlyMiddleware)
		{
			entryGroup.POST("", s.routers.CreateEntry)
			entryGroup.GET("", s.routers.ListEntries)
		}

		entries := api.Group("/entries", s.adminOnlyMiddleware)
		{
			entries.PUT("/:id", s.routers.UpdateEntry)
			entries.DELETE("/:id", s.routers.DeleteEntry)
		}

		experienceGroup := api.Group("/experiences", s.adminOnlyMiddleware)
		{
			experienceGroup.POST("", s.routers.CreateExperience)
			experienceGroup.GET("", s.routers.ListExperiences)
			experienceGroup.GET("/:id", s.routers.GetExperience)
			experienceGroup.PUT("/:id", s.routers.UpdateExperience)
			experienceGroup.DELETE("/:id", s.routers.DeleteExperience)
		}

		mediaGroup := api.Group("/media", s.adminOnlyMiddleware)
		{
			mediaGroup.POST("/upload", s.routers.UploadMedia)
			mediaGroup.GET("/images", s.routers.ListImages)
		}
	}
}
