package app

import (
	"context"
	"log/slog"

	httpapp "tierra_admin/internal/app/http"
	"tierra_admin/internal/config"
	"tierra_admin/internal/repository"
	contentsvc "tierra_admin/internal/services/content_service"
	experiencesvc "tierra_admin/internal/services/experience_service"
	mediasvc "tierra_admin/internal/services/media_service"
	schedulersvc "tierra_admin/internal/services/scheduler_service"
	tokensvc "tierra_admin/internal/services/token_service"
	usersvc "tierra_admin/internal/services/user_service"
	filestorage "tierra_admin/internal/storage/filestorage"
	redisapp "tierra_admin/internal/storage/redis"
	httprouters "tierra_admin/internal/transport/http"
)

// App owns the long-lived pieces: the HTTP server, the publish
// scheduler and the connections they share.
type App struct {
	HTTPServer *httpapp.Server
	Scheduler  *schedulersvc.Scheduler

	repo  *repository.Repository
	redis *redisapp.Client
	log   *slog.Logger
}

func New(log *slog.Logger, cfg *config.Config) *App {
	repo, err := repository.NewRepository(context.Background(), cfg.DSN)
	if err != nil {
		panic(err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	tokenRepo := repository.NewRedisTokenRepo(redisClient)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.FileStorage.MaxSize)
	if err != nil {
		panic(err)
	}

	userService := usersvc.NewUserService(log, repo.User, cfg.TokenSecret, cfg.TokenTTL)
	tokenService := tokensvc.NewTokenService(tokenRepo, cfg.TokenSecret)
	contentService := contentsvc.NewContentService(log, repo.ContentTypes, repo.Entries)
	experienceService := experiencesvc.NewExperienceService(log, repo.Experiences)
	mediaService := mediasvc.NewMediaService(log, repo.Media, fileStorage)

	routers := httprouters.NewRouter(log, userService, tokenService, contentService, experienceService, mediaService)

	server := httpapp.New(log, cfg.TokenSecret, cfg.HTTP.SessionSecret, cfg.HTTP.Host, cfg.HTTP.Port, cfg.FileStorage.BaseDir, routers)
	server.SetHealthCheck(repo.HealthCheck)
	server.BuildRouters()

	scheduler := schedulersvc.NewScheduler(log, experienceService, cfg.Publisher.Schedule)

	return &App{
		HTTPServer: server,
		Scheduler:  scheduler,
		repo:       repo,
		redis:      redisClient,
		log:        log,
	}
}

// Stop shuts everything down in reverse start order.
func (a *App) Stop() {
	a.Scheduler.Stop()

	if err := a.HTTPServer.Stop(); err != nil {
		a.log.Error("failed to stop http server", slog.Any("error", err))
	}

	if err := a.redis.Close(); err != nil {
		a.log.Error("failed to close redis client", slog.Any("error", err))
	}

	a.repo.Close()
}
