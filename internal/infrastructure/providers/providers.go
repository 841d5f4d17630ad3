package providers

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/NefariousNGGA/backend/internal/config"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database"
	"github.com/NefariousNGGA/backend/internal/infrastructure/repository"
	"github.com/NefariousNGGA/backend/internal/present/rest"
	"github.com/NefariousNGGA/backend/internal/present/rest/middleware"
	"github.com/NefariousNGGA/backend/internal/service"
	"github.com/NefariousNGGA/backend/internal/usecase"
)

// NewDatabase opens a Postgres connection using the configured DSN.
func NewDatabase(conf config.Server) (*gorm.DB, error) {
	return database.NewPostgres(conf.PostgresDsn, conf.MaxOpenConns)
}

// MigrateDatabase applies migrations for the application models.
func MigrateDatabase(db *gorm.DB) error {
	return database.Migrate(db)
}

// NewPostCache prefers memcached and falls back to an in-process cache.
func NewPostCache(conf config.Server) repository.PostCache {
	if conf.MemcachedAddr == "" {
		return repository.NewLocalPostCache()
	}
	return repository.NewMemcachePostCache(database.NewMemcached(conf.MemcachedAddr))
}

// NewSignalService returns nil when no redis is configured.
func NewSignalService(conf config.Server) *service.SignalService {
	if conf.RedisAddr == "" {
		return nil
	}
	return service.NewSignalService(database.NewRedis(conf.RedisAddr, conf.RedisPassword, conf.RedisDB))
}

type Usecases struct {
	Identity     *usecase.IdentityUsecase
	Post         *usecase.PostUsecase
	Comment      *usecase.CommentUsecase
	Reaction     *usecase.ReactionUsecase
	Notification *usecase.NotificationUsecase
	Submission   *usecase.SubmissionUsecase
	Profile      *usecase.ProfileUsecase
}

// NewUsecases wires every usecase over the gorm repositories. signal may be
// nil.
func NewUsecases(conf config.Config, db *gorm.DB, cache repository.PostCache, signal *service.SignalService) Usecases {
	identityRepo := repository.NewIdentityRepository(db)
	postRepo := repository.NewPostRepository(db, cache)

	var notifier usecase.Notifier
	if signal != nil {
		notifier = signal
	}

	notification := usecase.NewNotificationUsecase(identityRepo, repository.NewNotificationRepository(db), notifier)

	return Usecases{
		Identity: usecase.NewIdentityUsecase(
			identityRepo,
			service.NewCredentialService(conf.Auth.CredentialCost),
			conf.Auth.ScanBatchSize,
		),
		Post:         usecase.NewPostUsecase(postRepo),
		Comment:      usecase.NewCommentUsecase(postRepo, repository.NewCommentRepository(db), notification),
		Reaction:     usecase.NewReactionUsecase(postRepo, repository.NewReactionRepository(db)),
		Notification: notification,
		Submission:   usecase.NewSubmissionUsecase(repository.NewSubmissionRepository(db), usecase.NewAdminGuard(conf.Auth.AdminToken)),
		Profile:      usecase.NewProfileUsecase(identityRepo, repository.NewProfileRepository(db)),
	}
}

// NewServer builds the echo server for the given usecases.
func NewServer(conf config.Config, uc Usecases, signal *service.SignalService) *echo.Echo {
	handler := rest.NewHandler(
		conf,
		uc.Identity,
		uc.Post,
		uc.Comment,
		uc.Reaction,
		uc.Notification,
		uc.Submission,
		uc.Profile,
		signal,
	)
	return rest.NewServer(conf, handler, middleware.NewAuthMiddleware(uc.Identity))
}
