package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	authservice "github.com/akarpovich/notes-service/internal/auth/service"
	"github.com/akarpovich/notes-service/internal/common/config"
	"github.com/akarpovich/notes-service/internal/common/constants"
	"github.com/akarpovich/notes-service/internal/common/crypto"
	"github.com/akarpovich/notes-service/internal/common/db"
	"github.com/akarpovich/notes-service/internal/common/logger"
	noterepo "github.com/akarpovich/notes-service/internal/note/repository"
	noteservice "github.com/akarpovich/notes-service/internal/note/service"
	userrepo "github.com/akarpovich/notes-service/internal/user/repository"
	userservice "github.com/akarpovich/notes-service/internal/user/service"
)

// App is the read-only application state built exactly once per process and
// shared by every request handler.
type App struct {
	Config      config.Config
	Log         *logger.Logger
	Pool        *pgxpool.Pool
	NoteService *noteservice.NoteService
	UserService *userservice.UserService
	AuthService *authservice.AuthService
}

// New wires the whole dependency graph: pool, optional migrations,
// repositories, services. Migration failure aborts the process.
func New(log *logger.Logger, cfg config.Config) *App {
	pool := db.NewPool(log, cfg.DatabaseURL)
	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	if cfg.RunMigrations {
		if err := db.Migrate(context.Background(), cfg.DatabaseURL); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		log.Info("migrations applied")
	}

	idGenerator := crypto.NewUUIDGenerator()
	hasher := crypto.NewArgon2Hasher()

	noteRepo := noterepo.NewPgRepository(pool)
	noteSvc := noteservice.NewNoteService(noteRepo, idGenerator, log)

	userRepo := userrepo.NewPgRepository(pool)
	userSvc := userservice.NewUserService(userRepo, log)

	authSvc := authservice.NewAuthService(userSvc, hasher, idGenerator, cfg.JWTSecret, cfg.TokenTTL, log)

	return &App{
		Config:      cfg,
		Log:         log,
		Pool:        pool,
		NoteService: noteSvc,
		UserService: userSvc,
		AuthService: authSvc,
	}
}
