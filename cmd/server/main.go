package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/akarpovich/notes-service/internal/auth/http"
	"github.com/akarpovich/notes-service/internal/common/bootstrap"
	"github.com/akarpovich/notes-service/internal/common/config"
	commonhttp "github.com/akarpovich/notes-service/internal/common/http"
	"github.com/akarpovich/notes-service/internal/common/jwtverify"
	"github.com/akarpovich/notes-service/internal/common/logger"
	srv "github.com/akarpovich/notes-service/internal/common/server"
	notehttp "github.com/akarpovich/notes-service/internal/note/http"
	userhttp "github.com/akarpovich/notes-service/internal/user/http"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "notes", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app := bootstrap.New(log, cfg)
	defer app.Pool.Close()

	gate := jwtverify.Middleware(cfg.JWTSecret, app.UserService, log)

	mux := http.NewServeMux()
	notehttp.NewHandler(app.NoteService, log).Register(mux)
	authhttp.NewHandler(app.AuthService, log).Register(mux, gate)
	userhttp.NewHandler(app.UserService, log).Register(mux, gate)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := commonhttp.BuildBaseHandler(log, mux)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Info("closing database pool")
			app.Pool.Close()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, shutdownHooks)
}
