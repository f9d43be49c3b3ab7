package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/akarpovich/notes-service/internal/common/constants"
	"github.com/akarpovich/notes-service/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// StartWithGracefulShutdown runs the server until SIGINT/SIGTERM, then drains
// in-flight requests and executes the shutdown hooks.
func StartWithGracefulShutdown(server *http.Server, log *logger.Logger, hooks []ShutdownHook) {
	go func() {
		log.Infof("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	server.SetKeepAlivesEnabled(false)

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced to shutdown: %v", err)
	} else {
		log.Info("stopped gracefully")
	}

	// Hooks run after the listener drains so in-flight requests keep their
	// dependencies until the end.
	for i, hook := range hooks {
		if err := hook(shutdownCtx); err != nil {
			log.Errorf("shutdown hook %d failed: %v", i, err)
		}
	}
}
