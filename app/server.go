package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"incident-hub/logger"
)

// serve starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func serve(name, port string, h http.Handler) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: h,
	}

	go func() {
		logger.Log.Infof("%s starting on port :%s", name, port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start %s: %v", name, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Infof("%s exited properly", name)
}
