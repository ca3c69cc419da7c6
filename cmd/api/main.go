package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-roaster/internal/bootstrap"
	"resume-roaster/internal/resumes"
	"resume-roaster/internal/shared/config"
	"resume-roaster/internal/shared/server"
	"resume-roaster/internal/shared/telemetry"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		runSweeper(ctx, app.ResumesService, cfg.UploadSweepInterval)
	}()

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Printf("server error: %v", err)
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-sweepDone
	log.Printf("API server stopped")
}

// runSweeper purges expired uploads until ctx is done.
func runSweeper(ctx context.Context, svc *resumes.Service, interval time.Duration) {
	if interval <= 0 || svc.Retention <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := svc.PurgeExpired(ctx, now); err != nil {
				telemetry.Error("resume.purge_failed", map[string]any{"err": err})
			}
		}
	}
}
