package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/medkoval/health-companion/internal/adapters/http"
	"github.com/medkoval/health-companion/internal/bootstrap"
	"github.com/medkoval/health-companion/internal/config"
	"github.com/medkoval/health-companion/internal/observability/logging"
	"github.com/medkoval/health-companion/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.New("health-companion", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.New(cfg)
	serverMetrics := metrics.NewHTTPServerMetrics("api")

	router := httpadapter.NewRouter(cfg, app.AnalyzeUC, app.ChatUC, app.Sessions, serverMetrics).Handler()
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("api listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("api shutdown error: %v", err)
	}
}
