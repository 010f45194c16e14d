package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bryanwahyu/ai-code-reviewer/internal/application"
	appreview "github.com/bryanwahyu/ai-code-reviewer/internal/application/review"
	"github.com/bryanwahyu/ai-code-reviewer/internal/config"
	"github.com/bryanwahyu/ai-code-reviewer/internal/infra/ai"
	"github.com/bryanwahyu/ai-code-reviewer/internal/infra/ai/prompt"
	"github.com/bryanwahyu/ai-code-reviewer/internal/infra/httpserver"
	"github.com/bryanwahyu/ai-code-reviewer/internal/logger"
	"github.com/bryanwahyu/ai-code-reviewer/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		logger.New(logger.Config{}, nil).Fatalf("config load error: %v", err)
	}
	log := logger.New(cfg.Log, nil)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()

	// init generator
	gen, err := ai.NewGenerator(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("ai provider init error: %v", err)
	}
	instruction, err := prompt.LoadInstruction(cfg.AI.SystemPromptFile)
	if err != nil {
		log.Fatalf("system prompt error: %v", err)
	}

	// init service
	svc := appreview.NewService(gen, instruction, log, application.SystemClock{})

	// init router
	handler := httpserver.NewRouter(svc, log, httpserver.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		HealthCheckers: map[string]middleware.HealthChecker{
			"generator": &middleware.GeneratorHealthChecker{Generator: gen},
		},
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.WithField("provider", gen.Name()).WithField("model", cfg.AI.Model).
			Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}
