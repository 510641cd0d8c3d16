package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beanboard/menu-service/internal/config"
	"github.com/beanboard/menu-service/internal/menu/client"
	"github.com/beanboard/menu-service/internal/menu/ui"
	"github.com/beanboard/menu-service/pkg/logger"
	"github.com/beanboard/menu-service/pkg/middleware"
	"github.com/gin-gonic/gin"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.SetFormat(cfg.LogFormat)

	api, err := client.New(cfg.UI.APIBaseURL, client.WithTimeout(cfg.UI.RequestTimeout))
	if err != nil {
		logger.Fatalf("menu api client: %v", err)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	ui.RegisterRoutes(r, ui.NewPages(api, ui.DefaultPageTTL))

	addr := fmt.Sprintf("%s:%s", cfg.UI.Host, cfg.UI.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		logger.Infof("menu page listening on %s (api %s)", addr, cfg.UI.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
