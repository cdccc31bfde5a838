package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"courseMarketplace/internal/config"
	"courseMarketplace/internal/db"
	"courseMarketplace/internal/httpserver"
	"courseMarketplace/internal/service"
	"courseMarketplace/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	slog.Info("configuration loaded", "config", cfg.String())

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			slog.Error("close db", "error", err)
		}
	}()

	users := repository.NewUserRepository(d)
	courses := repository.NewCourseRepository(d)
	enrollments := repository.NewEnrollmentRepository(d)

	identity := &service.IdentityService{Users: users, Secret: cfg.Auth.JWTSecret, TokenTTL: cfg.Auth.TokenTTL}
	catalog := &service.CatalogService{Courses: courses, Enrollments: enrollments, Users: users}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	httpserver.Register(e, &httpserver.Deps{
		Identity:  identity,
		Catalog:   catalog,
		JWTSecret: cfg.Auth.JWTSecret,
	})

	go func() {
		if err := e.Start(cfg.HTTP.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("start http: %v", err)
		}
	}()
	slog.Info("http server listening", "address", cfg.HTTP.Address)

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}
