package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"hotel-desk/config"
	"hotel-desk/controllers"
	"hotel-desk/jobs"
	"hotel-desk/metrics"
	"hotel-desk/middleware"
	"hotel-desk/routes"
	"hotel-desk/services"
	"hotel-desk/utils"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.Log.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func main() {
	// .env is optional
	envErr := godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	logger := newLogger(cfg)
	if envErr != nil {
		logger.Debug().Msg(".env not found; using environment variables")
	}
	if cfg.Auth.JWTSecret == "change-me" {
		logger.Warn().Msg("JWT_SECRET is not set; using the insecure default")
	}

	db, err := config.ConnectDatabase(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database connect failed")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	var sessions services.SessionStore = services.NoopSessionStore{}
	rdb, err := config.ConnectRedis(context.Background(), cfg)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("addr", cfg.Redis.Address).Msg("redis unavailable; logout will not revoke tokens")
	case rdb != nil:
		sessions = services.NewRedisSessionStore(rdb)
		defer rdb.Close()
	}

	metrics.Register()

	// Initialize services
	bookingService := services.NewBookingService(db, &logger)
	roomService := services.NewRoomService(db)
	categoryService := services.NewRoomCategoryService(db)
	guestService := services.NewGuestService(db)
	catalog := services.NewServiceCatalog(db)
	bookedService := services.NewBookedServiceService(db)
	userService := services.NewUserService(db)
	reportService := services.NewReportService(bookingService)
	tokens := utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.TokenTTL())

	// Initialize controllers
	ctl := routes.Controllers{
		Auth:       controllers.NewAuthController(userService, tokens, sessions, &logger),
		Rooms:      controllers.NewRoomController(roomService, bookingService),
		Categories: controllers.NewRoomCategoryController(categoryService),
		Guests:     controllers.NewGuestController(guestService),
		Services:   controllers.NewServiceController(catalog),
		Bookings:   controllers.NewBookingController(bookingService, bookedService),
		Reports:    controllers.NewReportController(reportService),
		Users:      controllers.NewUserController(userService),
	}
	router := routes.SetupRouter(ctl, routes.Deps{
		Tokens:       tokens,
		Sessions:     sessions,
		LoginLimiter: middleware.NewIPRateLimiter(cfg.Auth.LoginPerMinute, cfg.Auth.LoginBurst),
		Origins:      cfg.Origins(),
		Log:          &logger,
	})

	scheduler := cron.New()
	var backup *jobs.BackupService
	if cfg.Backup.Enabled {
		if cfg.Database.Driver == "sqlite" {
			backup = jobs.NewBackupService(db, jobs.BackupConfig{
				Dir:           cfg.Backup.Path,
				RetentionDays: cfg.Backup.RetentionDays,
			}, &logger)
		} else {
			logger.Warn().Msg("backups are only supported for the sqlite driver")
		}
	}
	if err := jobs.InitCronJobs(scheduler, cfg.Backup.Schedule, backup, &logger); err != nil {
		logger.Fatal().Err(err).Msg("cron init failed")
	}

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info().Msg("server stopped")
}
