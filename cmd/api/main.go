package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	httpadp "microloan-backend/internal/adapter/http"
	"microloan-backend/internal/adapter/middleware"
	"microloan-backend/internal/adapter/repository/mysql"
	"microloan-backend/internal/config"
	"microloan-backend/internal/domain/audit"
	"microloan-backend/internal/domain/borrower"
	"microloan-backend/internal/domain/loan"
	"microloan-backend/internal/infrastructure/auth"
	"microloan-backend/internal/infrastructure/cache"
	"microloan-backend/internal/infrastructure/db"
	"microloan-backend/internal/observability"
	borroweruc "microloan-backend/internal/usecase/borrower"
	loanuc "microloan-backend/internal/usecase/loan"
	"microloan-backend/internal/usecase/transition"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.AppEnv)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		Verbose:      !cfg.IsProduction(),
	})
	if err != nil {
		logger.Error("mysql connect failed", "error", err)
		os.Exit(1)
	}
	if err := gdb.AutoMigrate(&borrower.Borrower{}, &loan.Loan{}, &audit.Entry{}); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	statsCache := cache.NewStore(rdb, "microloan:")

	loanRepo := mysql.NewLoanRepository(gdb)
	borrowerRepo := mysql.NewBorrowerRepository(gdb)
	auditRepo := mysql.NewAuditRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	loanUC := loanuc.NewUsecase(loanRepo, auditRepo, tx, logger).WithStatsCache(statsCache, cfg.StatsCacheTTL())
	borrowerUC := borroweruc.NewUsecase(borrowerRepo, logger).WithStatsCache(statsCache, cfg.StatsCacheTTL())
	transitionUC := transition.NewUsecase(loan.NewEngine(), tx, logger).WithStatsCache(statsCache)

	jwt := auth.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSigningKey)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	httpadp.Routes{
		Health: httpadp.NewHandler(map[string]httpadp.Check{
			"mysql": func(ctx context.Context) error { return pingDB(ctx, gdb) },
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Loans:       httpadp.NewLoanHandler(loanUC, cfg.PageSize),
		Borrowers:   httpadp.NewBorrowerHandler(borrowerUC, cfg.PageSize),
		Status:      httpadp.NewStatusHandler(transitionUC),
		Auth:        middleware.RequireAuth(jwt),
		Idempotency: middleware.Idempotency(rdb, cfg.IdempotencyTTL(), logger),
	}.Register(e)

	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", "addr", addr, "env", cfg.AppEnv)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func pingDB(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
