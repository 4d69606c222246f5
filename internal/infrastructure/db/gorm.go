package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the connection pool and SQL logging.
type Options struct {
	MaxOpenConns int
	MaxIdleConns int
	// Verbose logs every statement instead of only slow ones and errors.
	Verbose bool
}

func (o Options) withDefaults() Options {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 30
	}
	if o.MaxIdleConns <= 0 || o.MaxIdleConns > o.MaxOpenConns {
		o.MaxIdleConns = min(10, o.MaxOpenConns)
	}
	return o
}

// OpenGorm connects to MySQL and pings it once before returning.
func OpenGorm(dsn string, opts Options) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), opts)
}

func OpenGormWithDialector(dial gorm.Dialector, opts Options) (*gorm.DB, error) {
	opts = opts.withDefaults()
	level := logger.Warn
	if opts.Verbose {
		level = logger.Info
	}

	gdb, err := gorm.Open(dial, &gorm.Config{
		Logger:               logger.Default.LogMode(level),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("mysql ping: %w", err)
	}
	slog.Info("gorm: connected", "max_open", opts.MaxOpenConns, "max_idle", opts.MaxIdleConns)
	return gdb, nil
}
