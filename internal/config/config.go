package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr string
	RedisDB   int

	IdempTTLSecs      int
	StatsCacheTTLSecs int

	JWTIssuer     string
	JWTAudience   string
	JWTSigningKey string

	PageSize int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment. A .env file in the working directory, when
// present, fills variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		AppEnv:    getenv("APP_ENV", "local"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "microloan"),
		MySQLUser: getenv("MYSQL_USER", "microloan"),
		MySQLPass: getenv("MYSQL_PASS", "microloan"),

		DBMaxOpenConns: getenvInt("DB_MAX_OPEN_CONNS", 30),
		DBMaxIdleConns: getenvInt("DB_MAX_IDLE_CONNS", 10),

		RedisAddr:         getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:           getenvInt("REDIS_DB", 0),
		IdempTTLSecs:      getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		StatsCacheTTLSecs: getenvInt("STATS_CACHE_TTL_SECONDS", 30),

		JWTIssuer:     getenv("JWT_ISSUER", "microloan-backend"),
		JWTAudience:   getenv("JWT_AUDIENCE", "microloan-admin"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),

		PageSize: getenvInt("PAGE_SIZE", 5),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSigningKey == "" {
		return errors.New("missing JWT_SIGNING_KEY")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("invalid PAGE_SIZE %d", c.PageSize)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "prod" || c.AppEnv == "production" }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.StatsCacheTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
