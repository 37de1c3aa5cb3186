package config

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAccessTTL         = "15m"
	defaultRefreshTTL        = "720h"
	defaultResetTokenTTL     = "15m"
	defaultCookieSecure      = "false"
	defaultCookieSameSite    = "Strict"
	defaultRefreshCookiePath = "/api/v1/auth/refresh"
	defaultAccessSecret      = "change-me-access-secret"
	defaultRefreshSecret     = "change-me-refresh-secret"
	defaultBaseURL           = "http://localhost:8080"
)

// Config is the full runtime configuration, read from the environment once at
// startup. Prod-like environments refuse to boot on default secrets.
type Config struct {
	AppEnv      string
	DatabaseURL string
	ListenAddr  string
	BaseURL     string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	ResetTokenTTL      time.Duration

	CookieSecure      bool
	CookieSameSite    string
	RefreshCookiePath string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "staffhub.db"))
	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", ":8080"))
	cfg.BaseURL = strings.TrimSpace(getEnv("APP_BASE_URL", defaultBaseURL))

	cfg.AccessTokenSecret = strings.TrimSpace(getEnv("JWT_ACCESS_SECRET", defaultAccessSecret))
	cfg.RefreshTokenSecret = strings.TrimSpace(getEnv("JWT_REFRESH_SECRET", defaultRefreshSecret))

	var err error
	cfg.AccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("JWT_REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}
	cfg.ResetTokenTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTokenTTL)
	if err != nil {
		return nil, err
	}

	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CookieSameSite = strings.TrimSpace(getEnv("COOKIE_SAMESITE", defaultCookieSameSite))
	cfg.RefreshCookiePath = strings.TrimSpace(getEnv("REFRESH_COOKIE_PATH", defaultRefreshCookiePath))

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	cfg.SMTPPort, _ = strconv.Atoi(strings.TrimSpace(getEnv("SMTP_PORT", "587")))
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFrom = strings.TrimSpace(getEnv("SMTP_FROM", "no-reply@staffhub.local"))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("auth cookie config: secure=%t, sameSite=%s, refreshPath=%s", cfg.CookieSecure, cfg.CookieSameSite, cfg.RefreshCookiePath)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_TTL must be > 0")
	}
	if cfg.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshCookiePath == "" {
		return fmt.Errorf("REFRESH_COOKIE_PATH must not be empty")
	}

	sameSite := strings.ToLower(cfg.CookieSameSite)
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !cfg.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.AccessTokenSecret, defaultAccessSecret) {
			return fmt.Errorf("in prod/release JWT_ACCESS_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshTokenSecret, defaultRefreshSecret) {
			return fmt.Errorf("in prod/release JWT_REFRESH_SECRET must be set and not default")
		}
		if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
			return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

// SameSite maps the configured string onto the http constant.
func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
