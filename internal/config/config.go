package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is only acceptable outside prod.
const DefaultJWTSecret = "supersecretkey"

type Config struct {
	Port string `yaml:"port"`

	DBHost string `yaml:"db_host"`
	DBPort string `yaml:"db_port"`
	DBName string `yaml:"db_name"`
	DBUser string `yaml:"db_user"`
	DBPass string `yaml:"db_pass"`

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int `yaml:"db_max_open_conns"`
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int `yaml:"db_max_idle_conns"`

	JWTSecret string `yaml:"jwt_secret"`

	// JWTExpireMinutes is the token lifetime (default 60).
	JWTExpireMinutes int `yaml:"jwt_expire_minutes"`

	// JWTLeewaySeconds is the clock skew tolerated when checking exp (default 0).
	JWTLeewaySeconds int `yaml:"jwt_leeway_seconds"`

	// RequireAuth rejects requests without a bearer token on /api routes other than /api/auth.
	RequireAuth bool `yaml:"require_auth"`

	BcryptCost int `yaml:"bcrypt_cost"`

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string `yaml:"env"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string `yaml:"tls_cert_file"`
	TLSKeyFile  string `yaml:"tls_key_file"`

	// LogFormat is "text" (default) or "json".
	LogFormat string `yaml:"log_format"`

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated). Empty means same-origin only.
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	// AuditRetentionDays is how long audit entries are kept; 0 disables the purge job.
	AuditRetentionDays int    `yaml:"audit_retention_days"`
	AuditPurgeCron     string `yaml:"audit_purge_cron"`

	MigrateOnStart bool `yaml:"migrate_on_start"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port: "8080",

		DBHost: "localhost",
		DBPort: "5432",
		DBName: "leaguedb",
		DBUser: "leagueuser",
		DBPass: "leaguepass",

		DBMaxOpenConns: 25,
		DBMaxIdleConns: 5,

		JWTSecret:        DefaultJWTSecret,
		JWTExpireMinutes: 60,
		BcryptCost:       bcrypt.DefaultCost,
		Env:              "dev",
		LogFormat:        "text",

		AuditRetentionDays: 90,
		AuditPurgeCron:     "@daily",
		MigrateOnStart:     true,
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)

	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPass = getEnv("DB_PASS", c.DBPass)

	c.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns)
	c.DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", c.DBMaxIdleConns)

	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTExpireMinutes = getEnvInt("JWT_EXPIRE_MINUTES", c.JWTExpireMinutes)
	c.JWTLeewaySeconds = getEnvInt("JWT_LEEWAY_SECONDS", c.JWTLeewaySeconds)
	c.RequireAuth = getEnvBool("REQUIRE_AUTH", c.RequireAuth)
	c.BcryptCost = getEnvInt("BCRYPT_COST", c.BcryptCost)
	c.Env = getEnv("ENV", c.Env)

	c.TLSCertFile = getEnv("TLS_CERT_FILE", c.TLSCertFile)
	c.TLSKeyFile = getEnv("TLS_KEY_FILE", c.TLSKeyFile)

	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = parseCORSOrigins(v)
	}

	c.AuditRetentionDays = getEnvInt("AUDIT_RETENTION_DAYS", c.AuditRetentionDays)
	c.AuditPurgeCron = getEnv("AUDIT_PURGE_CRON", c.AuditPurgeCron)
	c.MigrateOnStart = getEnvBool("MIGRATE_ON_START", c.MigrateOnStart)
}

// Validate reports settings the server must not start with.
func (c Config) Validate() error {
	var errs []error
	if c.IsProd() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set to a non-default value when ENV=prod"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.JWTExpireMinutes <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE_MINUTES must be positive"))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

func (c Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod")
}

// TLSEnabled is true when both certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
