package main

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Routes   bool
	Addr     string
	DiagAddr string

	Storage     string
	DatabaseURL string

	JWTSecret     string
	TokenTTL      time.Duration
	SecureCookies bool

	S3Bucket    string
	S3Region    string
	S3PublicURL string
	MaxImageMB  int64
}

// loadConfig reads flags with environment fallbacks. A .env file in the
// working directory, when present, seeds the environment first.
func loadConfig(args []string) (Config, error) {
	_ = godotenv.Load()

	var c Config

	fs := flag.NewFlagSet(ServiceName, flag.ContinueOnError)
	fs.BoolVar(&c.Routes, "routes", getEnvBool(envKey("ROUTES"), false), "Generate router documentation")
	fs.StringVar(&c.Addr, "addr", getEnv(envKey("ADDR"), ":3333"), "application port")
	fs.StringVar(&c.DiagAddr, "diag_addr", getEnv(envKey("DIAG_ADDR"), ":9999"), "diag port")
	fs.StringVar(&c.Storage, "storage", getEnv(envKey("STORAGE"), StorageMemory), "storage backend: memory or postgres")
	fs.StringVar(&c.DatabaseURL, "database_url", getEnv(envKey("DATABASE_URL"), ""), "postgres DSN")
	fs.StringVar(&c.JWTSecret, "jwt_secret", getEnv(envKey("JWT_SECRET"), ""), "session token signing secret")
	fs.DurationVar(&c.TokenTTL, "token_ttl", getEnvDuration(envKey("TOKEN_TTL"), 30*24*time.Hour), "session lifetime")
	fs.BoolVar(&c.SecureCookies, "secure_cookies", getEnvBool(envKey("SECURE_COOKIES"), false), "mark the session cookie secure")
	fs.StringVar(&c.S3Bucket, "s3_bucket", getEnv(envKey("S3_BUCKET"), ""), "image bucket; images stay in memory when empty")
	fs.StringVar(&c.S3Region, "s3_region", getEnv(envKey("S3_REGION"), "us-east-1"), "image bucket region")
	fs.StringVar(&c.S3PublicURL, "s3_public_url", getEnv(envKey("S3_PUBLIC_URL"), ""), "public base url of the image bucket")
	fs.Int64Var(&c.MaxImageMB, "max_image_mb", getEnvInt(envKey("MAX_IMAGE_MB"), 5), "image upload limit in MiB")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return c, c.validate()
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for postgres storage")
		}
	default:
		return errors.Errorf("unknown storage %q", c.Storage)
	}

	if c.JWTSecret == "" && !c.Routes {
		return errors.New("jwt_secret is required")
	}

	return nil
}

func envKey(name string) string {
	return strings.ToUpper(ServiceName) + "_" + name
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}

	return v
}

func getEnvInt(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}

	return v
}
