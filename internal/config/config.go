// README: Config loader with env defaults for HTTP, sources, cache, position and events.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source kinds for the cloud entity set.
const (
	SourceAiven    = "aiven"
	SourcePostgres = "postgres"
	SourceS3       = "s3"
)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Key       string
}

type Config struct {
	HTTP struct {
		Addr          string
		CORSOrigins   []string
		SessionSecret string
	}
	Source struct {
		Kind        string
		UpstreamURL string
		// Snapshot copies the loaded list into Postgres and/or S3 when set.
		Snapshot bool
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		CacheTTL time.Duration
	}
	Position struct {
		GoogleMapsKey string
		StaticLat     *float64
		StaticLon     *float64
	}
	Kafka struct {
		Brokers []string
		Topic   string
	}
	S3 S3Config
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("CLOUDPICKER_HTTP_ADDR", ":8000")
	cfg.HTTP.CORSOrigins = envList("CLOUDPICKER_CORS_ORIGINS", []string{"http://localhost:3000"})
	cfg.HTTP.SessionSecret = envOrDefault("CLOUDPICKER_SESSION_SECRET", "")

	cfg.Source.Kind = envOrDefault("CLOUDPICKER_SOURCE", SourceAiven)
	cfg.Source.UpstreamURL = envOrDefault("CLOUDPICKER_UPSTREAM_URL", "https://api.aiven.io")
	cfg.Source.Snapshot = envOrDefaultBool("CLOUDPICKER_SNAPSHOT", false)

	cfg.DB.DSN = envOrDefault("CLOUDPICKER_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("CLOUDPICKER_REDIS_ADDR", "")
	cfg.Redis.CacheTTL = time.Duration(envOrDefaultInt("CLOUDPICKER_CACHE_TTL", 600)) * time.Second

	cfg.Position.GoogleMapsKey = envOrDefault("CLOUDPICKER_GOOGLE_MAPS_KEY", "")
	cfg.Position.StaticLat = envFloatPtr("CLOUDPICKER_STATIC_LAT")
	cfg.Position.StaticLon = envFloatPtr("CLOUDPICKER_STATIC_LON")

	cfg.Kafka.Brokers = envList("CLOUDPICKER_KAFKA_BROKERS", nil)
	cfg.Kafka.Topic = envOrDefault("CLOUDPICKER_KAFKA_TOPIC", "cloudpicker.selections")

	cfg.S3 = S3Config{
		Endpoint:  envOrDefault("CLOUDPICKER_S3_ENDPOINT", ""),
		AccessKey: envOrDefault("CLOUDPICKER_S3_ACCESS_KEY", ""),
		SecretKey: envOrDefault("CLOUDPICKER_S3_SECRET_KEY", ""),
		UseSSL:    envOrDefaultBool("CLOUDPICKER_S3_USE_SSL", false),
		Bucket:    envOrDefault("CLOUDPICKER_S3_BUCKET", "cloudpicker"),
		Key:       envOrDefault("CLOUDPICKER_S3_KEY", "snapshots/clouds.json"),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Source.Kind {
	case SourceAiven:
	case SourcePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("CLOUDPICKER_DB_DSN is required for source %q", c.Source.Kind)
		}
	case SourceS3:
		if c.S3.Endpoint == "" || c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			return fmt.Errorf("CLOUDPICKER_S3_ENDPOINT, CLOUDPICKER_S3_ACCESS_KEY and CLOUDPICKER_S3_SECRET_KEY are required for source %q", c.Source.Kind)
		}
	default:
		return fmt.Errorf("unknown CLOUDPICKER_SOURCE %q", c.Source.Kind)
	}
	if (c.Position.StaticLat == nil) != (c.Position.StaticLon == nil) {
		return fmt.Errorf("CLOUDPICKER_STATIC_LAT and CLOUDPICKER_STATIC_LON must be set together")
	}
	return nil
}

// S3Enabled reports whether object storage credentials are configured.
func (c Config) S3Enabled() bool {
	return c.S3.Endpoint != "" && c.S3.AccessKey != "" && c.S3.SecretKey != ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envFloatPtr(key string) *float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return &n
		}
	}
	return nil
}

// envList splits a comma separated value, dropping blanks.
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
