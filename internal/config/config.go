package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	API       APIConfig
	Store     StoreConfig
	Extractor ExtractorConfig
	S3        S3Config
	Log       LogConfig
}

type ServerConfig struct {
	Port string
	Host string
	// PublicBaseURL prefixes the /files/ links handed out by /info.
	PublicBaseURL string
}

type APIConfig struct {
	APIKey          string
	ErrorStatusMode ErrorStatusMode
}

// ErrorStatusMode selects how logical failures map onto HTTP status codes.
type ErrorStatusMode string

const (
	// ErrorStatusLegacy answers every logical failure with 200 (422 for a bad url param).
	ErrorStatusLegacy ErrorStatusMode = "legacy"
	// ErrorStatusStrict uses the status code carried by the error.
	ErrorStatusStrict ErrorStatusMode = "strict"
)

type StoreConfig struct {
	Dir               string
	RetentionMaxAge   time.Duration
	RetentionInterval time.Duration
}

type ExtractorConfig struct {
	Backend           string
	YtDlpPath         string
	FfmpegPath        string
	FfprobePath       string
	AudioQuality      int
	HTTPClientTimeout time.Duration
}

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	EndpointURL     string
	Prefix          string
}

// Enabled reports whether produced files should be mirrored to S3.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("PORT", "8000")
	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Server.Host = getEnv("HOST", "0.0.0.0")
	cfg.Server.PublicBaseURL = strings.TrimRight(
		getEnv("PUBLIC_BASE_URL", "http://127.0.0.1:"+cfg.Server.Port), "/")

	// API configuration
	cfg.API.APIKey = os.Getenv("API_KEY")
	if cfg.API.APIKey == "" {
		return nil, fmt.Errorf("required environment variable API_KEY is not set")
	}
	mode := ErrorStatusMode(strings.ToLower(getEnv("ERROR_STATUS_MODE", string(ErrorStatusLegacy))))
	switch mode {
	case ErrorStatusLegacy, ErrorStatusStrict:
		cfg.API.ErrorStatusMode = mode
	default:
		return nil, fmt.Errorf("invalid ERROR_STATUS_MODE %q: want legacy or strict", mode)
	}

	// File store configuration
	cfg.Store.Dir = getEnv("DOWNLOADS_DIR", "downloads")
	maxAge, err := time.ParseDuration(getEnv("RETENTION_MAX_AGE", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_MAX_AGE: %w", err)
	}
	cfg.Store.RetentionMaxAge = maxAge
	interval, err := time.ParseDuration(getEnv("RETENTION_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("invalid RETENTION_INTERVAL: must be positive")
	}
	cfg.Store.RetentionInterval = interval

	// Extractor configuration
	cfg.Extractor.Backend = strings.ToLower(getEnv("EXTRACTOR_BACKEND", "ytdlp"))
	cfg.Extractor.YtDlpPath = getEnv("YTDLP_PATH", "yt-dlp")
	cfg.Extractor.FfmpegPath = getEnv("FFMPEG_PATH", "ffmpeg")
	cfg.Extractor.FfprobePath = getEnv("FFPROBE_PATH", "ffprobe")
	cfg.Extractor.AudioQuality = getEnvInt("AUDIO_QUALITY", 192)
	clientTimeout, err := time.ParseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.Extractor.HTTPClientTimeout = clientTimeout

	// S3 mirror configuration (optional)
	cfg.S3.Region = getEnv("AWS_REGION", "us-east-1")
	cfg.S3.BucketName = getEnv("S3_BUCKET_NAME", "")
	cfg.S3.EndpointURL = getEnv("AWS_ENDPOINT_URL", "") // Optional for LocalStack
	cfg.S3.AccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.S3.SecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.S3.Prefix = getEnv("S3_PREFIX", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.File = getEnv("LOG_FILE", "")
	cfg.Log.MaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", 1)
	if cfg.Log.MaxSizeMB <= 0 {
		return nil, fmt.Errorf("invalid LOG_MAX_SIZE_MB: must be positive")
	}
	cfg.Log.MaxBackups = getEnvInt("LOG_MAX_BACKUPS", 0)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
