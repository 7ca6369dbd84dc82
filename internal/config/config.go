package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"imageutils/internal/imageops/engine"
	"imageutils/internal/pipeline"
)

// Config holds the engine selection, encoder settings and batch limits shared
// by every command.
type Config struct {
	Engine       string `toml:"engine"`
	Filter       string `toml:"filter"`
	OutputFormat string `toml:"output_format"`
	OutputDir    string `toml:"output_dir"`
	WebPQuality  int    `toml:"webp_quality"`
	AVIFQuality  int    `toml:"avif_quality"`
	AVIFSpeed    int    `toml:"avif_speed"`
	JPEGQuality  int    `toml:"jpeg_quality"`
	MaxBytes     int64  `toml:"max_bytes"`
	Workers      int    `toml:"workers"`
	LogLevel     string `toml:"log_level"`
}

// Load reads the configuration from the environment, falling back to defaults.
func Load() *Config {
	return &Config{
		Engine:       getEnv("IMAGEUTILS_ENGINE", engine.DefaultEngine),
		Filter:       getEnv("IMAGEUTILS_FILTER", engine.DefaultFilter),
		OutputFormat: getEnv("IMAGEUTILS_FORMAT", ""),
		OutputDir:    getEnv("IMAGEUTILS_OUTPUT_DIR", ""),
		WebPQuality:  getEnvInt("IMAGEUTILS_WEBP_QUALITY", pipeline.DefaultWebPQuality),
		AVIFQuality:  getEnvInt("IMAGEUTILS_AVIF_QUALITY", pipeline.DefaultAVIFQuality),
		AVIFSpeed:    getEnvInt("IMAGEUTILS_AVIF_SPEED", pipeline.DefaultAVIFSpeed),
		JPEGQuality:  getEnvInt("IMAGEUTILS_JPEG_QUALITY", pipeline.DefaultJPEGQuality),
		MaxBytes:     int64(getEnvInt("IMAGEUTILS_MAX_BYTES", pipeline.DefaultMaxBytes)),
		Workers:      getEnvInt("IMAGEUTILS_WORKERS", 4),
		LogLevel:     getEnv("IMAGEUTILS_LOG_LEVEL", "info"),
	}
}

// LoadFile reads the environment configuration and overlays the TOML file at
// path. Keys absent from the file keep their environment or default value.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := engine.New(c.Engine, c.Filter); err != nil {
		return err
	}
	if c.OutputFormat != "" {
		if _, err := pipeline.FormatFromPath("x." + c.OutputFormat); err != nil {
			return err
		}
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxBytes < 1 {
		return fmt.Errorf("max_bytes must be positive, got %d", c.MaxBytes)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
