// Package config reads raytracer settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-direct-raytracer/pkg/storage"
)

// Config holds settings shared by the CLI and the web server
type Config struct {
	RootDir        string
	OutputDir      string
	Format         string
	Workers        int
	TileSize       int
	ThumbnailWidth int
	ServerAddress  string
	S3             storage.S3Config
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		RootDir:        ".",
		OutputDir:      "output",
		Format:         "png",
		Workers:        runtime.NumCPU(),
		TileSize:       64,
		ThumbnailWidth: 0,
		ServerAddress:  ":8080",
	}
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %d", key, n)
	}
	return n, nil
}

// Load reads RAYTRACER_* variables. A .env file in RAYTRACER_ROOT_DIR is loaded
// first when present; variables already set in the environment win.
func Load() (Config, error) {
	cfg := Default()

	cfg.RootDir = getEnv("RAYTRACER_ROOT_DIR", cfg.RootDir)
	envFile := filepath.Join(cfg.RootDir, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg.OutputDir = getEnv("RAYTRACER_OUTPUT_DIR", cfg.OutputDir)
	cfg.Format = getEnv("RAYTRACER_FORMAT", cfg.Format)
	cfg.ServerAddress = getEnv("RAYTRACER_SERVER_ADDRESS", cfg.ServerAddress)

	var err error
	if cfg.Workers, err = getEnvInt("RAYTRACER_WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}
	if cfg.TileSize, err = getEnvInt("RAYTRACER_TILE_SIZE", cfg.TileSize); err != nil {
		return Config{}, err
	}
	if cfg.ThumbnailWidth, err = getEnvInt("RAYTRACER_THUMBNAIL_WIDTH", cfg.ThumbnailWidth); err != nil {
		return Config{}, err
	}

	cfg.S3 = storage.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
		ACL:       os.Getenv("S3_ACL"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}

	return cfg, nil
}
