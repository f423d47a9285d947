package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/consensys/gnark/logger"
	"github.com/eon-protocol/eonvm"
	"github.com/eon-protocol/eonvm/srs"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir      string `yaml:"data_dir"`
	SRSURL       string `yaml:"srs_url"`
	SRSSize      uint64 `yaml:"srs_size"`
	KeyCacheSize int    `yaml:"key_cache_size"`
	LogLevel     string `yaml:"log_level"`
}

func DefaultConfig() Config {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return Config{
		DataDir:      filepath.Join(dir, "eonvm"),
		SRSSize:      srs.DEFAULT_SIZE,
		KeyCacheSize: eonvm.DEFAULT_KEY_CACHE_SIZE,
		LogLevel:     "info",
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) SetupLogger() error {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger())
	return nil
}

func (c Config) SRS() *srs.Cache {
	return srs.New(filepath.Join(c.DataDir, "srs"), c.SRSURL, c.SRSSize)
}

func (c Config) Keys() (*eonvm.KeyCache, error) {
	return eonvm.NewKeyCache(c.SRS(), c.KeyCacheSize)
}
