package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const fileName = "intervue.yaml"

type Config struct {
	DataDir string
	DBPath  string
	LogPath string

	AI AIConfig
}

// AIConfig holds settings for the question generation and grading backend.
type AIConfig struct {
	Model           string        `yaml:"model"`
	APIKeyEnv       string        `yaml:"api_key_env"`
	Offline         bool          `yaml:"offline"`
	BreakerInterval time.Duration `yaml:"breaker_interval"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, ".intervue", "intervue.db"),
		LogPath: filepath.Join(dataDir, ".intervue", "intervue.log"),
		AI: AIConfig{
			Model:           "gemini-2.5-flash",
			APIKeyEnv:       "GEMINI_API_KEY",
			BreakerInterval: 60 * time.Second,
			BreakerTimeout:  30 * time.Second,
		},
	}

	// Optional overrides from intervue.yaml in the data dir.
	raw, err := os.ReadFile(filepath.Join(dataDir, fileName))
	if err == nil {
		if err := yaml.Unmarshal(raw, &cfg.AI); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", fileName, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read %s: %w", fileName, err)
	}

	// .env is where the API key usually lives during local runs.
	_ = godotenv.Load(filepath.Join(dataDir, ".env"))
	_ = godotenv.Load()

	return cfg, nil
}

// APIKey resolves the configured API key environment variable.
func (c Config) APIKey() string {
	return os.Getenv(c.AI.APIKeyEnv)
}
