package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig  `json:"basic_config"`
	Gemini      GeminiConfig `json:"gemini"`
}

type BasicConfig struct {
	ServerAddress string `json:"server_address"`
	ScratchDir    string `json:"scratch_dir"`
	StaticDir     string `json:"static_dir"`
	// MaxBodyBytes caps the whole multipart request body. The client already
	// enforces a 500MB video limit; the server cap leaves slack for the
	// image parts and form fields.
	MaxBodyBytes int64 `json:"max_body_bytes"`
	MaxImages    int   `json:"max_images"`
	// RequestTimeoutSeconds bounds the whole analyze pipeline including
	// both vendor calls.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
}

type GeminiConfig struct {
	APIKey            string `json:"api_key"`
	Model             string `json:"model"`
	UploadPollSeconds int    `json:"upload_poll_seconds"`
}

const (
	DefaultServerAddress  = ":8090"
	DefaultScratchDir     = "./data/scratch"
	DefaultStaticDir      = "./web/static"
	DefaultMaxBodyBytes   = 520 << 20
	DefaultMaxImages      = 8
	DefaultTimeoutSeconds = 240
	DefaultGeminiModel    = "gemini-2.0-flash"
)

// Load reads configuration from the provided path (defaults to config.json).
// A missing file is not an error; defaults apply. GEMINI_API_KEY from the
// environment (or a .env file) always wins over the file value, and its
// absence is surfaced per request rather than at startup.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path == "" {
		path = "config.json"
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err == nil {
		defer file.Close()
		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BasicConfig.ServerAddress == "" {
		c.BasicConfig.ServerAddress = DefaultServerAddress
	}
	if c.BasicConfig.ScratchDir == "" {
		c.BasicConfig.ScratchDir = DefaultScratchDir
	}
	if c.BasicConfig.StaticDir == "" {
		c.BasicConfig.StaticDir = DefaultStaticDir
	}
	if c.BasicConfig.MaxBodyBytes <= 0 {
		c.BasicConfig.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.BasicConfig.MaxImages <= 0 {
		c.BasicConfig.MaxImages = DefaultMaxImages
	}
	if c.BasicConfig.RequestTimeoutSeconds <= 0 {
		c.BasicConfig.RequestTimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultGeminiModel
	}
	if c.Gemini.UploadPollSeconds <= 0 {
		c.Gemini.UploadPollSeconds = 2
	}
}
