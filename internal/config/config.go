package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort = 8000
	defaultEnv  = "development"

	defaultCritiqueModel  = "claude-3-5-haiku-20241022"
	defaultSynthesisModel = "claude-sonnet-4-5-20250929"
	defaultExtractModel   = "claude-3-5-haiku-20241022"
	defaultCritiqueTokens = 2500
	defaultSpeechModel    = "gpt-4o-mini-tts"
)

// AppConfig holds runtime startup configuration loaded from YAML,
// with environment variable fallbacks for secrets.
type AppConfig struct {
	Port           int
	Env            string // "development" | "production"
	AllowedOrigins []string
	RedisURL       string // optional; empty disables the speech audio cache
	Anthropic      AnthropicConfig
	OpenAI         OpenAIConfig
}

// AnthropicConfig configures the critique/synthesis generation calls.
type AnthropicConfig struct {
	APIKey         string
	Endpoint       string
	CritiqueModel  string
	SynthesisModel string
	ExtractModel   string
	CritiqueTokens int
}

// OpenAIConfig configures speech synthesis.
type OpenAIConfig struct {
	APIKey      string
	Endpoint    string
	SpeechModel string
}

type rawAppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"`
	NodeEnv        string             `yaml:"node_env"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	CORSOrigins    []string           `yaml:"cors_allowed_origins"`
	RedisURL       string             `yaml:"redis_url"`
	Anthropic      rawAnthropicConfig `yaml:"anthropic"`
	OpenAI         rawOpenAIConfig    `yaml:"openai"`
}

type rawAnthropicConfig struct {
	APIKey         string `yaml:"api_key"`
	Endpoint       string `yaml:"endpoint"`
	CritiqueModel  string `yaml:"critique_model"`
	SynthesisModel string `yaml:"synthesis_model"`
	ExtractModel   string `yaml:"extract_model"`
	CritiqueTokens int    `yaml:"critique_max_tokens"`
}

type rawOpenAIConfig struct {
	APIKey      string `yaml:"api_key"`
	Endpoint    string `yaml:"endpoint"`
	SpeechModel string `yaml:"speech_model"`
	TTSModel    string `yaml:"tts_model"`
}

// Load reads the YAML config at path. A missing file is not an error:
// the service can run entirely from environment variables.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	var raw rawAppConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults + env
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return normalize(&raw)
}

func normalize(raw *rawAppConfig) (*AppConfig, error) {
	cfg := &AppConfig{
		Port: raw.Port,
		Env:  firstNonEmpty(raw.Env, raw.NodeEnv, envString("APP_ENV"), defaultEnv),
	}

	if cfg.Port == 0 {
		if p := envString("PORT"); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("invalid PORT %q: %w", p, err)
			}
			cfg.Port = n
		}
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port %d out of range", cfg.Port)
	}

	cfg.AllowedOrigins = raw.AllowedOrigins
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = raw.CORSOrigins
	}

	cfg.RedisURL = firstNonEmpty(raw.RedisURL, envString("REDIS_URL"))

	cfg.Anthropic = AnthropicConfig{
		APIKey:         firstNonEmpty(raw.Anthropic.APIKey, envString("ANTHROPIC_API_KEY")),
		Endpoint:       strings.TrimSpace(raw.Anthropic.Endpoint),
		CritiqueModel:  firstNonEmpty(raw.Anthropic.CritiqueModel, defaultCritiqueModel),
		SynthesisModel: firstNonEmpty(raw.Anthropic.SynthesisModel, defaultSynthesisModel),
		ExtractModel:   firstNonEmpty(raw.Anthropic.ExtractModel, defaultExtractModel),
		CritiqueTokens: raw.Anthropic.CritiqueTokens,
	}
	if cfg.Anthropic.CritiqueTokens <= 0 {
		cfg.Anthropic.CritiqueTokens = defaultCritiqueTokens
	}

	cfg.OpenAI = OpenAIConfig{
		APIKey:      firstNonEmpty(raw.OpenAI.APIKey, envString("OPENAI_API_KEY")),
		Endpoint:    strings.TrimSpace(raw.OpenAI.Endpoint),
		SpeechModel: firstNonEmpty(raw.OpenAI.SpeechModel, raw.OpenAI.TTSModel, defaultSpeechModel),
	}

	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
