package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Abraxas-365/inputassist/document"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// INPUTASSIST_CHUNK_SIZE for chunk.size.
const EnvPrefix = "INPUTASSIST"

// Config holds all settings of the tool.
type Config struct {
	Chunk  ChunkConfig  `mapstructure:"chunk" json:"chunk"`
	Tokens TokensConfig `mapstructure:"tokens" json:"tokens"`
	HTTP   HTTPConfig   `mapstructure:"http" json:"http"`
	Source SourceConfig `mapstructure:"source" json:"source"`
	LLM    LLMConfig    `mapstructure:"llm" json:"llm"`
	AWS    AWSConfig    `mapstructure:"aws" json:"aws"`
	Log    LogConfig    `mapstructure:"log" json:"log"`
}

type ChunkConfig struct {
	Size   int    `mapstructure:"size" json:"size"`
	Unit   string `mapstructure:"unit" json:"unit"`
	Prefix string `mapstructure:"prefix" json:"prefix"`
}

func (c ChunkConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Size, validation.Required, validation.Min(1)),
		validation.Field(&c.Unit, validation.Required, validation.In(document.UnitRunes, document.UnitTokens)),
	)
}

// TokensConfig selects the tokenizer for the tokens unit and token counts.
type TokensConfig struct {
	Model string `mapstructure:"model" json:"model"`
}

type HTTPConfig struct {
	// Timeout of a web fetch. Zero waits forever.
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout"`
	UserAgent string        `mapstructure:"user_agent" json:"user_agent"`
}

func (c HTTPConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

type SourceConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes" json:"max_bytes"`
}

func (c SourceConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxBytes, validation.Min(int64(0))),
	)
}

// LLMConfig configures the optional send command.
type LLMConfig struct {
	Provider  string `mapstructure:"provider" json:"provider"`
	Model     string `mapstructure:"model" json:"model"`
	APIKey    string `mapstructure:"api_key" json:"api_key"`
	BaseURL   string `mapstructure:"base_url" json:"base_url"`
	MaxTokens int    `mapstructure:"max_tokens" json:"max_tokens"`
}

func (c LLMConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider, validation.In(ProviderOpenAI, ProviderBedrock)),
		validation.Field(&c.MaxTokens, validation.Min(0)),
	)
}

const (
	ProviderOpenAI  = "openai"
	ProviderBedrock = "bedrock"
)

type AWSConfig struct {
	Region string `mapstructure:"region" json:"region"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.In("text", "json")),
	)
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Chunk),
		validation.Field(&c.HTTP),
		validation.Field(&c.Source),
		validation.Field(&c.LLM),
		validation.Field(&c.Log),
	)
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"size":        "chunk.size",
	"unit":        "chunk.unit",
	"prefix":      "chunk.prefix",
	"token-model": "tokens.model",
	"timeout":     "http.timeout",
	"provider":    "llm.provider",
	"model":       "llm.model",
	"max-tokens":  "llm.max_tokens",
	"region":      "aws.region",
	"log-level":   "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chunk.size", 15000)
	v.SetDefault("chunk.unit", document.UnitRunes)
	v.SetDefault("chunk.prefix", "")
	v.SetDefault("tokens.model", "gpt-4")
	v.SetDefault("http.timeout", "0s")
	v.SetDefault("http.user_agent", "inputassist/1.0")
	v.SetDefault("source.max_bytes", 100<<20)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("aws.region", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load resolves the configuration from defaults, an optional config file,
// a .env file, INPUTASSIST_* variables and finally any flags in flags that
// were set. path may be empty to search the usual locations.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("inputassist")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "inputassist"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &ConfigError{Op: "Load", Message: "failed to read config file", Err: err}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, &ConfigError{Op: "Load", Message: "failed to bind flag " + name, Err: err}
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Op: "Load", Message: "failed to decode config", Err: err}
	}
	cfg.Chunk.Unit = strings.ToLower(cfg.Chunk.Unit)

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Op: "Validate", Message: "invalid config", Err: err}
	}

	return &cfg, nil
}
