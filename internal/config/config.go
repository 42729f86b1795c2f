// Package config loads quizzy's settings from an optional quizzy.yaml, a
// .env file and QUIZZY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/quizzy/internal/llm"
)

// ProviderSample selects the built-in question set instead of an LLM.
const ProviderSample = "sample"

// Environments accepted in Config.Env.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the application configuration.
type Config struct {
	Env     string      `mapstructure:"env" validate:"oneof=development production"`
	LLM     llm.Config  `mapstructure:"llm"`
	Flow    FlowConfig  `mapstructure:"flow"`
	Serve   ServeConfig `mapstructure:"serve"`
	DB      string      `mapstructure:"db"`
	LogFile string      `mapstructure:"log_file"`
}

// FlowConfig points quiz generation at a remote flow endpoint. An empty URL
// generates locally.
type FlowConfig struct {
	URL     string        `mapstructure:"url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
}

// ServeConfig configures "quizzy serve".
type ServeConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// Options control where Load looks. Zero values use the defaults.
type Options struct {
	ConfigFile string // explicit config file; skips the search path
	EnvFile    string // defaults to ".env"
	Sample     bool   // force the built-in sample set, ignoring provider and flow settings
}

// standardKeys are the provider key variables honoured without the
// QUIZZY_ prefix.
var standardKeys = map[string]string{
	llm.ProviderGemini:     "GEMINI_API_KEY",
	llm.ProviderOpenAI:     "OPENAI_API_KEY",
	llm.ProviderAnthropic:  "ANTHROPIC_API_KEY",
	llm.ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// Load reads the configuration. Missing files are not an error.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QUIZZY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// No default, so it has to be bound for Unmarshal to see it.
	_ = v.BindEnv("llm.provider")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("quizzy")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configHome(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.resolveProvider()
	if opts.Sample {
		cfg.LLM.Provider = ProviderSample
		cfg.Flow.URL = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("db", "")
	v.SetDefault("log_file", "")
	v.SetDefault("serve.addr", ":3400")
	v.SetDefault("flow.url", "")
	v.SetDefault("flow.timeout", "0s")

	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
}

// resolveProvider fills in the provider and its key from the standard
// variables when they were not configured explicitly.
func (c *Config) resolveProvider() {
	if c.LLM.Provider == "" {
		// Prefer a provider whose key was configured under QUIZZY_.
		for _, p := range []string{llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderOpenRouter} {
			probe := c.LLM
			probe.Provider = p
			if probe.HasKey() {
				c.LLM.Provider = p
				return
			}
		}
		if d, ok := llm.DiscoverConfig(); ok {
			c.LLM.Provider = d.Provider
		} else {
			return
		}
	}

	if c.LLM.HasKey() {
		return
	}
	name, ok := standardKeys[c.LLM.Provider]
	if !ok {
		return
	}
	key := os.Getenv(name)
	switch c.LLM.Provider {
	case llm.ProviderGemini:
		c.LLM.Gemini.APIKey = key
	case llm.ProviderOpenAI:
		c.LLM.OpenAI.APIKey = key
	case llm.ProviderAnthropic:
		c.LLM.Anthropic.APIKey = key
	case llm.ProviderOpenRouter:
		c.LLM.OpenRouter.APIKey = key
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct constraints and, when a remote LLM provider
// is selected, the provider settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.LLM.Provider {
	case "", ProviderSample:
		return nil
	}
	if c.Flow.URL != "" {
		// Generation happens remotely; local keys are irrelevant.
		return nil
	}
	return c.LLM.Validate()
}

// configHome is $XDG_CONFIG_HOME/quizzy, or ~/.config/quizzy.
func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "quizzy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quizzy")
}
