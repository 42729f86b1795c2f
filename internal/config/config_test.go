package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizzy/internal/llm"
	"github.com/abhisek/quizzy/internal/quizgen"
)

// clearEnv isolates a test from provider keys in the developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"QUIZZY_LLM_PROVIDER", "QUIZZY_LLM_GEMINI_API_KEY", "QUIZZY_LLM_OPENAI_API_KEY",
		"QUIZZY_ENV", "QUIZZY_SERVE_ADDR", "QUIZZY_FLOW_URL",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, ":3400", cfg.Serve.Addr)
	assert.Equal(t, "", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, 1, cfg.LLM.Retry.MaxAttempts)
	assert.Zero(t, cfg.Flow.Timeout)

	_, err = cfg.NewGenerator(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestLoadDiscoversStandardKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
}

func TestLoadPrefixedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUIZZY_LLM_PROVIDER", "gemini")
	t.Setenv("QUIZZY_LLM_GEMINI_API_KEY", "g-key")
	t.Setenv("QUIZZY_SERVE_ADDR", "127.0.0.1:9000")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
}

func TestLoadExplicitProviderWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUIZZY_LLM_PROVIDER", "anthropic")

	_, err := Load(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUIZZY_LLM_ANTHROPIC_API_KEY")
}

func TestLoadSampleOverridesUnusableProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUIZZY_LLM_PROVIDER", "openai")

	cfg, err := Load(Options{Sample: true})
	require.NoError(t, err)
	assert.Equal(t, ProviderSample, cfg.LLM.Provider)
	assert.Equal(t, "sample", cfg.GeneratorName())
}

func TestLoadConfigFileAndDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	file := filepath.Join(dir, "quizzy.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
env: production
llm:
  provider: sample
flow:
  timeout: 5s
serve:
  addr: ":8080"
`), 0o644))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("QUIZZY_DB=/tmp/quiz.db\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("QUIZZY_DB") })

	cfg, err := Load(Options{ConfigFile: file, EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, ProviderSample, cfg.LLM.Provider)
	assert.Equal(t, ":8080", cfg.Serve.Addr)
	assert.Equal(t, 5*time.Second, cfg.Flow.Timeout)
	assert.Equal(t, "/tmp/quiz.db", cfg.DB)

	gen, err := cfg.NewGenerator(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &quizgen.SampleGenerator{}, gen)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Env:   EnvDevelopment,
			LLM:   llm.DefaultConfig(),
			Serve: ServeConfig{Addr: ":3400"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"gemini with key", func(c *Config) { c.LLM.Gemini.APIKey = "k" }, false},
		{"gemini without key", func(c *Config) {}, true},
		{"sample", func(c *Config) { c.LLM.Provider = ProviderSample }, false},
		{"flow url skips keys", func(c *Config) { c.Flow.URL = "http://localhost:3400" }, false},
		{"bad flow url", func(c *Config) { c.LLM.Provider = ProviderSample; c.Flow.URL = "not a url" }, true},
		{"bad env", func(c *Config) { c.LLM.Provider = ProviderSample; c.Env = "staging" }, true},
		{"no addr", func(c *Config) { c.LLM.Provider = ProviderSample; c.Serve.Addr = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewGenerator(t *testing.T) {
	flow := Config{Flow: FlowConfig{URL: "http://localhost:3400"}}
	gen, err := flow.NewGenerator(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &quizgen.FlowClient{}, gen)
	assert.Equal(t, "flow http://localhost:3400", flow.GeneratorName())

	mock := Config{LLM: llm.Config{Provider: llm.ProviderMock}}
	gen, err = mock.NewGenerator(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &quizgen.LLMGenerator{}, gen)
	assert.Equal(t, "mock", mock.GeneratorName())
}
