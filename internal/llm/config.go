package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a model provider. It is embedded in the
// application config file under the "llm" key.
type Config struct {
	Provider string `yaml:"provider"`

	Anthropic  ProviderConfig `yaml:"anthropic"`
	OpenAI     ProviderConfig `yaml:"openai"`
	Gemini     ProviderConfig `yaml:"gemini"`
	OpenRouter ProviderConfig `yaml:"openrouter"`

	Retry RetryConfig `yaml:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// ProviderConfig holds the settings shared by every provider.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// RetryConfig configures retries of transient provider failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns the defaults: Anthropic Haiku, three attempts.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ApplyEnv overlays TRIVIA_* variables on c. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Provider, "TRIVIA_LLM_PROVIDER")
	for name, pc := range c.providers() {
		prefix := "TRIVIA_" + strings.ToUpper(name) + "_"
		set(&pc.APIKey, prefix+"API_KEY")
		set(&pc.Model, prefix+"MODEL")
		set(&pc.BaseURL, prefix+"BASE_URL")
	}
}

// Discover fills in the first provider whose standard API key variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)
// is set, when c has no usable key of its own.
func (c *Config) Discover(getenv func(string) string) bool {
	if c.Validate() == nil {
		return true
	}
	order := []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}
	providers := c.providers()
	for _, name := range order {
		if k := getenv(strings.ToUpper(name) + "_API_KEY"); k != "" {
			c.Provider = name
			providers[name].APIKey = k
			return true
		}
	}
	return false
}

// Selected returns the settings of the configured provider.
func (c Config) Selected() ProviderConfig {
	if pc, ok := c.providers()[c.Provider]; ok {
		return *pc
	}
	return ProviderConfig{}
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	pc, ok := c.providers()[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if pc.APIKey == "" {
		return fmt.Errorf("TRIVIA_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

func (c *Config) providers() map[string]*ProviderConfig {
	return map[string]*ProviderConfig{
		ProviderAnthropic:  &c.Anthropic,
		ProviderOpenAI:     &c.OpenAI,
		ProviderGemini:     &c.Gemini,
		ProviderOpenRouter: &c.OpenRouter,
	}
}
