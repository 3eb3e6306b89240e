// Package config loads trivia settings. Sources are applied in order:
// built-in defaults, config.yaml, a .env file, TRIVIA_* environment
// variables, then command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/trivia/internal/cache"
	"github.com/abhisek/trivia/internal/llm"
	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/remote"
	"github.com/abhisek/trivia/internal/session"
)

// Quiz sources.
const (
	SourceRemote = "remote"
	SourceLLM    = "llm"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// MaxQuestionCount bounds the question count of a single quiz.
const MaxQuestionCount = 20

// Config is the full application configuration.
type Config struct {
	// Source selects where quizzes come from: the study assistant
	// backend or a language model.
	Source string `yaml:"source"`

	API   APIConfig   `yaml:"api"`
	Retry RetryConfig `yaml:"retry"`
	Quiz  QuizConfig  `yaml:"quiz"`
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`

	LLM llm.Config `yaml:"llm"`
}

// APIConfig points at the study assistant backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// RetryConfig controls answer validation retries.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	Multiplier  float64       `yaml:"multiplier"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Jitter      float64       `yaml:"jitter"`
}

// QuizConfig holds per-quiz defaults.
type QuizConfig struct {
	Count        int           `yaml:"count"`
	Type         string        `yaml:"type"`
	AdvanceDelay time.Duration `yaml:"advance_delay"`
}

// CacheConfig selects the quiz cache.
type CacheConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`

	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig is used when Backend is "redis".
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	policy := remote.DefaultRetryPolicy()
	return Config{
		Source: SourceRemote,
		API: APIConfig{
			BaseURL: remote.DefaultBaseURL,
			Timeout: remote.DefaultTimeout,
		},
		Retry: RetryConfig{
			MaxAttempts: policy.MaxAttempts,
			InitialWait: policy.InitialWait,
			Multiplier:  policy.Multiplier,
		},
		Quiz: QuizConfig{
			Count:        session.DefaultCount,
			Type:         string(quiz.KindMixed),
			AdvanceDelay: session.AdvanceDelay,
		},
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     cache.DefaultTTL,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: cache.DefaultRedisPrefix,
			},
		},
		Log: LogConfig{
			File: defaultLogPath(),
		},
		LLM: llm.DefaultConfig(),
	}
}

// Load reads the config file at path over the defaults. An empty path
// means the default location, where a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads the given .env files (default ".env") into the process
// environment. Missing files are ignored and existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays TRIVIA_* variables. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	var errs []error
	dur := func(dst *time.Duration, key string) {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	num := func(dst *int, key string) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str(&c.Source, "TRIVIA_SOURCE")
	str(&c.API.BaseURL, "TRIVIA_API_URL")
	dur(&c.API.Timeout, "TRIVIA_API_TIMEOUT")
	num(&c.Retry.MaxAttempts, "TRIVIA_RETRY_ATTEMPTS")
	num(&c.Quiz.Count, "TRIVIA_QUESTION_COUNT")
	str(&c.Quiz.Type, "TRIVIA_QUESTION_TYPE")
	str(&c.Cache.Backend, "TRIVIA_CACHE")
	dur(&c.Cache.TTL, "TRIVIA_CACHE_TTL")
	str(&c.Cache.Redis.Addr, "TRIVIA_REDIS_ADDR")
	str(&c.Cache.Redis.Password, "TRIVIA_REDIS_PASSWORD")
	str(&c.Log.File, "TRIVIA_LOG_FILE")
	if v := getenv("TRIVIA_DEBUG"); v != "" {
		c.Log.Debug, _ = strconv.ParseBool(v)
	}

	c.LLM.ApplyEnv(getenv)
	if c.Source == SourceLLM {
		c.LLM.Discover(getenv)
	}
	return errors.Join(errs...)
}

// Validate checks the settings that would otherwise fail deep inside a
// quiz.
func (c Config) Validate() error {
	switch c.Source {
	case SourceRemote:
		if c.API.BaseURL == "" {
			return errors.New("api.base_url is required for the remote source")
		}
	case SourceLLM:
		if err := c.LLM.Validate(); err != nil {
			return fmt.Errorf("llm source: %w", err)
		}
	default:
		return fmt.Errorf("unknown quiz source %q (want %s or %s)", c.Source, SourceRemote, SourceLLM)
	}

	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.New("retry.max_attempts must be at least 1")
	}
	if c.Quiz.Count < 1 || c.Quiz.Count > MaxQuestionCount {
		return fmt.Errorf("quiz.count must be between 1 and %d", MaxQuestionCount)
	}
	if _, err := quiz.ParseKind(c.Quiz.Type); err != nil {
		return fmt.Errorf("quiz.type: %w", err)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New("cache.redis.addr is required for the redis cache")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// RetryPolicy converts the retry settings for remote.WithRetry.
func (c Config) RetryPolicy() remote.RetryPolicy {
	return remote.RetryPolicy{
		MaxAttempts: c.Retry.MaxAttempts,
		InitialWait: c.Retry.InitialWait,
		Multiplier:  c.Retry.Multiplier,
		MaxWait:     c.Retry.MaxWait,
		Jitter:      c.Retry.Jitter,
	}
}

// RemoteConfig converts the API settings for remote.NewHTTPClient.
func (c Config) RemoteConfig() remote.Config {
	return remote.Config{BaseURL: c.API.BaseURL, Timeout: c.API.Timeout}
}

// QuestionType returns the parsed default question type.
func (c Config) QuestionType() quiz.Kind {
	k, err := quiz.ParseKind(c.Quiz.Type)
	if err != nil {
		return quiz.KindMixed
	}
	return k
}

// DefaultPath returns $XDG_CONFIG_HOME/trivia/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "trivia"), nil
}

func defaultLogPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "trivia", "trivia.log")
}
