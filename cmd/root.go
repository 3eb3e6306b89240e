package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/cache"
	"github.com/abhisek/trivia/internal/config"
	"github.com/abhisek/trivia/internal/llm"
	"github.com/abhisek/trivia/internal/llmquiz"
	"github.com/abhisek/trivia/internal/logging"
	"github.com/abhisek/trivia/internal/remote"
	"github.com/abhisek/trivia/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "trivia",
	Short: "Terminal trivia and study assistant",
	Long: "Trivia: pick a topic, answer AI-generated quiz questions and review your score.\n" +
		"Questions come from the study assistant backend or directly from a language model.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	registerGlobalFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(warmCmd)
	rootCmd.AddCommand(versionCmd)
}

func registerGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/trivia/config.yaml)")
	flags.String("api-url", "", "Study assistant API base URL (overrides TRIVIA_API_URL)")
	flags.String("source", "", "Quiz source: remote or llm (overrides TRIVIA_SOURCE)")
	flags.String("log-file", "", "Log file path (overrides TRIVIA_LOG_FILE)")
	flags.Bool("debug", false, "Enable debug logging")
}

// loadConfig layers defaults, the config file, .env, TRIVIA_* variables
// and finally the global flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := config.LoadDotEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("source"); v != "" {
		cfg.Source = v
		if v == config.SourceLLM {
			cfg.LLM.Discover(os.Getenv)
		}
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.Log.File = v
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug, _ = cmd.Flags().GetBool("debug")
	}
}

// runtime is the wired dependency set shared by the commands.
type runtime struct {
	cfg      config.Config
	log      *logging.Logger
	service  remote.QuizService
	client   *remote.HTTPClient
	loader   *cache.Loader
	executor *session.Executor
	closers  []func() error
}

// setup loads the config and builds the quiz service, cache and executor.
// Callers must defer rt.Close.
func setup(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Options{Path: cfg.Log.File, Debug: cfg.Log.Debug})
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: log}

	switch cfg.Source {
	case config.SourceLLM:
		p, err := llm.NewProvider(ctx, cfg.LLM, log)
		if err != nil {
			return nil, fmt.Errorf("llm provider: %w", err)
		}
		rt.service = remote.WithLogging(llmquiz.New(p, llmquiz.WithLogger(log)), log)
	default:
		rt.client = remote.NewHTTPClient(cfg.RemoteConfig())
		rt.service = remote.WithRetry(remote.WithLogging(rt.client, log), cfg.RetryPolicy())
	}

	rt.loader = cache.NewLoader(rt.openCache(ctx), log)
	rt.executor = session.NewExecutor(rt.service,
		session.WithCache(rt.loader),
		session.WithLogger(log),
	)
	log.Debug("runtime ready", "source", cfg.Source, "cache", cfg.Cache.Backend)
	return rt, nil
}

// openCache returns the configured cache. An unreachable Redis falls back
// to the in-memory cache.
func (rt *runtime) openCache(ctx context.Context) cache.Cache {
	cc := rt.cfg.Cache
	switch cc.Backend {
	case config.CacheNone:
		return cache.Nop{}
	case config.CacheRedis:
		r, err := cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cc.Redis.Addr,
			Password: cc.Redis.Password,
			DB:       cc.Redis.DB,
			Prefix:   cc.Redis.Prefix,
			TTL:      cc.TTL,
		})
		if err == nil {
			rt.closers = append(rt.closers, r.Close)
			return r
		}
		rt.log.Warn("redis cache unavailable, using memory", "addr", cc.Redis.Addr, "error", err)
	}
	return cache.NewMemory(cc.TTL)
}

// remoteClient returns the HTTP client for commands that only the
// study assistant backend supports.
func (rt *runtime) remoteClient() (*remote.HTTPClient, error) {
	if rt.client == nil {
		return nil, fmt.Errorf("this command needs the %s source (current: %s)", config.SourceRemote, rt.cfg.Source)
	}
	return rt.client, nil
}

func (rt *runtime) Close() {
	for _, c := range rt.closers {
		if err := c(); err != nil {
			rt.log.Warn("close", "error", err)
		}
	}
	rt.log.Sync()
}
