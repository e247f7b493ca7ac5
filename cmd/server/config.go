package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 64 * 1024
	DefaultConcurrency    = 0 // 0 means use fasthttp's default
	DefaultScoreTimeout   = 10 * time.Second
)

// Embedding providers
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
)

// Config holds the server configuration.
type Config struct {
	port           int
	readTimeout    time.Duration
	writeTimeout   time.Duration
	maxRequestSize int
	concurrency    int
	scoreTimeout   time.Duration
	warmUp         bool
	logFile        string
	jsonLogs       bool

	embedProvider string
	openAIKey     string
	openAIModel   string
	openAIBaseURL string
	embedTimeout  time.Duration

	breakerFailures int
	breakerReset    time.Duration
	breakerHalfOpen int

	maxTimeSeconds float64
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.maxRequestSize <= 0 {
		return errors.New("--max-request-size must be positive")
	}
	switch c.embedProvider {
	case ProviderNone:
	case ProviderOpenAI:
		if c.openAIKey == "" {
			return errors.New("--openai-api-key is required with --embed-provider=openai")
		}
	default:
		return fmt.Errorf("unknown embedding provider %q (want %q or %q)", c.embedProvider, ProviderOpenAI, ProviderNone)
	}
	if c.maxTimeSeconds <= 0 {
		return fmt.Errorf("--max-time-seconds must be positive: %v", c.maxTimeSeconds)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GUESS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "guess-server",
		Short:         "HTTP service that scores guesses against drawing prompts.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.IntVarP(&cfg.port, "port", "p", DefaultPort, "HTTP server port (env: GUESS_PORT)")
	fs.DurationVar(&cfg.readTimeout, "read-timeout", DefaultReadTimeout, "HTTP read timeout (env: GUESS_READ_TIMEOUT)")
	fs.DurationVar(&cfg.writeTimeout, "write-timeout", DefaultWriteTimeout, "HTTP write timeout (env: GUESS_WRITE_TIMEOUT)")
	fs.IntVar(&cfg.maxRequestSize, "max-request-size", DefaultMaxRequestSize, "maximum request size in bytes (env: GUESS_MAX_REQUEST_SIZE)")
	fs.IntVar(&cfg.concurrency, "concurrency", DefaultConcurrency, "maximum number of concurrent connections (env: GUESS_CONCURRENCY)")
	fs.DurationVar(&cfg.scoreTimeout, "score-timeout", DefaultScoreTimeout, "deadline for scoring a single request (env: GUESS_SCORE_TIMEOUT)")
	fs.BoolVar(&cfg.warmUp, "warm-up", true, "perform system warm-up on startup (env: GUESS_WARM_UP)")
	fs.StringVar(&cfg.logFile, "log-file", "", "log file path, empty for stdout (env: GUESS_LOG_FILE)")
	fs.BoolVar(&cfg.jsonLogs, "json-logs", true, "write logs as JSON (env: GUESS_JSON_LOGS)")
	fs.StringVar(&cfg.embedProvider, "embed-provider", ProviderNone, "embedding provider: openai or none (env: GUESS_EMBED_PROVIDER)")
	fs.StringVar(&cfg.openAIKey, "openai-api-key", "", "OpenAI API key (env: GUESS_OPENAI_API_KEY)")
	fs.StringVar(&cfg.openAIModel, "openai-model", "", "OpenAI embeddings model, empty for the default (env: GUESS_OPENAI_MODEL)")
	fs.StringVar(&cfg.openAIBaseURL, "openai-base-url", "", "override the OpenAI API base URL (env: GUESS_OPENAI_BASE_URL)")
	fs.DurationVar(&cfg.embedTimeout, "embed-timeout", 5*time.Second, "per-request embedding timeout (env: GUESS_EMBED_TIMEOUT)")
	fs.IntVar(&cfg.breakerFailures, "breaker-failures", 5, "consecutive embedding failures before the provider is skipped (env: GUESS_BREAKER_FAILURES)")
	fs.DurationVar(&cfg.breakerReset, "breaker-reset", 30*time.Second, "time before a skipped provider is probed again (env: GUESS_BREAKER_RESET)")
	fs.IntVar(&cfg.breakerHalfOpen, "breaker-half-open", 2, "successful probe calls needed before the provider is trusted again (env: GUESS_BREAKER_HALF_OPEN)")
	fs.Float64Var(&cfg.maxTimeSeconds, "max-time-seconds", 60, "round length used for the time bonus (env: GUESS_MAX_TIME_SECONDS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.SilenceUsage = true

	return cmd
}
