// Command server exposes guess scoring and the point formula over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.opentelemetry.io/otel"

	"github.com/baditaflorin/go_guess_similarity/internal/observe"
	"github.com/baditaflorin/go_guess_similarity/pkg/guess"
	"github.com/baditaflorin/go_guess_similarity/pkg/points"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	if err := newCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *Config) error {
	logger, err := createLogger(cfg.logFile, cfg.jsonLogs)
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("Starting guess scoring server",
		"port", cfg.port,
		"read_timeout", cfg.readTimeout,
		"write_timeout", cfg.writeTimeout,
		"max_request_size", cfg.maxRequestSize,
		"embed_provider", cfg.embedProvider,
	)

	shutdownMetrics, err := observe.InitProvider()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			logger.Error("Error shutting down metrics provider", "error", err)
		}
	}()

	scorer, err := newScorer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize scorer: %w", err)
	}

	calc, err := points.New(
		points.WithMaxTimeSeconds(cfg.maxTimeSeconds),
		points.WithMeterProvider(otel.GetMeterProvider()),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize points calculator: %w", err)
	}

	logger.Info("Scoring engine initialized successfully",
		"warm_up", cfg.warmUp,
		"cpus", runtime.NumCPU(),
	)

	h := &handler{
		scorer:       scorer,
		points:       calc,
		logger:       logger,
		scoreTimeout: cfg.scoreTimeout,
		metrics:      fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
	}

	server := &fasthttp.Server{
		Handler:               h.handle,
		Name:                  "GuessServer",
		ReadTimeout:           cfg.readTimeout,
		WriteTimeout:          cfg.writeTimeout,
		MaxRequestBodySize:    cfg.maxRequestSize,
		Concurrency:           cfg.concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.port)
		logger.Info("Server listening", "address", addr)
		errCh <- server.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.writeTimeout)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("Error during server shutdown", "error", err)
	}
	logger.Info("Server stopped")
	return nil
}

func newScorer(cfg *Config, logger l.Logger) (*guess.Scorer, error) {
	opts := []guess.Option{
		guess.WithLogger(logger),
		guess.WithPooledNormalizer(),
		guess.WithMeterProvider(otel.GetMeterProvider()),
		guess.WithWarmUp(cfg.warmUp),
	}

	if cfg.embedProvider == ProviderOpenAI {
		opts = append(opts,
			guess.WithOpenAI(guess.OpenAIConfig{
				APIKey:  cfg.openAIKey,
				Model:   cfg.openAIModel,
				BaseURL: cfg.openAIBaseURL,
				Timeout: cfg.embedTimeout,
			}),
			guess.WithCircuitBreaker(guess.BreakerConfig{
				MaxFailures:  cfg.breakerFailures,
				ResetTimeout: cfg.breakerReset,
				HalfOpenMax:  cfg.breakerHalfOpen,
			}),
		)
	}

	return guess.New(opts...)
}

// createLogger creates and configures a logger
func createLogger(logFile string, jsonFormat bool) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
