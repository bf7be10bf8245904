package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"penguind/internal/common/fsutil"
	"penguind/internal/config"
	"penguind/internal/httpapi"
	"penguind/internal/manager"
	"penguind/internal/registry"
	"penguind/internal/store"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("penguind: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr         string
		modelsDir    string
		registryPath string
		defaultModel string
		logLevel     string
		configPath   string
	)
	root := &cobra.Command{
		Use:           "penguind",
		Short:         "HTTP inference service for pre-trained penguin species pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(addr, modelsDir, registryPath, defaultModel, logLevel, configPath)
		},
	}
	// Flags with environment variable defaults; a config file fills whatever
	// neither provides.
	root.Flags().StringVar(&addr, "addr", envOr("PENGUIND_ADDR", ""), "HTTP listen address, e.g. :8080")
	root.Flags().StringVar(&modelsDir, "models-dir", envOr("PENGUIND_MODELS_DIR", ""), "Directory holding the registry descriptor and pipeline artifacts")
	root.Flags().StringVar(&registryPath, "registry", "", "Registry descriptor path (defaults to <models-dir>/"+registry.DescriptorName+")")
	root.Flags().StringVar(&defaultModel, "default-model", "", "Model to activate at startup instead of the descriptor default")
	root.Flags().StringVar(&logLevel, "log-level", envOr("PENGUIND_LOG_LEVEL", ""), "Log level: debug|info|warn|error")
	root.Flags().StringVar(&configPath, "config", envOr("PENGUIND_CONFIG", ""), "Optional config file (.yaml/.json/.toml)")
	return root
}

// firstOf returns the first non-empty value.
func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func run(addr, modelsDir, registryPath, defaultModel, logLevel, configPath string) error {
	var cfg config.Config
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	addr = firstOf(addr, cfg.Addr, ":8080")
	modelsDir = firstOf(modelsDir, cfg.ModelsDir, "./models")
	registryPath = firstOf(registryPath, cfg.RegistryPath, filepath.Join(modelsDir, registry.DescriptorName))
	defaultModel = firstOf(defaultModel, cfg.DefaultModel)
	logLevel = firstOf(logLevel, cfg.LogLevel, "info")

	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Str("service", "penguind").Logger()
	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(logLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins)

	// A missing or malformed registry descriptor is fatal: no endpoint can
	// recover from it.
	reg, err := registry.Load(registryPath)
	if err != nil {
		return err
	}
	st, err := store.New(modelsDir)
	if err != nil {
		return err
	}
	if !fsutil.PathExists(st.Dir()) {
		logger.Warn().Str("dir", st.Dir()).Msg("models directory does not exist; every switch will fail until it does")
	}
	mgr := manager.New(reg, st)

	// Activate the startup model through the same validated path as
	// /select_model. A startup model outside available_models is a
	// configuration error nothing can repair at runtime and aborts startup;
	// a listed model whose artifact fails to load can still be replaced
	// through /select_model, so the service keeps listening and /predict
	// answers 500 until a switch succeeds.
	startModel := firstOf(defaultModel, reg.DefaultModel)
	if err := mgr.SetActive(context.Background(), startModel); err != nil {
		if manager.IsModelNotAvailable(err) {
			return err
		}
		logger.Error().Err(err).Str("model", startModel).Msg("startup model activation failed; serving without an active model")
	} else {
		logger.Info().Str("model", startModel).Msg("active model loaded")
	}

	baseCtx, baseCancel := context.WithCancel(context.Background())
	defer baseCancel()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("models_dir", st.Dir()).Msg("penguind listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	baseCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
