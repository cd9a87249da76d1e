package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/petdesk/internal/config"
	"github.com/five82/petdesk/internal/localstore"
	"github.com/five82/petdesk/internal/logger"
	"github.com/five82/petdesk/internal/petapi"
	"github.com/five82/petdesk/internal/prefs"
	"github.com/five82/petdesk/internal/state"
	"github.com/five82/petdesk/internal/ui"
)

// Options configure the petdesk application. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath string // empty uses ~/.config/petdesk/config.toml
	PrefsPath  string // empty uses ~/.config/petdesk/prefs.toml
	EnvFile    string // empty uses .env in the working directory
	BackendURL string
	PollEvery  int // seconds; zero keeps the configured refresh_interval
}

// Run boots the petdesk TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogPath())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	client, err := petapi.NewClient(cfg.BackendURL,
		petapi.WithTimeout(cfg.RequestTimeout),
		petapi.WithLogger(log.With(zap.String("component", "petapi"))),
	)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	kv, err := localstore.NewFileKV(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	local := localstore.New(kv, log.With(zap.String("component", "localstore")))

	collection := state.New(client, local, state.Options{
		NoticeDuration: cfg.NoticeDuration,
		Log:            log.With(zap.String("component", "state")),
	})

	log.Info("petdesk starting",
		zap.String("backend", client.Origin()),
		zap.String("data_dir", kv.Dir()),
		zap.Duration("refresh_interval", cfg.RefreshInterval),
	)

	pollCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	pollerDone := StartPoller(pollCtx, collection, cfg.RefreshInterval, log.With(zap.String("component", "poller")))

	err = ui.Run(ui.Options{
		Context:    ctx,
		Collection: collection,
		Origin:     client.Origin(),
		LogPath:    log.Path(),
		ThemeName:  userPrefs.Theme,
		PrefsPath:  prefsPath,
	})

	stopPoller()
	<-pollerDone
	log.Info("petdesk stopped")
	return err
}

// loadConfig merges the .env file, the config file, and opts, in that order.
func loadConfig(opts Options) (config.Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := config.LoadEnvFile(envFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.BackendURL != "" {
		cfg.BackendURL = opts.BackendURL
	}
	if opts.PollEvery > 0 {
		cfg.RefreshInterval = time.Duration(opts.PollEvery) * time.Second
	}
	return cfg, nil
}
