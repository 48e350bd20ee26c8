package root

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/config"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/identity"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/insight"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/storage"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/tracker"
)

type app struct {
	cfg   *config.Config
	log   *slog.Logger
	repo  *storage.Repo
	ids   *identity.Provider
	svc   *tracker.Service
	coach *insight.Coach
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, nil, err
	}
	if flags.store != "" {
		cfg.Storage.Driver = flags.store
	}
	if flags.db != "" {
		if strings.Contains(flags.db, "://") {
			cfg.Storage.URL = flags.db
		} else {
			cfg.Storage.Path = flags.db
		}
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, config.NewLogger(cfg.Log, os.Stderr), nil
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.BlobStore, error) {
	driver, err := storage.ParseDriver(cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}
	return storage.Open(ctx, storage.Options{
		Driver: driver,
		Path:   cfg.Storage.Path,
		URL:    cfg.Storage.URL,
		Prefix: cfg.Storage.Prefix,
		Logger: log,
	})
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}

	repo := storage.NewRepo(store)
	ids := identity.NewProvider(repo, log)

	var gen insight.Generator
	if cfg.AI.APIKey != "" {
		gen = insight.NewGeminiClient(cfg.AI.APIKey,
			insight.WithModel(cfg.AI.Model),
			insight.WithBaseURL(cfg.AI.BaseURL),
		)
	}

	return &app{
		cfg:   cfg,
		log:   log,
		repo:  repo,
		ids:   ids,
		svc:   tracker.NewService(repo, repo, ids, tracker.WithLogger(log)),
		coach: insight.NewCoach(gen, log),
	}, cleanup, nil
}

// habitArg resolves a full id or unique prefix.
func (a *app) habitArg(ctx context.Context, arg string) (string, error) {
	return a.svc.ResolveHabitID(ctx, arg)
}

// dayArg parses --date. Empty means today; "yesterday" is accepted.
func (a *app) dayArg(s string) (engine.Day, error) {
	today := a.svc.Today()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	d, err := engine.ParseDay(s)
	if err != nil {
		return engine.Day{}, err
	}
	if d.After(today) {
		return engine.Day{}, fmt.Errorf("cannot log %s: it is in the future", d)
	}
	return d, nil
}

func friendly(err error) error {
	if errors.Is(err, identity.ErrNotSignedIn) {
		return errors.New("not signed in (run `lum signup` or `lum login`)")
	}
	return err
}
