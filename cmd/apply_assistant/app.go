package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/apply-assistant/internal/config"
	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/logging"
	"github.com/jonathan/apply-assistant/internal/store"
	"github.com/jonathan/apply-assistant/internal/types"
)

// app bundles what every command needs after configuration is loaded.
type app struct {
	cfg *config.Config
	log logging.Logger
}

// loadApp reads and validates configuration and builds the logger.
func loadApp() (*app, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if cfg.Verbose && level == "info" {
		level = "debug"
	}
	log, err := logging.New(logging.Config{Level: level, Development: true})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log}, nil
}

// close flushes the logger.
func (a *app) close() {
	_ = a.log.Sync()
}

// openStore returns the configured profile store behind a TTL cache: PostgreSQL
// when a database URL is set, the JSON profile file otherwise. The returned
// func releases it.
func (a *app) openStore(ctx context.Context) (store.Store, func(), error) {
	var (
		backend store.Store
		release = func() {}
	)

	if a.cfg.DatabaseURL != "" {
		userID, err := uuid.Parse(a.cfg.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid user_id: %w", err)
		}
		pg, err := store.Connect(ctx, a.cfg.DatabaseURL, userID)
		if err != nil {
			return nil, nil, err
		}
		a.log.Debug("using database profile store", logging.String("user_id", userID.String()))
		backend = pg
		release = pg.Close
	} else {
		a.log.Debug("using file profile store", logging.String("path", a.cfg.ProfilePath))
		backend = store.NewFileStore(a.cfg.ProfilePath)
	}

	cached, err := store.NewCachedStore(backend, a.cfg.CacheTTL)
	if err != nil {
		release()
		return nil, nil, err
	}
	return cached, func() {
		cached.Close()
		release()
	}, nil
}

// profiles opens the store and wraps it in the profile service.
func (a *app) profiles(ctx context.Context) (*store.Profiles, func(), error) {
	s, release, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store.NewProfiles(s, store.WithLogger(a.log)), release, nil
}

// newLoader builds a page loader that honors the browser and readability settings.
func (a *app) newLoader() (*fetch.Loader, error) {
	fetcherCfg := fetch.DefaultCachedFetcherConfig()
	fetcherCfg.CacheTTL = a.cfg.CacheTTL
	fetcher, err := fetch.NewCachedFetcher(fetcherCfg)
	if err != nil {
		return nil, err
	}

	return fetch.NewLoader(fetch.LoaderConfig{
		UseBrowser:  a.cfg.UseBrowser,
		Readability: a.cfg.Readability,
		Fetcher:     fetcher,
		Logger:      a.log,
	})
}

// loadProfileFile reads a profile JSON file. Missing lists are normalized and
// unset settings take their defaults.
func loadProfileFile(path string) (*types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	profile := types.NewProfile()
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}
	profile.Normalize()
	return profile, nil
}

// readInput reads a file, or stdin when path is empty or "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// writeOutput writes data to a file, or to w when path is empty.
func writeOutput(path string, data []byte, w io.Writer) error {
	if path == "" {
		_, err := w.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
