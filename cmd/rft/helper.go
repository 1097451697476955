package main

import (
	"os"
	"path/filepath"

	"rft/internal/config"
	"rft/internal/errors"
	"rft/internal/logging"
	"rft/internal/recent"
	"rft/internal/state"
)

// cmdEnv bundles what most subcommands need: the resolved vault root, its
// configuration, a logger built from it, and the loaded store.
type cmdEnv struct {
	vault  string
	cfg    *config.Config
	logger *logging.Logger
	store  *recent.Store
}

// setupEnv resolves the vault, loads config and state, and wires the store
// to its file saver. Works without `rft init`; commands that need the .rft
// directory call requireInitialized first.
func setupEnv() (*cmdEnv, error) {
	vault, err := resolveVault()
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to resolve vault root", err, nil)
	}

	vault, err = filepath.Abs(vault)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to resolve vault root", err, nil)
	}

	info, err := os.Stat(vault)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.VaultNotFound, "vault root is not a directory", err, nil).
			WithDetails(map[string]string{"vault": vault})
	}

	cfg, err := config.LoadConfig(vault)
	if err != nil {
		return nil, errors.New(errors.InternalError, "failed to load configuration", err, nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.InternalError, "invalid configuration", err, nil)
	}

	logger := logging.FromStrings(cfg.Logging.Format, cfg.Logging.Level)

	st := state.Load(vault, logger)
	store := recent.NewStore(st, state.FileSaver{VaultRoot: vault}, logger)

	return &cmdEnv{
		vault:  vault,
		cfg:    cfg,
		logger: logger,
		store:  store,
	}, nil
}

// requireInitialized errors unless the .rft directory exists.
func requireInitialized(vault string) error {
	dir := filepath.Join(vault, config.Dir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.New(errors.NotInitialized, "vault is not initialized", err,
			errors.GetSuggestedFixes(errors.NotInitialized)).
			WithDetails(map[string]string{"vault": vault})
	}
	return nil
}
