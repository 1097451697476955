package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"rft/internal/config"
	"rft/internal/errors"
	"rft/internal/ignore"
	"rft/internal/index"
)

var (
	indexRescan bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect or rebuild the file index",
	Long: `The file index maps basenames to vault paths and backs 'rft open' and the
interactive list. It is kept current while 'rft watch' runs; --rescan
rebuilds it from scratch by walking the vault.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRescan, "rescan", false, "Rebuild the index by walking the vault")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}
	if err := requireInitialized(env.vault); err != nil {
		return err
	}

	ix, err := index.Open(env.vault, env.cfg.Index.Filename, env.logger)
	if err != nil {
		return errors.New(errors.IndexUnavailable, "could not open file index", err,
			errors.GetSuggestedFixes(errors.IndexUnavailable))
	}
	defer ix.Close()

	if indexRescan {
		lock, err := index.AcquireLock(filepath.Join(env.vault, config.Dir))
		if err != nil {
			return errors.New(errors.IndexUnavailable, "could not lock the file index", err, nil)
		}
		defer lock.Release()

		matcher := ignore.NewMatcher(env.cfg.Watcher.IgnorePatterns)
		n, err := ix.Rescan(env.vault, matcher)
		if err != nil {
			return errors.New(errors.IndexUnavailable, "index rebuild failed", err,
				errors.GetSuggestedFixes(errors.IndexUnavailable))
		}
		fmt.Printf("indexed %d files\n", n)
		return nil
	}

	n, err := ix.Count()
	if err != nil {
		return errors.New(errors.IndexUnavailable, "could not read index", err,
			errors.GetSuggestedFixes(errors.IndexUnavailable))
	}
	fmt.Printf("%d files indexed\n", n)
	return nil
}
