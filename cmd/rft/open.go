package main

import (
	"github.com/spf13/cobra"

	"rft/internal/errors"
	"rft/internal/index"
	"rft/internal/open"
)

var openCmd = &cobra.Command{
	Use:   "open <basename>",
	Short: "Open a file by basename",
	Long: `Resolves a basename against the file index (first match in path order)
and opens it with the configured editor, $EDITOR, or the platform opener.
A successful open is recorded in the recent list.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
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

	ref, ok, err := ix.LookupBasename(args[0])
	if err != nil {
		return errors.New(errors.IndexUnavailable, "index lookup failed", err,
			errors.GetSuggestedFixes(errors.IndexUnavailable))
	}
	if !ok {
		// Stale-click semantics: an unknown basename is a quiet no-op.
		env.logger.Info("basename does not resolve, nothing to open", map[string]interface{}{
			"basename": args[0],
		})
		return nil
	}

	opener := open.New(env.vault, env.cfg.Editor)
	if err := opener.Open(ref); err != nil {
		return err
	}

	if env.store.ShouldTrack(ref) {
		env.store.Touch(ref)
	}
	return nil
}
