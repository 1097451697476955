package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"rft/internal/bridge"
	"rft/internal/config"
	"rft/internal/errors"
	"rft/internal/ignore"
	"rft/internal/index"
	"rft/internal/logging"
	"rft/internal/open"
	"rft/internal/recent"
	"rft/internal/tui"
	"rft/internal/watch"
)

var (
	watchHeadless bool
	watchRescan   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track file activity live",
	Long: `Watches the vault for file activity and maintains the recent list as
files are created or written. By default an interactive list is shown;
enter opens the selected file, q quits. With --headless no UI is drawn and
the list is maintained until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchHeadless, "headless", false, "Track without the interactive list")
	watchCmd.Flags().BoolVar(&watchRescan, "rescan", true, "Rebuild the file index before watching")
	rootCmd.AddCommand(watchCmd)
}

// logRedrawer is the headless stand-in for the TUI: each accepted
// activation becomes one log line.
type logRedrawer struct {
	logger *logging.Logger
}

func (r *logRedrawer) Redraw(files []recent.FileRef, active recent.FileRef) {
	r.logger.Info("recent list updated", map[string]interface{}{
		"active":  active.Path,
		"entries": len(files),
	})
}

func runWatch(cmd *cobra.Command, args []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}
	if err := requireInitialized(env.vault); err != nil {
		return err
	}

	lock, err := index.AcquireLock(filepath.Join(env.vault, config.Dir))
	if err != nil {
		return errors.New(errors.IndexUnavailable, "could not lock the file index", err, nil)
	}
	defer lock.Release()

	ix, err := index.Open(env.vault, env.cfg.Index.Filename, env.logger)
	if err != nil {
		return errors.New(errors.IndexUnavailable, "could not open file index", err,
			errors.GetSuggestedFixes(errors.IndexUnavailable))
	}
	defer ix.Close()

	if watchRescan {
		matcher := ignore.NewMatcher(env.cfg.Watcher.IgnorePatterns)
		if _, err := ix.Rescan(env.vault, matcher); err != nil {
			return errors.New(errors.IndexUnavailable, "index rebuild failed", err,
				errors.GetSuggestedFixes(errors.IndexUnavailable))
		}
	}

	w, err := watch.New(env.vault, env.cfg.Watcher, ix, env.logger)
	if err != nil {
		return errors.New(errors.WatchUnavailable, "could not start the filesystem watcher", err, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchHeadless {
		fmt.Fprintln(os.Stderr, "watching", env.vault, "(ctrl+c to stop)")
		b := bridge.New(env.store, w, &logRedrawer{logger: env.logger}, env.logger)
		go w.Run(ctx)
		b.Run(ctx)
		return nil
	}

	opener := open.New(env.vault, env.cfg.Editor)
	title := "rft " + filepath.Base(env.vault)
	ui := tui.New(title, env.store.Files(), recent.FileRef{}, ix.Lookup, opener.Launch)

	b := bridge.New(env.store, w, ui, env.logger)
	go w.Run(ctx)
	go b.Run(ctx)

	uiErr := ui.Run()
	stop()
	return uiErr
}
