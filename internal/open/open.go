// Package open is the navigation capability: it hands a resolved file to
// the user's editor or the platform opener.
package open

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"rft/internal/config"
	"rft/internal/errors"
	"rft/internal/recent"
)

// Opener builds and runs the command that opens a vault file.
type Opener struct {
	vaultRoot string
	cfg       config.EditorConfig
}

// New creates an opener for the vault.
func New(vaultRoot string, cfg config.EditorConfig) *Opener {
	return &Opener{vaultRoot: vaultRoot, cfg: cfg}
}

// Command builds the editor command for f without running it. Resolution
// order: editor.command from config, then $EDITOR, then the platform
// opener. A {path} placeholder in the configured args is substituted; with
// no placeholder the file path is appended.
func (o *Opener) Command(f recent.FileRef) (*exec.Cmd, error) {
	full := filepath.Join(o.vaultRoot, filepath.FromSlash(f.Path))

	name := o.cfg.Command
	args := o.cfg.Args

	if name == "" {
		name = os.Getenv("EDITOR")
		args = nil
	}
	if name == "" {
		name = platformOpener()
		args = nil
	}
	if name == "" {
		return nil, errors.New(errors.OpenFailed, "no editor configured", nil,
			errors.GetSuggestedFixes(errors.OpenFailed))
	}

	substituted := false
	finalArgs := make([]string, 0, len(args)+1)
	for _, a := range args {
		if strings.Contains(a, "{path}") {
			a = strings.ReplaceAll(a, "{path}", full)
			substituted = true
		}
		finalArgs = append(finalArgs, a)
	}
	if !substituted {
		finalArgs = append(finalArgs, full)
	}

	cmd := exec.Command(name, finalArgs...)
	cmd.Dir = o.vaultRoot
	return cmd, nil
}

// Open runs the editor command attached to the terminal and waits for it.
func (o *Opener) Open(f recent.FileRef) error {
	cmd, err := o.Command(f)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.New(errors.OpenFailed, "editor command failed", err,
			errors.GetSuggestedFixes(errors.OpenFailed))
	}
	return nil
}

// Launch starts the command detached from the terminal, for callers that
// own the screen (the TUI). The process is reaped in the background.
func (o *Opener) Launch(f recent.FileRef) error {
	cmd, err := o.Command(f)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return errors.New(errors.OpenFailed, "could not start opener", err,
			errors.GetSuggestedFixes(errors.OpenFailed))
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func platformOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "" // no sensible terminal opener; require EDITOR or config
	default:
		return "xdg-open"
	}
}
