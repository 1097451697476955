package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rft/internal/config"
	"rft/internal/errors"
	"rft/internal/recent"
	"rft/internal/state"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize rft in a vault",
	Long:  "Creates a .rft/ directory with default configuration and empty tracking state in the vault root",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .rft directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	vault, err := resolveVault()
	if err != nil {
		return errors.New(errors.InternalError, "failed to resolve vault root", err, nil)
	}
	vault, err = filepath.Abs(vault)
	if err != nil {
		return errors.New(errors.InternalError, "failed to resolve vault root", err, nil)
	}

	rftDir := filepath.Join(vault, config.Dir)
	if _, statErr := os.Stat(rftDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success
			fmt.Println("rft already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(rftDir, "config.json"))
			fmt.Println("\nRun 'rft init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(rftDir); removeErr != nil {
			return errors.New(errors.InternalError, "failed to remove existing .rft directory", removeErr, nil)
		}
	}

	if mkdirErr := os.MkdirAll(rftDir, 0755); mkdirErr != nil {
		return errors.New(errors.InternalError, "failed to create .rft directory", mkdirErr, nil)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(vault); err != nil {
		return errors.New(errors.InternalError, "failed to write config file", err, nil)
	}

	if err := state.Save(vault, recent.DefaultState()); err != nil {
		return errors.New(errors.InternalError, "failed to write state file", err, nil)
	}

	fmt.Println("rft initialized.")
	fmt.Printf("Configuration written to: %s\n", filepath.Join(rftDir, "config.json"))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'rft index --rescan' to build the file index")
	fmt.Println("  2. Run 'rft watch' to start tracking")

	return nil
}
