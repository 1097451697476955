package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rft/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change tracking settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [max-length]",
	Short: "Print the current tracking settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetMaxLengthCmd = &cobra.Command{
	Use:   "set max-length <n>",
	Short: "Set the recent list cap",
	Long: `Sets the maximum number of entries the recent list keeps (n >= 0). The
list is re-trimmed immediately; zero keeps the list permanently empty while
still accepting configuration changes.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetMaxLengthCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	env, err := setupEnv()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if args[0] != "max-length" {
			return fmt.Errorf("unknown setting %q (only max-length is readable here)", args[0])
		}
		fmt.Println(env.store.MaxLength())
		return nil
	}

	fmt.Printf("max-length:       %d\n", env.store.MaxLength())
	fmt.Printf("omitted prefixes: %d\n", len(env.store.OmittedPaths()))
	fmt.Printf("tracked files:    %d\n", len(env.store.Files()))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if args[0] != "max-length" {
		return fmt.Errorf("unknown setting %q (only max-length is settable)", args[0])
	}

	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 {
		return errors.New(errors.InternalError, "max-length must be a non-negative integer", err, nil)
	}

	env, err := setupEnv()
	if err != nil {
		return err
	}

	env.store.SetMaxLength(n)
	fmt.Printf("max-length set to %d (%d entries kept)\n", n, len(env.store.Files()))
	return nil
}
