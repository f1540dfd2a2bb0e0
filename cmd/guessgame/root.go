// Package main provides the entry point for the guessgame CLI.
package main

import (
	"fmt"
	"os"

	"github.com/nao1215/guessgame/internal/config"
	"github.com/nao1215/guessgame/internal/game"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for guessgame.
// Running it without a subcommand plays one game.
func NewRootCmd() *cobra.Command {
	return newRootCmd(game.NewRandomSource())
}

// newRootCmd creates the root command with the given secret source.
func newRootCmd(source game.SecretSource) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guessgame",
		Short: "Guess the secret number",
		Long: `guessgame picks a secret number and asks you to guess it.

Every guess is answered with "Too small!", "Too big!" or "You win!".
Input that is not a whole number is ignored and you are asked again.
The game ends when you find the number.

By default the secret is between 1 and 100 and nothing is written to disk.
Use --history to record finished games and 'guessgame history' to review them.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlayCmd(cmd, source)
		},
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", logFormatText,
		"Format of log output on stderr: text or json")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to configuration file (default: .guessgame in current or home directory)")
	cmd.PersistentFlags().String("db-dir", "",
		"Directory of the history database (default: "+config.XDGDataDir()+")")

	// Game flags
	cmd.Flags().Uint64("min", config.DefaultMin, "Inclusive lower bound of the secret")
	cmd.Flags().Uint64("max", config.DefaultMax, "Exclusive upper bound of the secret")
	cmd.Flags().Bool("history", false, "Record the game in the history database")

	// Add subcommands
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
