package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/guessgame/internal/database"
	"github.com/nao1215/guessgame/internal/model"
	"github.com/nao1215/guessgame/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// defaultHistoryLimit is the number of games listed when --limit is not given.
const defaultHistoryLimit = 20

// errConflictingFormats is returned when both --json and --markdown are given.
var errConflictingFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

// errClearWithID is returned when --clear is combined with --id.
var errClearWithID = errors.New("--clear deletes every game and cannot be combined with --id")

// NewHistoryCmd creates the history command.
// This command shows games recorded with 'guessgame --history'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded games and statistics",
		Long: `History lists games recorded in the history database together with
statistics over all won games (games won, average, best and worst number of guesses).

Games are only recorded when you play with --history or enable history in
the configuration file.

Examples:
  # Show the last 20 games
  guessgame history

  # Show every game with its guesses
  guessgame history --limit 0 --guesses

  # Show one recorded game by ID
  guessgame history --id 5

  # Output history in JSON format
  guessgame history --json

  # Output history as Markdown with a pie chart of guess outcomes
  guessgame history --markdown

  # Delete all recorded games
  guessgame history --clear`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of games to list (0 lists all)")
	cmd.Flags().BoolP("guesses", "g", false,
		"List the guesses of each game (text output only)")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output history in Markdown format")
	cmd.Flags().Int64("id", 0,
		"Show only the game with this ID, including its guesses")
	cmd.Flags().Bool("clear", false,
		"Delete all recorded games")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	showGuesses, err := cmd.Flags().GetBool("guesses")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	clearHistory, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	// Validate flags before opening the database
	if jsonOutput && markdownOutput {
		return errConflictingFormats
	}
	if clearHistory && id != 0 {
		return errClearWithID
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if clearHistory {
		n, err := db.DeleteAll(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d game(s) from %s\n", n, db.Path())
		return nil
	}

	history, err := loadHistory(cmd.Context(), db, limit, id)
	if err != nil {
		return err
	}

	var w report.Writer
	switch {
	case jsonOutput:
		w = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	case markdownOutput:
		w = report.NewMarkdownWriter(cmd.OutOrStdout())
	default:
		w = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithGuesses(showGuesses || id != 0))
	}

	if _, err := w.Write(history); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// loadHistory reads the sessions and the statistics concurrently.
// A non-zero id selects that single session instead of the latest ones.
func loadHistory(ctx context.Context, db *database.HistoryDB, limit int, id int64) (*model.History, error) {
	var (
		sessions []*model.Session
		stats    model.Stats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if id != 0 {
			session, err := db.GetSession(ctx, id)
			if err != nil {
				return err
			}
			sessions = []*model.Session{session}
			return nil
		}
		var err error
		sessions, err = db.ListSessions(ctx, limit)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = db.Stats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return model.NewHistory(sessions, stats), nil
}
