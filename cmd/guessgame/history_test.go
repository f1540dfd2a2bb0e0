package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/guessgame/internal/database"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	if cmd.Use != "history" {
		t.Errorf("expected use 'history', got %q", cmd.Use)
	}

	flags := map[string]string{
		"limit":    "n",
		"guesses":  "g",
		"json":     "j",
		"markdown": "m",
		"clear":    "",
		"id":       "",
	}
	for name, shorthand := range flags {
		t.Run("has "+name+" flag", func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Fatalf("expected %s flag", name)
			}
			if flag.Shorthand != shorthand {
				t.Errorf("expected shorthand %q, got %q", shorthand, flag.Shorthand)
			}
		})
	}
}

// TestHistory tests recording games and reading them back.
func TestHistory(t *testing.T) {
	t.Parallel()

	dbDir := filepath.Join(t.TempDir(), "history")

	// Two won games and one abandoned game.
	if _, _, err := execute(t, 42, "abc\n100\n1\n42\n", "--history", "--db-dir", dbDir); err != nil {
		t.Fatalf("first game failed: %v", err)
	}
	if _, _, err := execute(t, 7, "7\n", "--history", "--db-dir", dbDir); err != nil {
		t.Fatalf("second game failed: %v", err)
	}
	if _, _, err := execute(t, 9, "3\n"); err == nil {
		t.Fatal("expected unrecorded game to fail on EOF")
	}
	if _, _, err := execute(t, 9, "3\n", "--history", "--db-dir", dbDir); err == nil {
		t.Fatal("expected abandoned game to fail on EOF")
	}

	t.Run("text output", func(t *testing.T) {
		stdout, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--guesses")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Games won:        2", "100 ↓, 1 ↑, 42 ✓", "abandoned"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, stdout)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		stdout, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			Sessions []struct {
				Secret        uint64 `json:"secret"`
				InvalidInputs int    `json:"invalid_inputs"`
			} `json:"sessions"`
			Stats struct {
				Games         int `json:"games"`
				TotalAttempts int `json:"total_attempts"`
				BestAttempts  int `json:"best_attempts"`
			} `json:"stats"`
		}
		if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if len(decoded.Sessions) != 3 {
			t.Fatalf("expected 3 sessions, got %d", len(decoded.Sessions))
		}
		if decoded.Stats.Games != 2 || decoded.Stats.TotalAttempts != 4 || decoded.Stats.BestAttempts != 1 {
			t.Errorf("unexpected stats: %+v", decoded.Stats)
		}
		oldest := decoded.Sessions[len(decoded.Sessions)-1]
		if oldest.Secret != 42 || oldest.InvalidInputs != 1 {
			t.Errorf("unexpected oldest session: %+v", oldest)
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		stdout, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--markdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "# Guess the Number: Game History") {
			t.Errorf("expected markdown heading, got:\n%s", stdout)
		}
	})

	t.Run("limit", func(t *testing.T) {
		stdout, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--json", "-n", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded struct {
			Sessions []json.RawMessage `json:"sessions"`
		}
		if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded.Sessions) != 1 {
			t.Errorf("expected 1 session, got %d", len(decoded.Sessions))
		}
	})

	t.Run("single game by id", func(t *testing.T) {
		stdout, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--id", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "100 ↓, 1 ↑, 42 ✓") {
			t.Errorf("expected guesses of game 1, got:\n%s", stdout)
		}
		if strings.Contains(stdout, "#2 ") || strings.Contains(stdout, "abandoned") {
			t.Errorf("expected only game 1, got:\n%s", stdout)
		}
	})

	t.Run("single game by id as json", func(t *testing.T) {
		stdout, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--id", "2", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded struct {
			Sessions []struct {
				ID     int64  `json:"id"`
				Secret uint64 `json:"secret"`
			} `json:"sessions"`
		}
		if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded.Sessions) != 1 || decoded.Sessions[0].ID != 2 || decoded.Sessions[0].Secret != 7 {
			t.Errorf("unexpected sessions: %+v", decoded.Sessions)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--id", "999")
		if !errors.Is(err, database.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("clear with id", func(t *testing.T) {
		_, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--clear", "--id", "1")
		if !errors.Is(err, errClearWithID) {
			t.Errorf("expected errClearWithID, got %v", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		_, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--json", "--markdown")
		if !errors.Is(err, errConflictingFormats) {
			t.Errorf("expected errConflictingFormats, got %v", err)
		}
	})

	t.Run("clear", func(t *testing.T) {
		stdout, _, err := execute(t, 0, "", "history", "--db-dir", dbDir, "--clear")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Deleted 3 game(s)") {
			t.Errorf("unexpected output: %q", stdout)
		}

		stdout, _, err = execute(t, 0, "", "history", "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No games recorded yet") {
			t.Errorf("expected empty history, got:\n%s", stdout)
		}
	})
}

// TestHistoryWithoutDatabase tests the error when nothing was recorded yet.
func TestHistoryWithoutDatabase(t *testing.T) {
	t.Parallel()

	dbDir := filepath.Join(t.TempDir(), "empty")
	_, _, err := execute(t, 0, "", "history", "--db-dir", dbDir)
	if err == nil {
		t.Fatal("expected error when database does not exist")
	}
	if !strings.Contains(err.Error(), "database not found") {
		t.Errorf("expected 'database not found', got %q", err.Error())
	}
}
