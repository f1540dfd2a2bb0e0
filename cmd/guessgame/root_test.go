package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/guessgame/internal/config"
	"github.com/nao1215/guessgame/internal/game"
)

// writeConfig writes a config file into a temporary directory and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// execute runs the root command with a fixed secret and returns stdout and stderr.
// A config file is always passed explicitly so the developer's own dotfile is never read.
func execute(t *testing.T, secret uint64, input string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(game.FixedSource(secret))
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	hasConfig := false
	for _, a := range args {
		if a == "-c" || a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "-c", writeConfig(t, "range: {}\n"))
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "guessgame" {
			t.Errorf("expected use 'guessgame', got %q", cmd.Use)
		}
	})

	t.Run("has descriptions and version", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" || cmd.Long == "" {
			t.Error("expected non-empty descriptions")
		}
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has log format flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("log-format")
		if flag == nil {
			t.Fatal("expected log-format flag")
		}
		if flag.DefValue != "text" {
			t.Errorf("expected default 'text', got %q", flag.DefValue)
		}
	})

	t.Run("has game flags with classic defaults", func(t *testing.T) {
		t.Parallel()
		for name, want := range map[string]string{"min": "1", "max": "101", "history": "false"} {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Fatalf("expected %s flag", name)
			}
			if flag.DefValue != want {
				t.Errorf("expected %s default %q, got %q", name, want, flag.DefValue)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{"history": false, "init": false, "version": false}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// TestPlay tests playing a game through the root command.
func TestPlay(t *testing.T) {
	t.Parallel()

	t.Run("end-to-end game", func(t *testing.T) {
		t.Parallel()

		stdout, stderr, err := execute(t, 42, "abc\n100\n1\n42\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := strings.Join([]string{
			"Guess the number!",
			"Please input your guess.",
			"Please input your guess.",
			"You guessed: 100",
			"Too big!",
			"Please input your guess.",
			"You guessed: 1",
			"Too small!",
			"Please input your guess.",
			"You guessed: 42",
			"You win!",
		}, "\n") + "\n"
		if stdout != want {
			t.Errorf("unexpected output:\n%s\nwant:\n%s", stdout, want)
		}
		if stderr != "" {
			t.Errorf("expected no log output without --verbose, got %q", stderr)
		}
	})

	t.Run("closed input is an error", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, 42, "50\n")
		if !errors.Is(err, game.ErrReadInput) {
			t.Fatalf("expected ErrReadInput, got %v", err)
		}
		if !strings.Contains(err.Error(), "failed to read line") {
			t.Errorf("expected diagnostic message, got %q", err.Error())
		}
		if !strings.Contains(stdout, "Too big!") {
			t.Errorf("expected guess before EOF to be answered, got:\n%s", stdout)
		}
	})

	t.Run("verbose logs hide the secret", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := execute(t, 4321, "4321\n", "--verbose", "--max", "10000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "game started") {
			t.Errorf("expected debug log, got %q", stderr)
		}
		if strings.Contains(stderr, "secret=4321") {
			t.Errorf("expected secret to be hidden, got %q", stderr)
		}
	})

	t.Run("json logs hide the secret", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := execute(t, 77, "77\n", "--verbose", "--log-format", "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, `"msg":"game started"`) {
			t.Errorf("expected JSON debug log, got %q", stderr)
		}
		if !strings.Contains(stderr, `"secret":"***HIDDEN***"`) {
			t.Errorf("expected masked secret, got %q", stderr)
		}
	})

	t.Run("unknown log format", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, 1, "1\n", "--log-format", "xml")
		if !errors.Is(err, errUnknownLogFormat) {
			t.Errorf("expected errUnknownLogFormat, got %v", err)
		}
	})

	t.Run("invalid range from flags", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, 1, "1\n", "--min", "10", "--max", "10")
		if !errors.Is(err, config.ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("invalid range from config file", func(t *testing.T) {
		t.Parallel()

		cfg := writeConfig(t, "range:\n  min: 50\n  max: 20\n")
		_, _, err := execute(t, 1, "1\n", "-c", cfg)
		if !errors.Is(err, config.ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()

		cfg := writeConfig(t, "range:\n  min: 50\n  max: 20\n")
		_, _, err := execute(t, 5, "5\n", "-c", cfg, "--min", "1", "--max", "101")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, 1, "1\n", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, 1, "1\n", "42")
		if err == nil {
			t.Error("expected error for positional argument")
		}
	})
}

// TestPlayWithoutHistoryWritesNothing tests that the default game leaves no database behind.
func TestPlayWithoutHistoryWritesNothing(t *testing.T) {
	t.Parallel()

	dbDir := filepath.Join(t.TempDir(), "db")
	if _, _, err := execute(t, 3, "3\n", "--db-dir", dbDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dbDir); !os.IsNotExist(err) {
		t.Error("expected no database directory without --history")
	}
}

// TestPlayHistoryFailureKeepsWin tests that a broken history directory does not fail a won game.
func TestPlayHistoryFailureKeepsWin(t *testing.T) {
	t.Parallel()

	// A regular file where the database directory should be.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	stdout, stderr, err := execute(t, 8, "8\n", "--history", "--db-dir", blocker)
	if err != nil {
		t.Fatalf("expected win to succeed, got %v", err)
	}
	if !strings.HasSuffix(stdout, "You win!\n") {
		t.Errorf("expected win, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "failed to open history database") {
		t.Errorf("expected warning on stderr, got %q", stderr)
	}
}

// TestExecuteHelp tests that help output is available.
func TestExecuteHelp(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "history") {
		t.Errorf("expected help to list the history command, got:\n%s", buf.String())
	}
}
