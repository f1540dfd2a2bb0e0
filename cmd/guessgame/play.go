package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/guessgame/internal/config"
	"github.com/nao1215/guessgame/internal/database"
	"github.com/nao1215/guessgame/internal/game"
	"github.com/nao1215/guessgame/internal/log"
	"github.com/nao1215/guessgame/internal/model"
	"github.com/spf13/cobra"
)

// Log formats accepted by --log-format.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// errUnknownLogFormat is returned for a --log-format other than text or json.
var errUnknownLogFormat = errors.New("unknown log format")

// runPlayCmd plays one game on the command's input and output streams.
func runPlayCmd(cmd *cobra.Command, source game.SecretSource) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		"config_file", cfg.ConfigFilePath,
		"min", cfg.Min,
		"max", cfg.Max,
		"history", cfg.History,
	)

	loop := game.New(source, cmd.InOrStdin(), cmd.OutOrStdout(),
		game.WithRange(cfg.Min, cfg.Max),
		game.WithLogger(logger),
	)

	session, playErr := loop.Run(cmd.Context())

	// Abandoned games are recorded too, as long as the player tried at least once.
	if cfg.History && session != nil && session.Attempts() > 0 {
		recordSession(cmd, cfg, session, logger)
	}

	return playErr
}

// newLogger builds the stderr logger selected by --verbose and --log-format.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	verbose := getVerboseFlag(cmd)
	switch format := getPersistentString(cmd, "log-format"); format {
	case "", logFormatText:
		return log.NewLogger(cmd.ErrOrStderr(), verbose), nil
	case logFormatJSON:
		return log.NewJSONLogger(cmd.ErrOrStderr(), verbose), nil
	default:
		return nil, fmt.Errorf("%w: %q (use %s or %s)", errUnknownLogFormat, format, logFormatText, logFormatJSON)
	}
}

// recordSession stores a session in the history database.
// Failures are logged and do not change the exit status of the game.
func recordSession(cmd *cobra.Command, cfg *config.Config, session *model.Session, logger *slog.Logger) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	if err := db.SaveSession(cmd.Context(), session); err != nil {
		logger.Warn("failed to record game", "error", err)
		return
	}
	logger.Debug("game recorded", "id", session.ID, "path", db.Path())
}

// loadConfig builds the configuration from defaults, the config file and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	configPath := getPersistentString(cmd, "config")
	path := config.FindConfigFile(configPath)
	if configPath != "" && path == "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}
	if path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg.ApplyFile(file)
		cfg.ConfigFilePath = path
	}

	if dir := getPersistentString(cmd, "db-dir"); dir != "" {
		cfg.DBDir = dir
	}

	// Flags defined only on the root command; absent on subcommands.
	if f := cmd.Flags().Lookup("min"); f != nil && f.Changed {
		v, err := cmd.Flags().GetUint64("min")
		if err != nil {
			return nil, err
		}
		cfg.Min = v
	}
	if f := cmd.Flags().Lookup("max"); f != nil && f.Changed {
		v, err := cmd.Flags().GetUint64("max")
		if err != nil {
			return nil, err
		}
		cfg.Max = v
	}
	if f := cmd.Flags().Lookup("history"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("history")
		if err != nil {
			return nil, err
		}
		cfg.History = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getPersistentString retrieves a persistent string flag from the command or the root.
func getPersistentString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}
