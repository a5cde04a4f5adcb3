package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/eb/internal/cli/ui"
	"github.com/aki/eb/internal/core/logger"
)

// RegisterLoggerFlags registers global logging flags
func RegisterLoggerFlags(cmd *cobra.Command, o *rootOptions) {
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&o.logFormat, "log-format", "text", "Log format (text, json)")
}

// CreateLogger creates a stderr logger from the level and format names
func CreateLogger(levelName, formatName string) (logger.Logger, error) {
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return nil, &InvalidOptionError{Flag: "log-level", Value: levelName, Err: err}
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return nil, &InvalidOptionError{Flag: "log-format", Value: formatName, Err: err}
	}

	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(ui.Stderr),
	), nil
}
