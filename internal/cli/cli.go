package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/marcusfrdk/clix"
)

// Config holds the parsed process-level settings of the clix runner.
type Config struct {
	ManifestPath string
	Command      string
	CommandArgs  []string
	LogFormat    string
	LogLevel     string
	Visualize    bool
}

// Parse processes command-line arguments. It returns the populated
// Config, a boolean indicating the program should exit cleanly, or an
// error carrying the exit code.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("clix", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
clix - declarative command-line pipelines.

Usage:
  clix [options] COMMAND [command arguments]

Arguments:
  COMMAND
    Name of a command declared in the manifest.

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to a manifest file or a directory of .hcl manifests.")
	mFlag := flagSet.String("m", "", "Path to a manifest file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	visualizeFlag := flagSet.Bool("visualize", false, "Print the command tree instead of running the command.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &clix.ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *manifestFlag
	if path == "" {
		path = *mFlag
	}
	if path == "" {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &clix.ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &clix.ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config := &Config{
		ManifestPath: path,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		Visualize:    *visualizeFlag,
	}
	if flagSet.NArg() > 0 {
		config.Command = flagSet.Arg(0)
		config.CommandArgs = flagSet.Args()[1:]
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// NewLogger builds the process logger from the parsed format and
// level.
func NewLogger(w io.Writer, format, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
