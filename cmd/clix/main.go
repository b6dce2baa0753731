package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/marcusfrdk/clix"
	"github.com/marcusfrdk/clix/children/transform"
	"github.com/marcusfrdk/clix/children/validate"
	"github.com/marcusfrdk/clix/internal/cli"
	"github.com/marcusfrdk/clix/internal/ctxlog"
	"github.com/marcusfrdk/clix/internal/humanize"
	"github.com/marcusfrdk/clix/manifest"
	"github.com/marcusfrdk/clix/registry"
)

// main is the entrypoint for the clix manifest runner.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clix.ExitCode(err))
	}
}

// run encapsulates the main application logic for easier testing and
// error handling.
func run(outW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(os.Stderr, config.LogFormat, config.LogLevel)
	slog.SetDefault(logger)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	reg := registry.New()
	reg.Install(transform.Module{}, validate.Module{})

	commands, err := loadCommands(ctx, config.ManifestPath, reg)
	if err != nil {
		return err
	}
	if len(commands) == 0 {
		return &clix.ExitError{Code: 2, Message: fmt.Sprintf("no commands declared in %s", config.ManifestPath)}
	}

	command, err := selectCommand(commands, config.Command)
	if err != nil {
		return err
	}

	if config.Visualize {
		return command.Visualize(outW)
	}

	command.Cobra().SetOut(outW)
	command.Cobra().SetArgs(config.CommandArgs)
	return command.ExecuteContext(ctx)
}

func loadCommands(ctx context.Context, path string, reg *registry.Registry) ([]*clix.Command, error) {
	loader := manifest.NewLoader(reg)
	info, err := os.Stat(path)
	if err != nil {
		return nil, &clix.ExitError{Code: 2, Message: fmt.Sprintf("cannot read manifest path %s: %v", path, err)}
	}
	if info.IsDir() {
		return loader.LoadDir(ctx, path)
	}
	return loader.LoadFile(ctx, path)
}

func selectCommand(commands []*clix.Command, name string) (*clix.Command, error) {
	if name == "" {
		if len(commands) == 1 {
			return commands[0], nil
		}
		return nil, &clix.ExitError{Code: 2, Message: fmt.Sprintf(
			"multiple commands declared, pick one of %s", humanize.Or(commandNames(commands)))}
	}
	for _, command := range commands {
		if command.Root().Name() == name {
			return command, nil
		}
	}
	return nil, &clix.ExitError{Code: 2, Message: fmt.Sprintf(
		"unknown command %q (known: %s)", name, humanize.List(commandNames(commands)))}
}

func commandNames(commands []*clix.Command) []string {
	names := make([]string, len(commands))
	for i, command := range commands {
		names[i] = command.Root().Name()
	}
	return names
}
