package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("invalid usage")

func main() {
	ctx, stop := notifyContext(context.Background())
	err := run(ctx, os.Args, DefaultEnv())
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// run dispatches to a command. Arguments that name no command are
// handed to convert, so "textdown notes.textile" works.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: missing command or input", ErrUsage)
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "textdown %s\n", Version)
		return nil
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "convert":
		return runConvertCmd(ctx, rest, env)
	case "serve":
		return runServeCmd(ctx, rest, env)
	default:
		return runConvertCmd(ctx, args[1:], env)
	}
}

// runConvertCmd parses convert flags, sets up logging and GOMAXPROCS,
// then runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS
	// variable, and the runtime default then applies.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
	defer undo()

	return runConvert(ctx, positional, flags, env, logger)
}
