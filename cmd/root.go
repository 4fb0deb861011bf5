package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/azshim/internal/shell"
	"github.com/lambda-feedback/azshim/util/logging"
)

var (
	appName  = "azshim"
	appUsage = `A shim for running HTTP-triggered functions as custom handlers,
one process per invocation.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			// general flags
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "set the log format. Options: production, development.",
				EnvVars: []string{"LOG_FORMAT"},
			},
			// function flags
			&cli.StringFlag{
				Name:     "manifest",
				Usage:    "the path to the binding manifest of the function.",
				Aliases:  []string{"m"},
				Category: "function",
				EnvVars:  []string{"FUNCTION_MANIFEST"},
			},
			&cli.StringFlag{
				Name:     "env-file",
				Usage:    "a dotenv file applied on top of the process environment.",
				Category: "function",
				EnvVars:  []string{"FUNCTION_ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			execCommand,
			echoCommand,
			inspectCommand,
		},
		Before: func(ctx *cli.Context) error {
			// create the logger
			log, err := createLogger(ctx)
			if err != nil {
				return err
			}

			// inject logger into cli context
			ctx.Context = logging.ContextWithLogger(ctx.Context, log)

			return nil
		},
		After: func(ctx *cli.Context) error {
			log, err := logging.LoggerFromContext(ctx.Context)
			if err != nil {
				return err
			}

			log.Sync()

			return nil
		},
	}
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the cli and returns the exit code of the process.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return 0
	}

	if reportable(err) {
		sentry.CaptureException(err)
	}

	fmt.Fprintf(os.Stderr, "exit error: %s\n", err.Error())

	// exit with the code of an ExitError, 1 otherwise
	return shell.ExitCode(err)
}

// reportable reports whether err should be sent to sentry. A bare exit
// code carries no cause, which the failing module has already reported.
func reportable(err error) bool {
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Err != nil
	}

	return err != nil
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = level

	// stdout carries the response of the function
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
