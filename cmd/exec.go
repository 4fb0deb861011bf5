package cmd

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/azshim/app"
	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/handler"
)

var execCommand = &cli.Command{
	Name:  "exec",
	Usage: "run a handler process for the invocation and write its response.",
	Description: `The handler process receives the invocation as JSON on stdin. A JSON
object written to stdout is used as the raw response, any other output
as the response body. Lines written to stderr are logged.

With --interface file, the invocation is written to a request file, and
the response is read from a response file. Their paths are appended to
the arguments, and set as REQUEST_FILE_NAME and RESPONSE_FILE_NAME.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "command",
			Usage:    "the command to invoke in order to start the handler process.",
			Aliases:  []string{"c"},
			Category: "handler",
			EnvVars:  []string{"FUNCTION_COMMAND"},
		},
		&cli.StringSliceFlag{
			Name:     "arg",
			Usage:    "additional arguments to pass to the handler process.",
			Aliases:  []string{"a"},
			Category: "handler",
			EnvVars:  []string{"FUNCTION_ARGS"},
		},
		&cli.StringFlag{
			Name:     "cwd",
			Usage:    "the working directory of the handler process.",
			Category: "handler",
			EnvVars:  []string{"FUNCTION_CWD"},
		},
		&cli.StringFlag{
			Name:     "interface",
			Usage:    "how the invocation is exchanged with the handler process. Options: stdio, file.",
			Aliases:  []string{"i"},
			Category: "handler",
			EnvVars:  []string{"FUNCTION_INTERFACE"},
		},
		&cli.DurationFlag{
			Name:     "timeout",
			Usage:    "kill the handler process after the given duration.",
			Category: "handler",
			EnvVars:  []string{"FUNCTION_TIMEOUT"},
		},
	},
	Action: execAction,
}

func execAction(ctx *cli.Context) error {
	sh, err := app.New(ctx)
	if err != nil {
		return err
	}

	return sh.Run(ctx.Context, app.Module("exec", newExecRun))
}

func newExecRun(process *handler.Process) app.RunFunc {
	return func(ctx context.Context, fc *funcctx.Context) error {
		return handler.Respond(ctx, fc, process.Handle)
	}
}
