package cmd

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/azshim/app"
	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/handler"
)

var echoCommand = &cli.Command{
	Name:   "echo",
	Usage:  "respond with a dump of the invocation. Useful to debug bindings.",
	Action: echoAction,
}

func echoAction(ctx *cli.Context) error {
	sh, err := app.New(ctx)
	if err != nil {
		return err
	}

	return sh.Run(ctx.Context, app.Module("echo", newEchoRun))
}

func newEchoRun() app.RunFunc {
	return func(ctx context.Context, fc *funcctx.Context) error {
		return handler.Respond(ctx, fc, handler.Echo)
	}
}
