package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/azshim/app"
	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/handler"
)

var inspectCommand = &cli.Command{
	Name:   "inspect",
	Usage:  "print the invocation as seen by a handler, without writing a response.",
	Action: inspectAction,
}

func inspectAction(ctx *cli.Context) error {
	sh, err := app.New(ctx)
	if err != nil {
		return err
	}

	return sh.Run(ctx.Context, app.Module("inspect", newInspectRun))
}

func newInspectRun() app.RunFunc {
	return func(_ context.Context, fc *funcctx.Context) error {
		return writeInvocation(os.Stdout, fc)
	}
}

func writeInvocation(w io.Writer, fc *funcctx.Context) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(handler.NewInvocation(fc))
}
