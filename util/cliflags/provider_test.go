package cliflags_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/azshim/util/cliflags"
)

func TestProvider(t *testing.T) {
	var got map[string]any

	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "manifest", Value: "function.json"},
			&cli.StringFlag{Name: "env-file"},
		},
		Commands: []*cli.Command{
			{
				Name: "exec",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "command"},
					&cli.StringSliceFlag{Name: "arg"},
					&cli.DurationFlag{Name: "timeout"},
				},
				Action: func(ctx *cli.Context) error {
					var err error
					got, err = cliflags.Provider(ctx, ".", func(s string) string {
						if s == "command" {
							return "worker.cmd"
						}
						return s
					}).Read()
					return err
				},
			},
		},
	}

	err := app.RunContext(context.Background(), []string{
		"azshim", "--manifest", "fn/function.json",
		"exec", "--command", "python", "--arg", "run.py", "--timeout", "5s",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"manifest": "fn/function.json",
		"worker":   map[string]any{"cmd": "python"},
		"arg":      []string{"run.py"},
		"timeout":  5 * time.Second,
	}, got)
}
