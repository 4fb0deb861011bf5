package app

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/util/logging"
)

// RunFunc is the work of a command, run once per invocation.
type RunFunc func(context.Context, *funcctx.Context) error

type runParams struct {
	fx.In

	Context    context.Context
	Function   *funcctx.Context
	Run        RunFunc
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Log        *zap.Logger
}

// Module runs the RunFunc returned by constructor once the app has
// started, and shuts the app down afterwards. The exit code is 1 if
// the RunFunc fails.
func Module(name string, constructor any) fx.Option {
	return fx.Module(
		name,
		// rename logger for module
		logging.DecorateLogger(name),
		// provide the run func
		fx.Provide(constructor),
		// run it
		fx.Invoke(registerRun),
	)
}

func registerRun(params runParams) {
	done := make(chan struct{})

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)

				exitCode := 0
				if err := params.Run(params.Context, params.Function); err != nil {
					params.Log.Error("invocation failed", zap.Error(err))
					sentry.CaptureException(err)
					exitCode = 1
				}

				if err := params.Shutdowner.Shutdown(fx.ExitCode(exitCode)); err != nil {
					params.Log.Error("failed to shut down", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
