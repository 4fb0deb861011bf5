package app

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/azshim/config"
	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/handler"
	"github.com/lambda-feedback/azshim/internal/shell"
	"github.com/lambda-feedback/azshim/internal/worker"
	"github.com/lambda-feedback/azshim/request"
	"github.com/lambda-feedback/azshim/util/conf"
	"github.com/lambda-feedback/azshim/util/logging"
)

// cliMap maps the flags of the exec command to config keys.
var cliMap = map[string]string{
	"command":   "worker.cmd",
	"arg":       "worker.args",
	"cwd":       "worker.cwd",
	"timeout":   "worker.timeout",
	"interface": "worker.interface",
}

// New creates the shell for a single invocation, configured from the
// env and the flags of ctx.
func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli:       ctx,
		CliMap:    cliMap,
		Defaults:  config.DefaultConfig,
		EnvPrefix: "AZSHIM_",
		Log:       log,
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", zap.Error(err))
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(cfg),
		// provide handler process config
		fx.Supply(cfg.Worker),
		// provide the environment of the invocation
		fx.Provide(NewEnviron),
		// provide the function context
		fx.Provide(NewFunctionContext),
		// provide the process worker
		fx.Provide(fx.Annotate(worker.NewProcessWorker, fx.As(new(worker.Worker)))),
		// provide the process handler
		fx.Provide(handler.NewProcess),
	)

	return shell.New(log, sharedModule), nil
}

// NewEnviron snapshots the process environment, with the env file of
// the config applied on top.
func NewEnviron(cfg config.Config, log *zap.Logger) (request.Environ, error) {
	env := request.FromOS()

	if cfg.EnvFile == "" {
		return env, nil
	}

	file, err := request.LoadEnvFile(cfg.EnvFile)
	if err != nil {
		log.Error("failed to load env file", zap.String("file", cfg.EnvFile), zap.Error(err))
		return nil, err
	}

	log.Debug("loaded env file", zap.String("file", cfg.EnvFile), zap.Int("vars", len(file)))

	return env.Merge(file), nil
}

type FunctionContextParams struct {
	fx.In

	Config config.Config
	Env    request.Environ
	Log    *zap.Logger
}

// NewFunctionContext creates the function context of the invocation.
func NewFunctionContext(params FunctionContextParams) (*funcctx.Context, error) {
	return funcctx.New(funcctx.Options{
		ManifestPath: params.Config.Manifest,
		Env:          params.Env,
		Stdout:       os.Stdout,
		Log:          params.Log.Named("function"),
	})
}
