package depinstall

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var Provider = wire.NewSet(NewExecRunner, New)

// Runner executes a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type ExecRunner struct{}

func NewExecRunner() Runner {
	return ExecRunner{}
}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

type Config struct {
	Enabled   bool
	Container string
	Timeout   time.Duration
}

// Installer installs missing python modules inside the render container.
type Installer struct {
	cfg    Config
	runner Runner
	logger *zap.Logger
}

func New(cfg Config, runner Runner, logger *zap.Logger) *Installer {
	return &Installer{cfg: cfg, runner: runner, logger: logger.Named("installer")}
}

// Install reports whether errText named a missing module that was then
// installed successfully. Failures are logged, never returned.
func (i *Installer) Install(ctx context.Context, errText string) bool {
	if !i.cfg.Enabled {
		return false
	}
	module, ok := MissingModule(errText)
	if !ok {
		return false
	}
	if !Installable(module) {
		i.logger.Warn("refusing to install suspicious module name", zap.String("module", module))
		return false
	}

	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	i.logger.Info("attempting to install missing module",
		zap.String("module", module),
		zap.String("container", i.cfg.Container))

	out, err := i.runner.Run(ctx, "docker", "exec", i.cfg.Container, "bash", "-c", fmt.Sprintf("pip install %s", module))
	if err != nil {
		i.logger.Error("failed to install module",
			zap.String("module", module),
			zap.ByteString("output", out),
			zap.Error(err))
		return false
	}

	i.logger.Info("installed module in container", zap.String("module", module))
	return true
}
