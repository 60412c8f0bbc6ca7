package containers

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/dockbash/internal/execshell"
)

const (
	engineExecSubcommandConstant    = "exec"
	engineInteractiveTTYFlag        = "-it"
	shellVersionFlagConstant        = "--version"
	probeExcludedMessageConstant    = "container excluded: shell probe failed"
	probeAcceptedMessageConstant    = "container has shell"
	logFieldContainerIDConstant     = "container_id"
	logFieldContainerNameConstant   = "container_name"
	logFieldShellConstant           = "shell"
	logFieldProbeExitCodeConstant   = "exit_code"
	logFieldProbeStderrConstant     = "stderr"
	logFieldProbeConcurrency        = "probe_concurrency"
	probeFilterStartMessageConstant = "probing containers for shell"
)

// Prober checks whether containers can run the configured shell.
type Prober struct {
	executor    CommandExecutor
	logger      *zap.Logger
	engine      execshell.CommandName
	shell       string
	concurrency int
}

// NewProber builds a Prober from the engine configuration.
func NewProber(executor CommandExecutor, logger *zap.Logger, configuration EngineConfiguration) (*Prober, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	sanitized := configuration.Sanitize()
	return &Prober{
		executor:    executor,
		logger:      logger,
		engine:      execshell.CommandName(sanitized.Executable),
		shell:       sanitized.Shell,
		concurrency: sanitized.ProbeConcurrency,
	}, nil
}

// HasShell runs "<shell> --version" inside the container with a pseudo-terminal.
// It reports true only when the probe exits 0, writes nothing to standard
// error, and its output mentions the shell name in any case. Every other
// outcome, including a probe that could not run, is false.
func (prober *Prober) HasShell(executionContext context.Context, container Container) bool {
	command := execshell.ShellCommand{
		Name: prober.engine,
		Details: execshell.CommandDetails{
			Arguments:        []string{engineExecSubcommandConstant, engineInteractiveTTYFlag, container.ID, prober.shell, shellVersionFlagConstant},
			AllocateTerminal: true,
		},
	}

	result, executionError := prober.executor.Execute(executionContext, command)
	if executionError != nil {
		prober.logger.Debug(
			probeExcludedMessageConstant,
			zap.String(logFieldContainerIDConstant, container.ID),
			zap.String(logFieldContainerNameConstant, container.Name),
			zap.Error(executionError),
		)
		return false
	}

	hasShell := len(result.StandardError) == 0 &&
		result.ExitCode == 0 &&
		strings.Contains(strings.ToLower(result.StandardOutput), strings.ToLower(prober.shell))

	if !hasShell {
		prober.logger.Debug(
			probeExcludedMessageConstant,
			zap.String(logFieldContainerIDConstant, container.ID),
			zap.String(logFieldContainerNameConstant, container.Name),
			zap.Int(logFieldProbeExitCodeConstant, result.ExitCode),
			zap.String(logFieldProbeStderrConstant, result.StandardError),
		)
		return false
	}

	prober.logger.Debug(
		probeAcceptedMessageConstant,
		zap.String(logFieldContainerIDConstant, container.ID),
		zap.String(logFieldContainerNameConstant, container.Name),
		zap.String(logFieldShellConstant, prober.shell),
	)
	return true
}

// FilterWithShell probes every candidate and returns those with the shell in
// their original order. Up to the configured concurrency probes run at once.
func (prober *Prober) FilterWithShell(executionContext context.Context, candidates []Container) []Container {
	prober.logger.Debug(probeFilterStartMessageConstant, zap.Int(logFieldProbeConcurrency, prober.concurrency))

	verdicts := make([]bool, len(candidates))

	var probeGroup errgroup.Group
	probeGroup.SetLimit(prober.concurrency)
	for candidateIndex := range candidates {
		probeGroup.Go(func() error {
			verdicts[candidateIndex] = prober.HasShell(executionContext, candidates[candidateIndex])
			return nil
		})
	}
	_ = probeGroup.Wait()

	survivors := make([]Container, 0, len(candidates))
	for candidateIndex, candidate := range candidates {
		if verdicts[candidateIndex] {
			survivors = append(survivors, candidate)
		}
	}
	return survivors
}
