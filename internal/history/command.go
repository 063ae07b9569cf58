package history

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
	"github.com/gitq-dev/gitq/internal/render"
	"github.com/gitq-dev/gitq/internal/ui"
	"github.com/gitq-dev/gitq/internal/utils"
)

const (
	commandUseConstant                    = "log"
	commandShortDescriptionConstant       = "Show the recent commit history, one line per commit"
	commandLongDescriptionConstant        = "log prints the newest commits in git's one-line format. The number of entries defaults to the tools.log.limit configuration key."
	commandExecutionErrorTemplateConstant = "log failed: %w"
	flagLimitNameConstant                 = "limit"
	flagLimitDescriptionConstant          = "Number of commits to show"
	noCommitsMessageConstant              = "no commits yet"
	outputLineTemplateConstant            = "%s\n"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// LimitProvider supplies the configured default entry limit.
type LimitProvider func() int

// ColorDisabledProvider reports whether colorized output was turned off.
type ColorDisabledProvider func() bool

// CommandBuilder assembles the Cobra command for the condensed commit log.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	Executor              gitrepo.GitExecutor
	ContextAccessor       utils.CommandContextAccessor
	LimitProvider         LimitProvider
	ColorDisabledProvider ColorDisabledProvider
}

// Build constructs the log command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	command.Flags().Int(flagLimitNameConstant, 0, flagLimitDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	logger := builder.resolveLogger()
	gitExecutor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, gitExecutor)
	if serviceError != nil {
		return serviceError
	}

	entryLimit, _ := command.Flags().GetInt(flagLimitNameConstant)
	if entryLimit <= 0 {
		entryLimit = builder.configuredLimit()
	}
	repositoryPath, _ := builder.ContextAccessor.RepositoryPath(command.Context())

	renderedHistory, historyError := service.Recent(command.Context(), Options{
		RepositoryPath: repositoryPath,
		Limit:          entryLimit,
		DisableColor:   builder.colorDisabled(),
	})
	if historyError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, historyError)
	}

	if len(renderedHistory) == 0 {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.MutedStyle.Render(noCommitsMessageConstant))
		return nil
	}
	fmt.Fprint(command.OutOrStdout(), renderedHistory)
	return nil
}

func (builder *CommandBuilder) configuredLimit() int {
	if builder.LimitProvider == nil {
		return 0
	}
	return builder.LimitProvider()
}

func (builder *CommandBuilder) colorDisabled() bool {
	if builder.ColorDisabledProvider == nil {
		return false
	}
	return builder.ColorDisabledProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (gitrepo.GitExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
