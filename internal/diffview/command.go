package diffview

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
	commandUseConstant                    = "diff [path...]"
	commandShortDescriptionConstant       = "Show changes between the working tree and the index"
	commandLongDescriptionConstant        = "diff renders pending changes using git's own formatting. By default it compares the working tree against the index; --staged compares the index against the last commit."
	commandExecutionErrorTemplateConstant = "diff failed: %w"
	flagStagedNameConstant                = "staged"
	flagStagedDescriptionConstant         = "Compare staged changes against the last commit"
	flagStatNameConstant                  = "stat"
	flagStatDescriptionConstant           = "Show a per-file change summary instead of patches"
	noDifferencesMessageConstant          = "no differences"
	outputLineTemplateConstant            = "%s\n"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ColorDisabledProvider reports whether colorized output was turned off.
type ColorDisabledProvider func() bool

// CommandBuilder assembles the Cobra command for change comparison.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	Executor              gitrepo.GitExecutor
	ContextAccessor       utils.CommandContextAccessor
	ColorDisabledProvider ColorDisabledProvider
}

// Build constructs the diff command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().Bool(flagStagedNameConstant, false, flagStagedDescriptionConstant)
	command.Flags().Bool(flagStatNameConstant, false, flagStatDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	gitExecutor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, gitExecutor)
	if serviceError != nil {
		return serviceError
	}

	stagedValue, _ := command.Flags().GetBool(flagStagedNameConstant)
	statValue, _ := command.Flags().GetBool(flagStatNameConstant)
	repositoryPath, _ := builder.ContextAccessor.RepositoryPath(command.Context())

	renderedDiff, diffError := service.Diff(command.Context(), Options{
		RepositoryPath: repositoryPath,
		Staged:         stagedValue,
		Stat:           statValue,
		DisableColor:   builder.colorDisabled(),
		Paths:          arguments,
	})
	if diffError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, diffError)
	}

	if len(renderedDiff) == 0 {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(noDifferencesMessageConstant))
		return nil
	}

	fmt.Fprint(command.OutOrStdout(), renderedDiff)
	return nil
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
