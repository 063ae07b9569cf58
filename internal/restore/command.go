package restore

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
	freshCommandUseConstant               = "fresh"
	freshCommandShortDescriptionConstant  = "Discard all uncommitted changes"
	freshCommandLongDescriptionConstant   = "fresh resets the worktree to the last commit. With --clean it also removes untracked files and directories. It asks for confirmation unless --force is given."
	undoCommandUseConstant                = "undo"
	undoCommandShortDescriptionConstant   = "Rewind the last commit, keeping its changes staged"
	undoCommandLongDescriptionConstant    = "undo moves the branch back one commit without touching the worktree, so the undone changes stay staged and ready to amend."
	commandExecutionErrorTemplateConstant = "%s failed: %w"
	flagForceNameConstant                 = "force"
	flagForceDescriptionConstant          = "Skip the confirmation prompt"
	flagCleanNameConstant                 = "clean"
	flagCleanDescriptionConstant          = "Also remove untracked files and directories"
	freshConfirmationPromptConstant       = "Discard ALL uncommitted changes? [y/N] "
	freshCleanConfirmationPromptConstant  = "Discard ALL uncommitted changes and untracked files? [y/N] "
	freshAbortedMessageConstant           = "aborted; nothing was discarded"
	nothingToDiscardMessageConstant       = "nothing to discard; working tree is clean"
	discardedMessageConstant              = "working tree reset to the last commit"
	undoneMessageConstant                 = "last commit rewound; its changes remain staged"
	outputLineTemplateConstant            = "%s\n"
	freshCommandNameConstant              = "fresh"
	undoCommandNameConstant               = "undo"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// PrompterFactory builds the confirmation prompter for a command invocation.
type PrompterFactory func(command *cobra.Command) ConfirmationPrompter

// ConfirmationRequiredProvider reports whether fresh must prompt before discarding.
type ConfirmationRequiredProvider func() bool

// CommandBuilder assembles the Cobra commands for destructive recovery.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     gitrepo.GitExecutor
	ContextAccessor              utils.CommandContextAccessor
	PrompterFactory              PrompterFactory
	ConfirmationRequiredProvider ConfirmationRequiredProvider
}

// BuildFreshCommand constructs the fresh command.
func (builder *CommandBuilder) BuildFreshCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   freshCommandUseConstant,
		Short: freshCommandShortDescriptionConstant,
		Long:  freshCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runFresh,
	}
	command.Flags().Bool(flagForceNameConstant, false, flagForceDescriptionConstant)
	command.Flags().Bool(flagCleanNameConstant, false, flagCleanDescriptionConstant)
	return command, nil
}

// BuildUndoCommand constructs the undo command.
func (builder *CommandBuilder) BuildUndoCommand() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   undoCommandUseConstant,
		Short: undoCommandShortDescriptionConstant,
		Long:  undoCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runUndo,
	}, nil
}

func (builder *CommandBuilder) runFresh(command *cobra.Command, _ []string) error {
	service, repositoryPath, serviceError := builder.prepare(command)
	if serviceError != nil {
		return serviceError
	}

	forceValue, _ := command.Flags().GetBool(flagForceNameConstant)
	cleanValue, _ := command.Flags().GetBool(flagCleanNameConstant)
	if !forceValue && builder.confirmationRequired() {
		confirmationPrompt := freshConfirmationPromptConstant
		if cleanValue {
			confirmationPrompt = freshCleanConfirmationPromptConstant
		}
		confirmed, confirmError := builder.resolvePrompter(command).Confirm(confirmationPrompt)
		if confirmError != nil {
			return confirmError
		}
		if !confirmed {
			fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.WarningLine(freshAbortedMessageConstant))
			return nil
		}
	}

	freshResult, freshError := service.Fresh(command.Context(), FreshOptions{
		RepositoryPath:  repositoryPath,
		RemoveUntracked: cleanValue,
	})
	if freshError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, freshCommandNameConstant, freshError)
	}

	if !freshResult.Discarded {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.WarningLine(nothingToDiscardMessageConstant))
		return nil
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(discardedMessageConstant))
	return nil
}

func (builder *CommandBuilder) runUndo(command *cobra.Command, _ []string) error {
	service, repositoryPath, serviceError := builder.prepare(command)
	if serviceError != nil {
		return serviceError
	}

	if undoError := service.Undo(command.Context(), UndoOptions{RepositoryPath: repositoryPath}); undoError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, undoCommandNameConstant, undoError)
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(undoneMessageConstant))
	return nil
}

func (builder *CommandBuilder) confirmationRequired() bool {
	if builder.ConfirmationRequiredProvider == nil {
		return true
	}
	return builder.ConfirmationRequiredProvider()
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) ConfirmationPrompter {
	if builder.PrompterFactory != nil {
		if prompter := builder.PrompterFactory(command); prompter != nil {
			return prompter
		}
	}
	return NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}

func (builder *CommandBuilder) prepare(command *cobra.Command) (*Service, string, error) {
	logger := builder.resolveLogger()
	gitExecutor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return nil, "", executorError
	}

	service, serviceError := NewService(logger, gitExecutor)
	if serviceError != nil {
		return nil, "", serviceError
	}

	repositoryPath, _ := builder.ContextAccessor.RepositoryPath(command.Context())
	return service, repositoryPath, nil
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
