package stash

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
	"github.com/gitq-dev/gitq/internal/render"
	"github.com/gitq-dev/gitq/internal/ui"
	"github.com/gitq-dev/gitq/internal/utils"
)

const (
	commandUseConstant                    = "stash [message]"
	commandShortDescriptionConstant       = "Shelve uncommitted changes, including untracked files"
	commandLongDescriptionConstant        = "stash shelves all uncommitted changes so the worktree becomes clean. --wip labels the entry with a message generated from the pending changes. Subcommands restore, inspect, or discard shelved entries."
	flagWipNameConstant                   = "wip"
	flagWipDescriptionConstant            = "Label the stash entry with a message generated from the pending changes"
	commandExecutionErrorTemplateConstant = "stash failed: %w"
	popCommandUseConstant                 = "pop [reference]"
	popCommandShortDescriptionConstant    = "Apply the most recent stash entry and drop it"
	applyCommandUseConstant               = "apply [reference]"
	applyCommandShortDescriptionConstant  = "Apply a stash entry while keeping it recorded"
	dropCommandUseConstant                = "drop [reference]"
	dropCommandShortDescriptionConstant   = "Discard a stash entry without applying it"
	listCommandUseConstant                = "list"
	listCommandShortDescriptionConstant   = "List shelved stash entries"
	nothingToStashMessageConstant         = "nothing to stash; working tree is clean"
	stashedMessageConstant                = "changes stashed"
	noStashEntriesMessageConstant         = "no stash entries"
	entryAppliedTemplateConstant          = "applied %s"
	entryDroppedTemplateConstant          = "dropped %s"
	entryPoppedTemplateConstant           = "popped %s"
	latestEntryLabelConstant              = "latest stash entry"
	outputLineTemplateConstant            = "%s\n"
	messageJoinSeparatorConstant          = " "
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command tree for stash operations.
type CommandBuilder struct {
	LoggerProvider  LoggerProvider
	Executor        gitrepo.GitExecutor
	ContextAccessor utils.CommandContextAccessor
}

// Build constructs the stash command with its subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.runPush,
	}

	command.Flags().Bool(flagWipNameConstant, false, flagWipDescriptionConstant)

	command.AddCommand(
		&cobra.Command{Use: popCommandUseConstant, Short: popCommandShortDescriptionConstant, Args: cobra.MaximumNArgs(1), RunE: builder.runPop},
		&cobra.Command{Use: applyCommandUseConstant, Short: applyCommandShortDescriptionConstant, Args: cobra.MaximumNArgs(1), RunE: builder.runApply},
		&cobra.Command{Use: dropCommandUseConstant, Short: dropCommandShortDescriptionConstant, Args: cobra.MaximumNArgs(1), RunE: builder.runDrop},
		&cobra.Command{Use: listCommandUseConstant, Short: listCommandShortDescriptionConstant, Args: cobra.NoArgs, RunE: builder.runList},
	)

	return command, nil
}

func (builder *CommandBuilder) runPush(command *cobra.Command, arguments []string) error {
	service, repositoryPath, serviceError := builder.prepare(command)
	if serviceError != nil {
		return serviceError
	}

	wipValue, _ := command.Flags().GetBool(flagWipNameConstant)
	pushResult, pushError := service.Push(command.Context(), PushOptions{
		RepositoryPath: repositoryPath,
		Message:        strings.Join(arguments, messageJoinSeparatorConstant),
		WorkInProgress: wipValue,
	})
	if pushError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, pushError)
	}

	if !pushResult.Stashed {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.WarningLine(nothingToStashMessageConstant))
		return nil
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(stashedMessageConstant))
	return nil
}

func (builder *CommandBuilder) runPop(command *cobra.Command, arguments []string) error {
	return builder.runEntryOperation(command, arguments, entryPoppedTemplateConstant, func(service *Service, options EntryOptions) error {
		return service.Pop(command.Context(), options)
	})
}

func (builder *CommandBuilder) runApply(command *cobra.Command, arguments []string) error {
	return builder.runEntryOperation(command, arguments, entryAppliedTemplateConstant, func(service *Service, options EntryOptions) error {
		return service.Apply(command.Context(), options)
	})
}

func (builder *CommandBuilder) runDrop(command *cobra.Command, arguments []string) error {
	return builder.runEntryOperation(command, arguments, entryDroppedTemplateConstant, func(service *Service, options EntryOptions) error {
		return service.Drop(command.Context(), options)
	})
}

func (builder *CommandBuilder) runList(command *cobra.Command, _ []string) error {
	service, repositoryPath, serviceError := builder.prepare(command)
	if serviceError != nil {
		return serviceError
	}

	stashEntries, listError := service.List(command.Context(), ListOptions{RepositoryPath: repositoryPath})
	if listError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, listError)
	}

	if len(stashEntries) == 0 {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.MutedStyle.Render(noStashEntriesMessageConstant))
		return nil
	}
	for _, stashEntry := range stashEntries {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, stashEntry)
	}
	return nil
}

func (builder *CommandBuilder) runEntryOperation(command *cobra.Command, arguments []string, successTemplate string, operation func(service *Service, options EntryOptions) error) error {
	service, repositoryPath, serviceError := builder.prepare(command)
	if serviceError != nil {
		return serviceError
	}

	entryReference := ""
	if len(arguments) > 0 {
		entryReference = arguments[0]
	}

	operationError := operation(service, EntryOptions{RepositoryPath: repositoryPath, Reference: entryReference})
	if operationError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, operationError)
	}

	entryLabel := entryReference
	if len(entryLabel) == 0 {
		entryLabel = latestEntryLabelConstant
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(fmt.Sprintf(successTemplate, entryLabel)))
	return nil
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
