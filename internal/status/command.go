package status

import (
	"errors"
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
	commandUseConstant                    = "status"
	commandShortDescriptionConstant       = "Show a categorized summary of the working tree"
	commandLongDescriptionConstant        = "status prints the current branch, its divergence from the upstream, and staged, unstaged, untracked, and conflicted paths grouped by category."
	commandExecutionErrorTemplateConstant = "status failed: %w"
	unexpectedArgumentsMessageConstant    = "status does not accept positional arguments"
	flagRemoteNameConstant                = "remote"
	flagRemoteDescriptionConstant         = "Remote whose URL names the repository in the header"
	outputLineTemplateConstant            = "%s\n"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for the working tree summary.
type CommandBuilder struct {
	LoggerProvider  LoggerProvider
	Executor        gitrepo.GitExecutor
	ContextAccessor utils.CommandContextAccessor
}

// Build constructs the status command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagRemoteNameConstant, defaultRemoteNameConstant, flagRemoteDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(logger, gitExecutor)
	if serviceError != nil {
		return serviceError
	}

	remoteNameValue, _ := command.Flags().GetString(flagRemoteNameConstant)
	repositoryPath, _ := builder.ContextAccessor.RepositoryPath(command.Context())

	statusView, reportError := service.Report(command.Context(), Options{
		RepositoryPath: repositoryPath,
		RemoteName:     strings.TrimSpace(remoteNameValue),
	})
	if reportError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, reportError)
	}

	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.RenderStatus(statusView))
	return nil
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
