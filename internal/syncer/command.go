package syncer

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
	commandUseConstant                    = "sync"
	commandShortDescriptionConstant       = "Rebase onto the upstream and push local commits"
	commandLongDescriptionConstant        = "sync pulls the upstream with rebase, stashing uncommitted changes around it, and pushes any local commits that remain unpublished."
	commandExecutionErrorTemplateConstant = "sync failed: %w"
	upToDateTemplateConstant              = "up to date with %s"
	pushedCommitsTemplateConstant         = "pushed %d commit(s) to %s"
	outputLineTemplateConstant            = "%s\n"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for upstream reconciliation.
type CommandBuilder struct {
	LoggerProvider  LoggerProvider
	Executor        gitrepo.GitExecutor
	ContextAccessor utils.CommandContextAccessor
}

// Build constructs the sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}, nil
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

	repositoryPath, _ := builder.ContextAccessor.RepositoryPath(command.Context())

	syncResult, syncError := service.Sync(command.Context(), Options{RepositoryPath: repositoryPath})
	if syncError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, syncError)
	}

	if syncResult.Pushed {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant,
			render.SuccessLine(fmt.Sprintf(pushedCommitsTemplateConstant, syncResult.PushedCount, syncResult.UpstreamName)))
		return nil
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant,
		render.SuccessLine(fmt.Sprintf(upToDateTemplateConstant, syncResult.UpstreamName)))
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
