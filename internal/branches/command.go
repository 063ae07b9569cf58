package branches

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
	commandUseConstant                    = "branch [name]"
	commandShortDescriptionConstant       = "List local branches or switch to one"
	commandLongDescriptionConstant        = "branch without arguments lists local branches and highlights the current one. With a name it switches to that branch, creating it from the current commit when it does not exist. --all includes remote-tracking branches in the listing; --create and --delete manage branches explicitly."
	commandExecutionErrorTemplateConstant = "branch failed: %w"
	flagAllNameConstant                   = "all"
	flagAllDescriptionConstant            = "Include remote-tracking branches in the listing"
	flagCreateNameConstant                = "create"
	flagCreateDescriptionConstant         = "Create the named branch and switch to it"
	flagDeleteNameConstant                = "delete"
	flagDeleteDescriptionConstant         = "Delete the named fully merged branch"
	conflictingFlagsMessageConstant       = "--create and --delete cannot be combined"
	currentBranchPrefixConstant           = "* "
	otherBranchPrefixConstant             = "  "
	switchedTemplateConstant              = "switched to %s"
	createdTemplateConstant               = "created and switched to %s"
	deletedTemplateConstant               = "deleted %s"
	noBranchesMessageConstant             = "no local branches"
	outputLineTemplateConstant            = "%s\n"
)

var errConflictingFlags = errors.New(conflictingFlagsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for branch listing and switching.
type CommandBuilder struct {
	LoggerProvider  LoggerProvider
	Executor        gitrepo.GitExecutor
	ContextAccessor utils.CommandContextAccessor
}

// Build constructs the branch command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(flagAllNameConstant, false, flagAllDescriptionConstant)
	command.Flags().String(flagCreateNameConstant, "", flagCreateDescriptionConstant)
	command.Flags().String(flagDeleteNameConstant, "", flagDeleteDescriptionConstant)

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

	repositoryPath, _ := builder.ContextAccessor.RepositoryPath(command.Context())

	createNameValue, _ := command.Flags().GetString(flagCreateNameConstant)
	deleteNameValue, _ := command.Flags().GetString(flagDeleteNameConstant)
	createName := strings.TrimSpace(createNameValue)
	deleteName := strings.TrimSpace(deleteNameValue)
	if len(createName) > 0 && len(deleteName) > 0 {
		return errConflictingFlags
	}
	if len(createName) > 0 {
		return builder.create(command, service, repositoryPath, createName)
	}
	if len(deleteName) > 0 {
		return builder.delete(command, service, repositoryPath, deleteName)
	}

	if len(arguments) == 0 {
		includeRemoteValue, _ := command.Flags().GetBool(flagAllNameConstant)
		return builder.list(command, service, repositoryPath, includeRemoteValue)
	}
	return builder.switchTo(command, service, repositoryPath, arguments[0])
}

func (builder *CommandBuilder) list(command *cobra.Command, service *Service, repositoryPath string, includeRemote bool) error {
	branchListing, listError := service.List(command.Context(), ListOptions{RepositoryPath: repositoryPath, IncludeRemote: includeRemote})
	if listError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, listError)
	}

	if len(branchListing.BranchNames) == 0 {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.MutedStyle.Render(noBranchesMessageConstant))
		return nil
	}

	for _, branchName := range branchListing.BranchNames {
		if branchName == branchListing.CurrentBranch {
			fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.AccentStyle.Render(currentBranchPrefixConstant+branchName))
			continue
		}
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, otherBranchPrefixConstant+branchName)
	}
	return nil
}

func (builder *CommandBuilder) switchTo(command *cobra.Command, service *Service, repositoryPath string, branchName string) error {
	switchResult, switchError := service.Switch(command.Context(), SwitchOptions{
		RepositoryPath: repositoryPath,
		BranchName:     branchName,
	})
	if switchError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, switchError)
	}

	successTemplate := switchedTemplateConstant
	if switchResult.Created {
		successTemplate = createdTemplateConstant
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(fmt.Sprintf(successTemplate, switchResult.BranchName)))
	return nil
}

func (builder *CommandBuilder) create(command *cobra.Command, service *Service, repositoryPath string, branchName string) error {
	if createError := service.Create(command.Context(), CreateOptions{RepositoryPath: repositoryPath, BranchName: branchName}); createError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, createError)
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(fmt.Sprintf(createdTemplateConstant, branchName)))
	return nil
}

func (builder *CommandBuilder) delete(command *cobra.Command, service *Service, repositoryPath string, branchName string) error {
	if deleteError := service.Delete(command.Context(), DeleteOptions{RepositoryPath: repositoryPath, BranchName: branchName}); deleteError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, deleteError)
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(fmt.Sprintf(deletedTemplateConstant, branchName)))
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
