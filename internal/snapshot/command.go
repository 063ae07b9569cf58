package snapshot

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
	saveCommandUseConstant                = "save [message]"
	saveCommandShortDescriptionConstant   = "Stage everything and commit in one step"
	saveCommandLongDescriptionConstant    = "save stages all pending changes, untracked files included, and commits them. Without a message a summary of the staged changes is generated. --path restricts staging to the named files."
	quickCommandUseConstant               = "quick [message]"
	quickCommandShortDescriptionConstant  = "Save and push in one step"
	quickCommandLongDescriptionConstant   = "quick performs a save and then pushes the branch. Pushing can be disabled through the tools.quick.push configuration key."
	backupCommandUseConstant              = "backup"
	backupCommandShortDescriptionConstant = "Commit everything under a timestamped message and push"
	backupCommandLongDescriptionConstant  = "backup records all pending changes under a generated timestamped message and pushes to the backup remote. A clean worktree still pushes so the remote catches up."
	commandExecutionErrorTemplateConstant = "%s failed: %w"
	flagPathNameConstant                  = "path"
	flagPathDescriptionConstant           = "Restrict staging to the named file or directory (repeatable)"
	flagNoPushNameConstant                = "no-push"
	flagNoPushDescriptionConstant         = "Skip the push after committing"
	flagRemoteNameConstant                = "remote"
	flagRemoteDescriptionConstant         = "Remote that receives the push"
	nothingToCommitMessageConstant        = "nothing to commit; working tree is clean"
	stagingEverythingMessageConstant      = "staging all changes, untracked files included"
	stagingPathsTemplateConstant          = "staging %s"
	committedTemplateConstant             = "committed %q"
	pushedTemplateConstant                = "pushed to %s"
	pushSkippedMessageConstant            = "push skipped"
	outputLineTemplateConstant            = "%s\n"
	messageJoinSeparatorConstant          = " "
	pathListSeparatorConstant             = ", "
	saveCommandNameConstant               = "save"
	quickCommandNameConstant              = "quick"
	backupCommandNameConstant             = "backup"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// QuickPushEnabledProvider reports whether quick should push after committing.
type QuickPushEnabledProvider func() bool

// BackupRemoteProvider names the remote that receives backup pushes.
type BackupRemoteProvider func() string

// CommandBuilder assembles the Cobra commands for the one-step commit workflows.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	Executor                 gitrepo.GitExecutor
	ContextAccessor          utils.CommandContextAccessor
	QuickPushEnabledProvider QuickPushEnabledProvider
	BackupRemoteProvider     BackupRemoteProvider
}

// BuildSaveCommand constructs the save command.
func (builder *CommandBuilder) BuildSaveCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   saveCommandUseConstant,
		Short: saveCommandShortDescriptionConstant,
		Long:  saveCommandLongDescriptionConstant,
		RunE:  builder.runSave,
	}
	command.Flags().StringArray(flagPathNameConstant, nil, flagPathDescriptionConstant)
	return command, nil
}

// BuildQuickCommand constructs the quick command.
func (builder *CommandBuilder) BuildQuickCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   quickCommandUseConstant,
		Short: quickCommandShortDescriptionConstant,
		Long:  quickCommandLongDescriptionConstant,
		RunE:  builder.runQuick,
	}
	command.Flags().Bool(flagNoPushNameConstant, false, flagNoPushDescriptionConstant)
	return command, nil
}

// BuildBackupCommand constructs the backup command.
func (builder *CommandBuilder) BuildBackupCommand() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   backupCommandUseConstant,
		Short: backupCommandShortDescriptionConstant,
		Long:  backupCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runBackup,
	}
	command.Flags().String(flagRemoteNameConstant, "", flagRemoteDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) runSave(command *cobra.Command, arguments []string) error {
	service, repositoryPath, serviceError := builder.prepare(command)
	if serviceError != nil {
		return serviceError
	}

	restrictedPaths, _ := command.Flags().GetStringArray(flagPathNameConstant)

	saveResult, saveError := service.Save(command.Context(), SaveOptions{
		RepositoryPath: repositoryPath,
		Message:        strings.Join(arguments, messageJoinSeparatorConstant),
		Paths:          restrictedPaths,
	})
	if saveError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, saveCommandNameConstant, saveError)
	}

	builder.reportSave(command, saveResult, restrictedPaths)
	return nil
}

func (builder *CommandBuilder) runQuick(command *cobra.Command, arguments []string) error {
	service, repositoryPath, serviceError := builder.prepare(command)
	if serviceError != nil {
		return serviceError
	}

	saveResult, saveError := service.Save(command.Context(), SaveOptions{
		RepositoryPath: repositoryPath,
		Message:        strings.Join(arguments, messageJoinSeparatorConstant),
	})
	if saveError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, quickCommandNameConstant, saveError)
	}
	builder.reportSave(command, saveResult, nil)

	noPushValue, _ := command.Flags().GetBool(flagNoPushNameConstant)
	if noPushValue || !builder.quickPushEnabled() {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.MutedStyle.Render(pushSkippedMessageConstant))
		return nil
	}

	if pushError := service.Push(command.Context(), PushOptions{RepositoryPath: repositoryPath}); pushError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, quickCommandNameConstant, pushError)
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(fmt.Sprintf(pushedTemplateConstant, defaultRemoteNameConstant)))
	return nil
}

func (builder *CommandBuilder) runBackup(command *cobra.Command, _ []string) error {
	service, repositoryPath, serviceError := builder.prepare(command)
	if serviceError != nil {
		return serviceError
	}

	remoteNameValue, _ := command.Flags().GetString(flagRemoteNameConstant)
	remoteName := strings.TrimSpace(remoteNameValue)
	if len(remoteName) == 0 {
		remoteName = builder.backupRemote()
	}

	backupResult, backupError := service.Backup(command.Context(), BackupOptions{
		RepositoryPath: repositoryPath,
		RemoteName:     remoteName,
	})
	if backupError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, backupCommandNameConstant, backupError)
	}

	builder.reportSave(command, backupResult.Save, nil)
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(fmt.Sprintf(pushedTemplateConstant, remoteName)))
	return nil
}

// reportSave narrates a completed save. The staging announcement follows the
// worktree check inside Save, so a clean tree or a failed precondition never
// claims anything was staged.
func (builder *CommandBuilder) reportSave(command *cobra.Command, saveResult SaveResult, restrictedPaths []string) {
	if !saveResult.Committed {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.WarningLine(nothingToCommitMessageConstant))
		return
	}

	stagingMessage := stagingEverythingMessageConstant
	if len(restrictedPaths) > 0 {
		stagingMessage = fmt.Sprintf(stagingPathsTemplateConstant, strings.Join(restrictedPaths, pathListSeparatorConstant))
	}
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.MutedStyle.Render(stagingMessage))
	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, render.SuccessLine(fmt.Sprintf(committedTemplateConstant, saveResult.CommitMessage)))
}

func (builder *CommandBuilder) quickPushEnabled() bool {
	if builder.QuickPushEnabledProvider == nil {
		return true
	}
	return builder.QuickPushEnabledProvider()
}

func (builder *CommandBuilder) backupRemote() string {
	if builder.BackupRemoteProvider == nil {
		return defaultRemoteNameConstant
	}
	configuredRemote := strings.TrimSpace(builder.BackupRemoteProvider())
	if len(configuredRemote) == 0 {
		return defaultRemoteNameConstant
	}
	return configuredRemote
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
