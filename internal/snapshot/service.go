package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/changes"
	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
)

const (
	gitAddSubcommandConstant        = "add"
	gitAddAllFlagConstant           = "--all"
	gitCommitSubcommandConstant     = "commit"
	gitMessageFlagConstant          = "-m"
	gitPushSubcommandConstant       = "push"
	gitPathSeparatorFlagConstant    = "--"
	terminalPromptEnvironmentName   = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValue     = "0"
	backupMessageTemplateConstant   = "backup: %s"
	backupTimestampLayoutConstant   = "2006-01-02 15:04:05"
	defaultRemoteNameConstant       = "origin"
)

// SaveOptions configures a stage-and-commit request. An empty Message yields a
// generated summary of the staged changes. Paths, when present, restrict
// staging to the named files or directories; otherwise every pending change is
// staged, untracked files included.
type SaveOptions struct {
	RepositoryPath string
	Message        string
	Paths          []string
}

// SaveResult reports what a save accomplished. Committed is false when the
// worktree had nothing to record, which is not an error.
type SaveResult struct {
	Committed     bool
	CommitMessage string
	StagedChanges changes.ChangeSet
}

// PushOptions configures publishing of local commits.
type PushOptions struct {
	RepositoryPath string
	RemoteName     string
}

// BackupOptions configures a timestamped save followed by a push.
type BackupOptions struct {
	RepositoryPath string
	RemoteName     string
}

// BackupResult reports the outcome of a backup.
type BackupResult struct {
	Save   SaveResult
	Pushed bool
}

// Service performs one-step commit workflows through a git executor.
type Service struct {
	logger            *zap.Logger
	gitExecutor       gitrepo.GitExecutor
	repositoryManager *gitrepo.RepositoryManager
	timeProvider      func() time.Time
}

// NewService constructs a snapshot service around the provided git executor.
func NewService(logger *zap.Logger, gitExecutor gitrepo.GitExecutor) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	return &Service{
		logger:            logger,
		gitExecutor:       gitExecutor,
		repositoryManager: repositoryManager,
		timeProvider:      time.Now,
	}, nil
}

// WithTimeProvider overrides the clock used for generated backup messages.
func (service *Service) WithTimeProvider(timeProvider func() time.Time) *Service {
	if timeProvider != nil {
		service.timeProvider = timeProvider
	}
	return service
}

// Save stages pending changes and commits them. A clean worktree, or a Paths
// restriction matching nothing, results in SaveResult.Committed being false.
func (service *Service) Save(executionContext context.Context, options SaveOptions) (SaveResult, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return SaveResult{}, verifyError
	}

	porcelainOutput, porcelainError := service.repositoryManager.GetPorcelainStatus(executionContext, options.RepositoryPath)
	if porcelainError != nil {
		return SaveResult{}, porcelainError
	}
	if changes.ParsePorcelain(porcelainOutput).IsClean() {
		return SaveResult{}, nil
	}

	if stageError := service.stage(executionContext, options); stageError != nil {
		return SaveResult{}, stageError
	}

	stagedChanges, stagedError := service.collectStagedChanges(executionContext, options.RepositoryPath)
	if stagedError != nil {
		return SaveResult{}, stagedError
	}
	if stagedChanges.IsClean() {
		return SaveResult{}, nil
	}

	commitMessage := strings.TrimSpace(options.Message)
	if len(commitMessage) == 0 {
		commitMessage = changes.AutoMessage(stagedChanges)
	}

	commitArguments := []string{gitCommitSubcommandConstant, gitMessageFlagConstant, commitMessage}
	if _, commitError := service.executeGit(executionContext, options.RepositoryPath, commitArguments...); commitError != nil {
		return SaveResult{}, commitError
	}

	return SaveResult{Committed: true, CommitMessage: commitMessage, StagedChanges: stagedChanges}, nil
}

// Push publishes local commits to the named remote, defaulting to origin.
func (service *Service) Push(executionContext context.Context, options PushOptions) error {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return verifyError
	}

	remoteName := strings.TrimSpace(options.RemoteName)
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}

	_, pushError := service.executeGit(executionContext, options.RepositoryPath, gitPushSubcommandConstant, remoteName)
	return pushError
}

// Backup commits pending changes under a timestamped message and pushes to the
// named remote. A clean worktree still pushes so the remote catches up.
func (service *Service) Backup(executionContext context.Context, options BackupOptions) (BackupResult, error) {
	backupMessage := fmt.Sprintf(backupMessageTemplateConstant, service.timeProvider().Format(backupTimestampLayoutConstant))

	saveResult, saveError := service.Save(executionContext, SaveOptions{
		RepositoryPath: options.RepositoryPath,
		Message:        backupMessage,
	})
	if saveError != nil {
		return BackupResult{}, saveError
	}

	pushError := service.Push(executionContext, PushOptions{
		RepositoryPath: options.RepositoryPath,
		RemoteName:     options.RemoteName,
	})
	if pushError != nil {
		return BackupResult{Save: saveResult}, pushError
	}

	return BackupResult{Save: saveResult, Pushed: true}, nil
}

func (service *Service) stage(executionContext context.Context, options SaveOptions) error {
	stageArguments := []string{gitAddSubcommandConstant}
	if len(options.Paths) > 0 {
		stageArguments = append(stageArguments, gitPathSeparatorFlagConstant)
		stageArguments = append(stageArguments, options.Paths...)
	} else {
		stageArguments = append(stageArguments, gitAddAllFlagConstant)
	}

	_, stageError := service.executeGit(executionContext, options.RepositoryPath, stageArguments...)
	return stageError
}

func (service *Service) collectStagedChanges(executionContext context.Context, repositoryPath string) (changes.ChangeSet, error) {
	porcelainOutput, porcelainError := service.repositoryManager.GetPorcelainStatus(executionContext, repositoryPath)
	if porcelainError != nil {
		return changes.ChangeSet{}, porcelainError
	}

	parsedChanges := changes.ParsePorcelain(porcelainOutput)
	return changes.ChangeSet{
		StagedAdded:    parsedChanges.StagedAdded,
		StagedModified: parsedChanges.StagedModified,
		StagedDeleted:  parsedChanges.StagedDeleted,
		StagedRenamed:  parsedChanges.StagedRenamed,
	}, nil
}

func (service *Service) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{terminalPromptEnvironmentName: terminalPromptDisabledValue},
	})
}
