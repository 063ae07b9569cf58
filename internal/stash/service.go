package stash

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/changes"
	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
)

const (
	gitStashSubcommandConstant      = "stash"
	gitStashPushSubcommandConstant  = "push"
	gitStashPopSubcommandConstant   = "pop"
	gitStashApplySubcommandConstant = "apply"
	gitStashDropSubcommandConstant  = "drop"
	gitStashListSubcommandConstant  = "list"
	gitIncludeUntrackedFlagConstant = "--include-untracked"
	gitMessageFlagConstant          = "-m"
	workInProgressPrefixConstant    = "wip: "
	terminalPromptEnvironmentName   = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValue     = "0"
)

// PushOptions configures shelving of the current changes. WorkInProgress
// derives the stash message from the pending change set when no explicit
// message is given.
type PushOptions struct {
	RepositoryPath string
	Message        string
	WorkInProgress bool
}

// PushResult reports whether anything was shelved.
type PushResult struct {
	Stashed bool
}

// EntryOptions addresses a single stash entry. An empty Reference targets the
// most recent entry.
type EntryOptions struct {
	RepositoryPath string
	Reference      string
}

// ListOptions configures listing of stash entries.
type ListOptions struct {
	RepositoryPath string
}

// Service shelves and restores uncommitted changes through git stash.
type Service struct {
	logger            *zap.Logger
	gitExecutor       gitrepo.GitExecutor
	repositoryManager *gitrepo.RepositoryManager
}

// NewService constructs a stash service around the provided git executor.
func NewService(logger *zap.Logger, gitExecutor gitrepo.GitExecutor) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	return &Service{logger: logger, gitExecutor: gitExecutor, repositoryManager: repositoryManager}, nil
}

// Push shelves all uncommitted changes including untracked files. A clean
// worktree is a successful no-op reported through PushResult.Stashed.
func (service *Service) Push(executionContext context.Context, options PushOptions) (PushResult, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return PushResult{}, verifyError
	}

	porcelainOutput, porcelainError := service.repositoryManager.GetPorcelainStatus(executionContext, options.RepositoryPath)
	if porcelainError != nil {
		return PushResult{}, porcelainError
	}
	pendingChanges := changes.ParsePorcelain(porcelainOutput)
	if pendingChanges.IsClean() {
		return PushResult{Stashed: false}, nil
	}

	trimmedMessage := strings.TrimSpace(options.Message)
	if len(trimmedMessage) == 0 && options.WorkInProgress {
		trimmedMessage = workInProgressPrefixConstant + changes.AutoMessage(pendingChanges)
	}

	pushArguments := []string{gitStashSubcommandConstant, gitStashPushSubcommandConstant, gitIncludeUntrackedFlagConstant}
	if len(trimmedMessage) > 0 {
		pushArguments = append(pushArguments, gitMessageFlagConstant, trimmedMessage)
	}

	if _, executionError := service.executeGit(executionContext, options.RepositoryPath, pushArguments...); executionError != nil {
		return PushResult{}, executionError
	}
	return PushResult{Stashed: true}, nil
}

// List returns the recorded stash entries, most recent first.
func (service *Service) List(executionContext context.Context, options ListOptions) ([]string, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return nil, verifyError
	}

	executionResult, executionError := service.executeGit(executionContext, options.RepositoryPath, gitStashSubcommandConstant, gitStashListSubcommandConstant)
	if executionError != nil {
		return nil, executionError
	}

	trimmedOutput := strings.TrimSpace(executionResult.StandardOutput)
	if len(trimmedOutput) == 0 {
		return nil, nil
	}
	return strings.Split(trimmedOutput, "\n"), nil
}

// Pop applies the addressed stash entry and drops it on success. Conflicts
// surface as a CommandFailedError and leave the entry in place.
func (service *Service) Pop(executionContext context.Context, options EntryOptions) error {
	return service.runEntrySubcommand(executionContext, options, gitStashPopSubcommandConstant)
}

// Apply applies the addressed stash entry while keeping it recorded.
func (service *Service) Apply(executionContext context.Context, options EntryOptions) error {
	return service.runEntrySubcommand(executionContext, options, gitStashApplySubcommandConstant)
}

// Drop removes the addressed stash entry without applying it.
func (service *Service) Drop(executionContext context.Context, options EntryOptions) error {
	return service.runEntrySubcommand(executionContext, options, gitStashDropSubcommandConstant)
}

func (service *Service) runEntrySubcommand(executionContext context.Context, options EntryOptions, stashSubcommand string) error {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return verifyError
	}

	entryArguments := []string{gitStashSubcommandConstant, stashSubcommand}
	trimmedReference := strings.TrimSpace(options.Reference)
	if len(trimmedReference) > 0 {
		entryArguments = append(entryArguments, trimmedReference)
	}

	_, executionError := service.executeGit(executionContext, options.RepositoryPath, entryArguments...)
	return executionError
}

func (service *Service) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{terminalPromptEnvironmentName: terminalPromptDisabledValue},
	})
}
