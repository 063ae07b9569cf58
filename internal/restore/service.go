package restore

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
)

const (
	gitResetSubcommandConstant    = "reset"
	gitResetHardFlagConstant      = "--hard"
	gitResetSoftFlagConstant      = "--soft"
	gitHeadReferenceConstant      = "HEAD"
	gitParentCommitRangeConstant  = "HEAD~1"
	gitCleanSubcommandConstant    = "clean"
	gitCleanForceFlagConstant     = "-fd"
	terminalPromptEnvironmentName = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValue   = "0"
)

// FreshOptions configures discarding of all uncommitted changes.
// RemoveUntracked additionally deletes untracked files and directories.
type FreshOptions struct {
	RepositoryPath  string
	RemoveUntracked bool
}

// FreshResult reports whether anything had to be discarded.
type FreshResult struct {
	Discarded bool
}

// UndoOptions configures rewinding of the last commit.
type UndoOptions struct {
	RepositoryPath string
}

// Service discards uncommitted work and rewinds commits through a git executor.
type Service struct {
	logger            *zap.Logger
	gitExecutor       gitrepo.GitExecutor
	repositoryManager *gitrepo.RepositoryManager
}

// NewService constructs a restore service around the provided git executor.
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

// Fresh discards every uncommitted change, removing untracked files and
// directories only when requested. A clean worktree is a successful no-op.
func (service *Service) Fresh(executionContext context.Context, options FreshOptions) (FreshResult, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return FreshResult{}, verifyError
	}

	cleanWorktree, cleanError := service.repositoryManager.CheckCleanWorktree(executionContext, options.RepositoryPath)
	if cleanError != nil {
		return FreshResult{}, cleanError
	}
	if cleanWorktree {
		return FreshResult{Discarded: false}, nil
	}

	if _, resetError := service.executeGit(executionContext, options.RepositoryPath, gitResetSubcommandConstant, gitResetHardFlagConstant, gitHeadReferenceConstant); resetError != nil {
		return FreshResult{}, resetError
	}
	if options.RemoveUntracked {
		if _, removeError := service.executeGit(executionContext, options.RepositoryPath, gitCleanSubcommandConstant, gitCleanForceFlagConstant); removeError != nil {
			return FreshResult{}, removeError
		}
	}
	return FreshResult{Discarded: true}, nil
}

// Undo rewinds the last commit while keeping its changes staged. Repositories
// without a parent commit surface the underlying git failure.
func (service *Service) Undo(executionContext context.Context, options UndoOptions) error {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return verifyError
	}

	_, undoError := service.executeGit(executionContext, options.RepositoryPath, gitResetSubcommandConstant, gitResetSoftFlagConstant, gitParentCommitRangeConstant)
	return undoError
}

func (service *Service) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{terminalPromptEnvironmentName: terminalPromptDisabledValue},
	})
}
