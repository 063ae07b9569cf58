package gitrepo

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gitq-dev/gitq/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant  = "git executor not configured"
	notARepositoryMessageConstant         = "not inside a git repository"
	repositoryPathRequiredMessageConstant = "repository path must be provided"
	workTreeConfirmationOutputConstant    = "true"
	gitRevParseSubcommandConstant         = "rev-parse"
	gitInsideWorkTreeFlagConstant         = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant              = "--abbrev-ref"
	gitSymbolicFullNameFlagConstant       = "--symbolic-full-name"
	gitUpstreamReferenceConstant          = "@{u}"
	gitHeadReferenceConstant              = "HEAD"
	gitStatusSubcommandConstant           = "status"
	gitPorcelainFlagConstant              = "--porcelain"
	gitRemoteSubcommandConstant           = "remote"
	gitRemoteGetURLSubcommandConstant     = "get-url"
	gitRevListSubcommandConstant          = "rev-list"
	gitLeftRightFlagConstant              = "--left-right"
	gitCountFlagConstant                  = "--count"
	gitUpstreamRangeConstant              = "@{u}...HEAD"
	gitTerminalPromptEnvironmentName      = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValue        = "0"
)

// ErrExecutorNotConfigured indicates the git executor dependency was missing.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrNotARepository indicates the supplied path is not inside a git worktree.
var ErrNotARepository = errors.New(notARepositoryMessageConstant)

// ErrRepositoryPathRequired indicates an empty repository path was supplied.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// SyncCounts reports how far the current branch diverged from its upstream.
type SyncCounts struct {
	Ahead  int
	Behind int
}

// RepositoryManager performs repository-level git queries through a GitExecutor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// IsInsideWorkTree reports whether the path is located inside a git worktree.
func (manager *RepositoryManager) IsInsideWorkTree(executionContext context.Context, repositoryPath string) (bool, error) {
	trimmedPath, pathError := requirePath(repositoryPath)
	if pathError != nil {
		return false, pathError
	}

	executionResult, executionError := manager.executeGit(executionContext, trimmedPath, gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput) == workTreeConfirmationOutputConstant, nil
}

// EnsureWorkTree returns ErrNotARepository when the path is outside a git worktree.
func (manager *RepositoryManager) EnsureWorkTree(executionContext context.Context, repositoryPath string) error {
	insideWorkTree, checkError := manager.IsInsideWorkTree(executionContext, repositoryPath)
	if checkError != nil {
		return checkError
	}
	if !insideWorkTree {
		return ErrNotARepository
	}
	return nil
}

// CheckCleanWorktree reports whether the worktree holds no uncommitted changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	trimmedPath, pathError := requirePath(repositoryPath)
	if pathError != nil {
		return false, pathError
	}

	executionResult, executionError := manager.executeGit(executionContext, trimmedPath, gitStatusSubcommandConstant, gitPorcelainFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// GetPorcelainStatus returns the raw machine-readable status listing for the worktree.
func (manager *RepositoryManager) GetPorcelainStatus(executionContext context.Context, repositoryPath string) (string, error) {
	trimmedPath, pathError := requirePath(repositoryPath)
	if pathError != nil {
		return "", pathError
	}

	executionResult, executionError := manager.executeGit(executionContext, trimmedPath, gitStatusSubcommandConstant, gitPorcelainFlagConstant)
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

// GetCurrentBranch resolves the checked-out branch name, or "HEAD" when detached.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	trimmedPath, pathError := requirePath(repositoryPath)
	if pathError != nil {
		return "", pathError
	}

	executionResult, executionError := manager.executeGit(executionContext, trimmedPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// GetUpstreamBranch resolves the configured upstream, or an empty string when none exists.
func (manager *RepositoryManager) GetUpstreamBranch(executionContext context.Context, repositoryPath string) (string, error) {
	trimmedPath, pathError := requirePath(repositoryPath)
	if pathError != nil {
		return "", pathError
	}

	executionResult, executionError := manager.executeGit(executionContext, trimmedPath, gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitSymbolicFullNameFlagConstant, gitUpstreamReferenceConstant)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return "", nil
		}
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// GetRemoteURL reads the fetch URL configured for the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	trimmedPath, pathError := requirePath(repositoryPath)
	if pathError != nil {
		return "", pathError
	}

	executionResult, executionError := manager.executeGit(executionContext, trimmedPath, gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CountAheadBehind compares the current branch against its upstream. Zero counts
// are reported when no upstream is configured.
func (manager *RepositoryManager) CountAheadBehind(executionContext context.Context, repositoryPath string) (SyncCounts, error) {
	trimmedPath, pathError := requirePath(repositoryPath)
	if pathError != nil {
		return SyncCounts{}, pathError
	}

	executionResult, executionError := manager.executeGit(executionContext, trimmedPath, gitRevListSubcommandConstant, gitLeftRightFlagConstant, gitCountFlagConstant, gitUpstreamRangeConstant)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return SyncCounts{}, nil
		}
		return SyncCounts{}, executionError
	}

	countFields := strings.Fields(strings.TrimSpace(executionResult.StandardOutput))
	if len(countFields) != 2 {
		return SyncCounts{}, nil
	}
	behindCount, behindParseError := strconv.Atoi(countFields[0])
	aheadCount, aheadParseError := strconv.Atoi(countFields[1])
	if behindParseError != nil || aheadParseError != nil {
		return SyncCounts{}, nil
	}
	return SyncCounts{Ahead: aheadCount, Behind: behindCount}, nil
}

func (manager *RepositoryManager) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentName: gitTerminalPromptDisabledValue},
	})
}

func requirePath(repositoryPath string) (string, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return "", ErrRepositoryPathRequired
	}
	return trimmedPath, nil
}
