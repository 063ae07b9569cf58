package branches

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
)

const (
	gitBranchSubcommandConstant   = "branch"
	gitBranchFormatFlagConstant   = "--format=%(refname:short)"
	gitBranchAllFlagConstant      = "--all"
	gitBranchDeleteFlagConstant   = "-d"
	gitSwitchSubcommandConstant   = "switch"
	gitSwitchCreateFlagConstant   = "--create"
	terminalPromptEnvironmentName = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValue   = "0"
)

// ListOptions configures branch listing.
type ListOptions struct {
	RepositoryPath string
	IncludeRemote  bool
}

// BranchListing names the local branches and the one checked out.
type BranchListing struct {
	BranchNames   []string
	CurrentBranch string
}

// SwitchOptions configures switching to a branch, creating it when missing.
type SwitchOptions struct {
	RepositoryPath string
	BranchName     string
}

// SwitchResult reports whether the branch had to be created.
type SwitchResult struct {
	Created    bool
	BranchName string
}

// CreateOptions configures creating and checking out a new branch.
type CreateOptions struct {
	RepositoryPath string
	BranchName     string
}

// DeleteOptions configures deleting a fully merged local branch.
type DeleteOptions struct {
	RepositoryPath string
	BranchName     string
}

// Service lists and switches local branches through a git executor.
type Service struct {
	logger            *zap.Logger
	gitExecutor       gitrepo.GitExecutor
	repositoryManager *gitrepo.RepositoryManager
}

// NewService constructs a branch service around the provided git executor.
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

// List returns the local branches and marks the current one.
func (service *Service) List(executionContext context.Context, options ListOptions) (BranchListing, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return BranchListing{}, verifyError
	}

	currentBranch, currentBranchError := service.repositoryManager.GetCurrentBranch(executionContext, options.RepositoryPath)
	if currentBranchError != nil {
		return BranchListing{}, currentBranchError
	}

	listArguments := []string{gitBranchSubcommandConstant}
	if options.IncludeRemote {
		listArguments = append(listArguments, gitBranchAllFlagConstant)
	}
	listArguments = append(listArguments, gitBranchFormatFlagConstant)

	executionResult, listError := service.executeGit(executionContext, options.RepositoryPath, listArguments...)
	if listError != nil {
		return BranchListing{}, listError
	}

	branchNames := []string{}
	for _, outputLine := range strings.Split(executionResult.StandardOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) > 0 {
			branchNames = append(branchNames, trimmedLine)
		}
	}

	return BranchListing{BranchNames: branchNames, CurrentBranch: currentBranch}, nil
}

// Switch checks out the named branch, creating it from the current commit when
// it does not exist yet.
func (service *Service) Switch(executionContext context.Context, options SwitchOptions) (SwitchResult, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return SwitchResult{}, verifyError
	}

	branchName := strings.TrimSpace(options.BranchName)

	_, switchError := service.executeGit(executionContext, options.RepositoryPath, gitSwitchSubcommandConstant, branchName)
	if switchError == nil {
		return SwitchResult{Created: false, BranchName: branchName}, nil
	}

	commandFailure := execshell.CommandFailedError{}
	if !errors.As(switchError, &commandFailure) {
		return SwitchResult{}, switchError
	}

	if _, createError := service.executeGit(executionContext, options.RepositoryPath, gitSwitchSubcommandConstant, gitSwitchCreateFlagConstant, branchName); createError != nil {
		return SwitchResult{}, createError
	}
	return SwitchResult{Created: true, BranchName: branchName}, nil
}

// Create checks out a new branch from the current commit; an existing branch
// of the same name is a failure surfaced from git.
func (service *Service) Create(executionContext context.Context, options CreateOptions) error {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return verifyError
	}

	branchName := strings.TrimSpace(options.BranchName)
	_, createError := service.executeGit(executionContext, options.RepositoryPath, gitSwitchSubcommandConstant, gitSwitchCreateFlagConstant, branchName)
	return createError
}

// Delete removes a local branch; unmerged branches fail the way `git branch -d` does.
func (service *Service) Delete(executionContext context.Context, options DeleteOptions) error {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return verifyError
	}

	branchName := strings.TrimSpace(options.BranchName)
	_, deleteError := service.executeGit(executionContext, options.RepositoryPath, gitBranchSubcommandConstant, gitBranchDeleteFlagConstant, branchName)
	return deleteError
}

func (service *Service) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{terminalPromptEnvironmentName: terminalPromptDisabledValue},
	})
}
