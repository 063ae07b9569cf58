package syncer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
)

const (
	gitPullSubcommandConstant     = "pull"
	gitRebaseFlagConstant         = "--rebase"
	gitAutostashFlagConstant      = "--autostash"
	gitPushSubcommandConstant     = "push"
	terminalPromptEnvironmentName = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValue   = "0"
	noUpstreamMessageConstant     = "no upstream branch configured"
)

// ErrNoUpstream indicates the current branch tracks no upstream branch.
var ErrNoUpstream = errors.New(noUpstreamMessageConstant)

// Options configures a sync request.
type Options struct {
	RepositoryPath string
}

// Result reports what the sync performed.
type Result struct {
	UpstreamName string
	Pulled       bool
	Pushed       bool
	PushedCount  int
}

// Service reconciles the current branch with its upstream.
type Service struct {
	logger            *zap.Logger
	gitExecutor       gitrepo.GitExecutor
	repositoryManager *gitrepo.RepositoryManager
}

// NewService constructs a sync service around the provided git executor.
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

// Sync rebases local work onto the upstream, stashing uncommitted changes
// around the rebase, and pushes when local commits remain unpublished.
// Branches without an upstream fail with ErrNoUpstream.
func (service *Service) Sync(executionContext context.Context, options Options) (Result, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return Result{}, verifyError
	}

	upstreamName, upstreamError := service.repositoryManager.GetUpstreamBranch(executionContext, options.RepositoryPath)
	if upstreamError != nil {
		return Result{}, upstreamError
	}
	if len(upstreamName) == 0 {
		return Result{}, ErrNoUpstream
	}

	if _, pullError := service.executeGit(executionContext, options.RepositoryPath, gitPullSubcommandConstant, gitRebaseFlagConstant, gitAutostashFlagConstant); pullError != nil {
		return Result{}, pullError
	}

	syncCounts, countError := service.repositoryManager.CountAheadBehind(executionContext, options.RepositoryPath)
	if countError != nil {
		return Result{}, countError
	}
	if syncCounts.Ahead == 0 {
		return Result{UpstreamName: upstreamName, Pulled: true}, nil
	}

	if _, pushError := service.executeGit(executionContext, options.RepositoryPath, gitPushSubcommandConstant); pushError != nil {
		return Result{}, pushError
	}
	return Result{UpstreamName: upstreamName, Pulled: true, Pushed: true, PushedCount: syncCounts.Ahead}, nil
}

func (service *Service) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{terminalPromptEnvironmentName: terminalPromptDisabledValue},
	})
}
