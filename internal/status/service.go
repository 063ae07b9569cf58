package status

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/changes"
	"github.com/gitq-dev/gitq/internal/gitrepo"
	"github.com/gitq-dev/gitq/internal/render"
)

const defaultRemoteNameConstant = "origin"

// Options configures a status report request.
type Options struct {
	RepositoryPath string
	RemoteName     string
}

// Service gathers the repository state presented by the status command.
type Service struct {
	logger            *zap.Logger
	repositoryManager *gitrepo.RepositoryManager
}

// NewService constructs a status service around the provided git executor.
func NewService(logger *zap.Logger, gitExecutor gitrepo.GitExecutor) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return nil, managerError
	}

	return &Service{logger: logger, repositoryManager: repositoryManager}, nil
}

// Report assembles the status view for the repository at options.RepositoryPath.
// The repository is never mutated; reporting twice in a row yields the same view.
func (service *Service) Report(executionContext context.Context, options Options) (render.StatusView, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return render.StatusView{}, verifyError
	}

	branchName, branchError := service.repositoryManager.GetCurrentBranch(executionContext, options.RepositoryPath)
	if branchError != nil {
		return render.StatusView{}, branchError
	}

	upstreamName, upstreamError := service.repositoryManager.GetUpstreamBranch(executionContext, options.RepositoryPath)
	if upstreamError != nil {
		return render.StatusView{}, upstreamError
	}

	syncCounts := gitrepo.SyncCounts{}
	if len(upstreamName) > 0 {
		countedSync, countError := service.repositoryManager.CountAheadBehind(executionContext, options.RepositoryPath)
		if countError != nil {
			return render.StatusView{}, countError
		}
		syncCounts = countedSync
	}

	porcelainOutput, porcelainError := service.repositoryManager.GetPorcelainStatus(executionContext, options.RepositoryPath)
	if porcelainError != nil {
		return render.StatusView{}, porcelainError
	}

	return render.StatusView{
		RepositoryName: service.describeRepository(executionContext, options),
		BranchName:     branchName,
		UpstreamName:   upstreamName,
		Ahead:          syncCounts.Ahead,
		Behind:         syncCounts.Behind,
		Changes:        changes.ParsePorcelain(porcelainOutput),
	}, nil
}

func (service *Service) describeRepository(executionContext context.Context, options Options) string {
	remoteName := options.RemoteName
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}

	remoteURL, remoteError := service.repositoryManager.GetRemoteURL(executionContext, options.RepositoryPath, remoteName)
	if remoteError != nil {
		return ""
	}

	parsedRemoteURL, parseError := gitrepo.ParseRemoteURL(remoteURL)
	if parseError != nil {
		return ""
	}
	return parsedRemoteURL.DisplayName()
}
