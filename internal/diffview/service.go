package diffview

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
)

const (
	gitDiffSubcommandConstant     = "diff"
	gitCachedFlagConstant         = "--cached"
	gitStatFlagConstant           = "--stat"
	gitColorFlagTemplateConstant  = "--color="
	gitPathSeparatorFlagConstant  = "--"
	colorModeAlwaysConstant       = "always"
	colorModeNeverConstant        = "never"
	terminalPromptEnvironmentName = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValue   = "0"
)

// Options configures a diff request.
type Options struct {
	RepositoryPath string
	Staged         bool
	Stat           bool
	DisableColor   bool
	Paths          []string
}

// Service produces diffs by delegating rendering to git itself.
type Service struct {
	logger            *zap.Logger
	gitExecutor       gitrepo.GitExecutor
	repositoryManager *gitrepo.RepositoryManager
}

// NewService constructs a diff service around the provided git executor.
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

// Diff returns git's rendered comparison for the requested scope. An empty
// string means the compared trees are identical.
func (service *Service) Diff(executionContext context.Context, options Options) (string, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return "", verifyError
	}

	executionResult, executionError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            buildDiffArguments(options),
		WorkingDirectory:     options.RepositoryPath,
		EnvironmentVariables: map[string]string{terminalPromptEnvironmentName: terminalPromptDisabledValue},
	})
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}

func buildDiffArguments(options Options) []string {
	diffArguments := []string{gitDiffSubcommandConstant}
	if options.Staged {
		diffArguments = append(diffArguments, gitCachedFlagConstant)
	}
	if options.Stat {
		diffArguments = append(diffArguments, gitStatFlagConstant)
	}

	colorMode := colorModeAlwaysConstant
	if options.DisableColor {
		colorMode = colorModeNeverConstant
	}
	diffArguments = append(diffArguments, gitColorFlagTemplateConstant+colorMode)

	if len(options.Paths) > 0 {
		diffArguments = append(diffArguments, gitPathSeparatorFlagConstant)
		diffArguments = append(diffArguments, options.Paths...)
	}
	return diffArguments
}
