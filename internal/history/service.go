package history

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
)

const (
	gitLogSubcommandConstant      = "log"
	gitOnelineFlagConstant        = "--oneline"
	gitDecorateFlagConstant       = "--decorate"
	gitMaxCountFlagConstant       = "--max-count"
	gitColorFlagTemplateConstant  = "--color="
	colorModeAlwaysConstant       = "always"
	colorModeNeverConstant        = "never"
	terminalPromptEnvironmentName = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValue   = "0"
	defaultEntryLimitConstant     = 10
)

// Options configures a condensed log request.
type Options struct {
	RepositoryPath string
	Limit          int
	DisableColor   bool
}

// Service renders the recent commit history through git log.
type Service struct {
	logger            *zap.Logger
	gitExecutor       gitrepo.GitExecutor
	repositoryManager *gitrepo.RepositoryManager
}

// NewService constructs a history service around the provided git executor.
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

// Recent returns git's one-line-per-commit rendering of the newest entries.
// A non-positive limit falls back to the default of 10.
func (service *Service) Recent(executionContext context.Context, options Options) (string, error) {
	if verifyError := service.repositoryManager.EnsureWorkTree(executionContext, options.RepositoryPath); verifyError != nil {
		return "", verifyError
	}

	entryLimit := options.Limit
	if entryLimit <= 0 {
		entryLimit = defaultEntryLimitConstant
	}

	colorMode := colorModeAlwaysConstant
	if options.DisableColor {
		colorMode = colorModeNeverConstant
	}

	executionResult, executionError := service.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitLogSubcommandConstant,
			gitOnelineFlagConstant,
			gitDecorateFlagConstant,
			gitMaxCountFlagConstant, strconv.Itoa(entryLimit),
			gitColorFlagTemplateConstant + colorMode,
		},
		WorkingDirectory:     options.RepositoryPath,
		EnvironmentVariables: map[string]string{terminalPromptEnvironmentName: terminalPromptDisabledValue},
	})
	if executionError != nil {
		return "", executionError
	}
	return executionResult.StandardOutput, nil
}
