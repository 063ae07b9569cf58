package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationGitExecutableConstant      = "git"
	integrationGoExecutableConstant       = "go"
	integrationRunSubcommandConstant      = "run"
	integrationModulePathConstant         = "."
	integrationRepositoryFlagConstant     = "--repo"
	integrationLogLevelFlagConstant       = "--log-level"
	integrationErrorLogLevelConstant      = "error"
	integrationNoColorFlagConstant        = "--no-color"
	integrationCommandTimeoutConstant     = 30 * time.Second
	integrationInitialBranchFlagConstant  = "--initial-branch=main"
	integrationCommitterNameConstant      = "Integration Tester"
	integrationCommitterEmailConstant     = "integration@example.com"
	integrationGitMissingSkipConstant     = "git executable not available on PATH"
	integrationInitialFileNameConstant    = "README.md"
	integrationInitialFileContentConstant = "# fixture\n"
	integrationInitialCommitMessage       = "initial commit"
)

// requireGit skips the test when no git executable is installed.
func requireGit(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookError := exec.LookPath(integrationGitExecutableConstant); lookError != nil {
		testInstance.Skip(integrationGitMissingSkipConstant)
	}
}

// moduleRootDirectory returns the repository root holding the main module.
func moduleRootDirectory(testInstance *testing.T) string {
	testInstance.Helper()
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	return filepath.Dir(workingDirectory)
}

// runGit executes a git command inside the provided repository and fails the
// test on a non-zero exit.
func runGit(testInstance *testing.T, repositoryPath string, arguments ...string) string {
	testInstance.Helper()
	gitArguments := append([]string{"-C", repositoryPath}, arguments...)
	command := exec.Command(integrationGitExecutableConstant, gitArguments...)
	outputBytes, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(outputBytes))
	return string(outputBytes)
}

// initializeRepository creates a fresh git repository with commit identity
// configured and returns its path.
func initializeRepository(testInstance *testing.T) string {
	testInstance.Helper()
	repositoryPath := testInstance.TempDir()
	initCommand := exec.Command(integrationGitExecutableConstant, "init", integrationInitialBranchFlagConstant, repositoryPath)
	outputBytes, initError := initCommand.CombinedOutput()
	require.NoError(testInstance, initError, string(outputBytes))
	runGit(testInstance, repositoryPath, "config", "user.name", integrationCommitterNameConstant)
	runGit(testInstance, repositoryPath, "config", "user.email", integrationCommitterEmailConstant)
	return repositoryPath
}

// initializeRepositoryWithCommit creates a repository that already has an
// initial commit, which several commands require.
func initializeRepositoryWithCommit(testInstance *testing.T) string {
	testInstance.Helper()
	repositoryPath := initializeRepository(testInstance)
	writeRepositoryFile(testInstance, repositoryPath, integrationInitialFileNameConstant, integrationInitialFileContentConstant)
	runGit(testInstance, repositoryPath, "add", "--all")
	runGit(testInstance, repositoryPath, "commit", "-m", integrationInitialCommitMessage)
	return repositoryPath
}

func writeRepositoryFile(testInstance *testing.T, repositoryPath string, fileName string, content string) {
	testInstance.Helper()
	writeError := os.WriteFile(filepath.Join(repositoryPath, fileName), []byte(content), 0o600)
	require.NoError(testInstance, writeError)
}

// runCLI executes the compiled CLI via the go toolchain against the provided
// repository and returns the combined output alongside the execution error.
func runCLI(testInstance *testing.T, repositoryPath string, arguments ...string) (string, error) {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationCommandTimeoutConstant)
	defer cancelFunction()

	commandArguments := []string{
		integrationRunSubcommandConstant,
		integrationModulePathConstant,
		integrationRepositoryFlagConstant, repositoryPath,
		integrationLogLevelFlagConstant, integrationErrorLogLevelConstant,
		integrationNoColorFlagConstant,
	}
	commandArguments = append(commandArguments, arguments...)

	command := exec.CommandContext(executionContext, integrationGoExecutableConstant, commandArguments...)
	command.Dir = moduleRootDirectory(testInstance)
	command.Env = os.Environ()

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}
