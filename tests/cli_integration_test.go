package tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	quickSaveFileNameConstant       = "notes.txt"
	quickSaveFileContentConstant    = "remember the milk\n"
	quickSaveExpectedMessage        = "Add notes.txt"
	statusMissingRepositorySnippet  = "git repository"
	listExpectedStatusToolConstant  = "status"
	listExpectedQuickToolConstant   = "quick"
	stashFileNameConstant           = "draft.go"
	stashFileContentConstant        = "package draft\n"
	freshFileNameConstant           = "scratch.txt"
	freshFileContentConstant        = "temporary\n"
	undoSecondFileNameConstant      = "second.txt"
	undoSecondFileContentConstant   = "second\n"
	undoSecondCommitMessageConstant = "second commit"
)

func TestQuickCommitsUntrackedFileWithAutomaticMessage(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)
	writeRepositoryFile(testInstance, repositoryPath, quickSaveFileNameConstant, quickSaveFileContentConstant)

	outputText, runError := runCLI(testInstance, repositoryPath, "quick", "--no-push")
	require.NoError(testInstance, runError, outputText)

	logOutput := runGit(testInstance, repositoryPath, "log", "--oneline", "--max-count", "1")
	require.Contains(testInstance, logOutput, quickSaveExpectedMessage)

	porcelainOutput := runGit(testInstance, repositoryPath, "status", "--porcelain")
	require.Empty(testInstance, strings.TrimSpace(porcelainOutput))
}

func TestSaveUsesExplicitMessage(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)
	writeRepositoryFile(testInstance, repositoryPath, quickSaveFileNameConstant, quickSaveFileContentConstant)

	outputText, runError := runCLI(testInstance, repositoryPath, "save", "checkpoint before refactor")
	require.NoError(testInstance, runError, outputText)

	logOutput := runGit(testInstance, repositoryPath, "log", "--oneline", "--max-count", "1")
	require.Contains(testInstance, logOutput, "checkpoint before refactor")
}

func TestSaveWithCleanWorktreeSucceedsWithoutCommit(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)

	outputText, runError := runCLI(testInstance, repositoryPath, "save")
	require.NoError(testInstance, runError, outputText)
	require.Contains(testInstance, outputText, "nothing to commit")

	logOutput := runGit(testInstance, repositoryPath, "log", "--oneline")
	require.Len(testInstance, strings.Split(strings.TrimSpace(logOutput), "\n"), 1)
}

func TestStatusOutsideRepositoryFailsWithHint(testInstance *testing.T) {
	requireGit(testInstance)
	emptyDirectory := testInstance.TempDir()

	outputText, runError := runCLI(testInstance, emptyDirectory, "status")
	require.Error(testInstance, runError)
	require.Contains(testInstance, outputText, statusMissingRepositorySnippet)
}

func TestStatusIsIdempotent(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)
	writeRepositoryFile(testInstance, repositoryPath, integrationInitialFileNameConstant, "# fixture updated\n")

	firstOutput, firstError := runCLI(testInstance, repositoryPath, "status")
	require.NoError(testInstance, firstError, firstOutput)
	secondOutput, secondError := runCLI(testInstance, repositoryPath, "status")
	require.NoError(testInstance, secondError, secondOutput)

	require.Equal(testInstance, firstOutput, secondOutput)
	porcelainOutput := runGit(testInstance, repositoryPath, "status", "--porcelain")
	require.Contains(testInstance, porcelainOutput, integrationInitialFileNameConstant)
}

func TestStashShelvesAndPopRestoresChanges(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)
	writeRepositoryFile(testInstance, repositoryPath, stashFileNameConstant, stashFileContentConstant)

	stashOutput, stashError := runCLI(testInstance, repositoryPath, "stash", "work in progress")
	require.NoError(testInstance, stashError, stashOutput)
	porcelainAfterStash := runGit(testInstance, repositoryPath, "status", "--porcelain")
	require.Empty(testInstance, strings.TrimSpace(porcelainAfterStash))

	listOutput, listError := runCLI(testInstance, repositoryPath, "stash", "list")
	require.NoError(testInstance, listError, listOutput)
	require.Contains(testInstance, listOutput, "work in progress")

	popOutput, popError := runCLI(testInstance, repositoryPath, "stash", "pop")
	require.NoError(testInstance, popError, popOutput)
	porcelainAfterPop := runGit(testInstance, repositoryPath, "status", "--porcelain")
	require.Contains(testInstance, porcelainAfterPop, stashFileNameConstant)
}

func TestFreshDiscardsEverythingWithForce(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)
	writeRepositoryFile(testInstance, repositoryPath, integrationInitialFileNameConstant, "# fixture altered\n")
	writeRepositoryFile(testInstance, repositoryPath, freshFileNameConstant, freshFileContentConstant)

	outputText, runError := runCLI(testInstance, repositoryPath, "fresh", "--force", "--clean")
	require.NoError(testInstance, runError, outputText)

	porcelainOutput := runGit(testInstance, repositoryPath, "status", "--porcelain")
	require.Empty(testInstance, strings.TrimSpace(porcelainOutput))
}

func TestUndoRewindsLastCommitKeepingChangesStaged(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)
	writeRepositoryFile(testInstance, repositoryPath, undoSecondFileNameConstant, undoSecondFileContentConstant)
	runGit(testInstance, repositoryPath, "add", "--all")
	runGit(testInstance, repositoryPath, "commit", "-m", undoSecondCommitMessageConstant)

	outputText, runError := runCLI(testInstance, repositoryPath, "undo")
	require.NoError(testInstance, runError, outputText)

	logOutput := runGit(testInstance, repositoryPath, "log", "--oneline")
	require.NotContains(testInstance, logOutput, undoSecondCommitMessageConstant)
	porcelainOutput := runGit(testInstance, repositoryPath, "status", "--porcelain")
	require.Contains(testInstance, porcelainOutput, "A  "+undoSecondFileNameConstant)
}

func TestBranchCreatesAndSwitches(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)

	switchOutput, switchError := runCLI(testInstance, repositoryPath, "branch", "feature/login")
	require.NoError(testInstance, switchError, switchOutput)

	branchOutput := runGit(testInstance, repositoryPath, "rev-parse", "--abbrev-ref", "HEAD")
	require.Equal(testInstance, "feature/login", strings.TrimSpace(branchOutput))

	listOutput, listError := runCLI(testInstance, repositoryPath, "branch")
	require.NoError(testInstance, listError, listOutput)
	require.Contains(testInstance, listOutput, "feature/login")
	require.Contains(testInstance, listOutput, "main")
}

func TestLogShowsRecentCommits(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := initializeRepositoryWithCommit(testInstance)

	outputText, runError := runCLI(testInstance, repositoryPath, "log", "--limit", "5")
	require.NoError(testInstance, runError, outputText)
	require.Contains(testInstance, outputText, integrationInitialCommitMessage)
}

func TestListCatalogsEveryTool(testInstance *testing.T) {
	requireGit(testInstance)
	repositoryPath := testInstance.TempDir()

	outputText, runError := runCLI(testInstance, repositoryPath, "list")
	require.NoError(testInstance, runError, outputText)
	require.Contains(testInstance, outputText, listExpectedStatusToolConstant)
	require.Contains(testInstance, outputText, listExpectedQuickToolConstant)
}
