package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitq-dev/gitq/internal/execshell"
)

const (
	testMessagesWorkingDirectoryConstant = "/tmp/project"
)

func gitCommand(arguments ...string) execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: testMessagesWorkingDirectoryConstant,
		},
	}
}

func TestCommandMessageFormatterStartMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         execshell.ShellCommand
		expectedMessage string
	}{
		{
			name:            "worktree_check",
			command:         gitCommand("rev-parse", "--is-inside-work-tree"),
			expectedMessage: "Analyzing repository at /tmp/project",
		},
		{
			name:            "current_branch",
			command:         gitCommand("rev-parse", "--abbrev-ref", "HEAD"),
			expectedMessage: "Identifying current branch in /tmp/project",
		},
		{
			name:            "status",
			command:         gitCommand("status", "--porcelain"),
			expectedMessage: "Reviewing working tree status in /tmp/project",
		},
		{
			name:            "stash_push",
			command:         gitCommand("stash", "push", "-m", "wip"),
			expectedMessage: "Running stash push in /tmp/project",
		},
		{
			name:            "stage_all",
			command:         gitCommand("add", "--all"),
			expectedMessage: "Staging all changes in /tmp/project",
		},
		{
			name:            "stage_path",
			command:         gitCommand("add", "--", "src/app.go"),
			expectedMessage: "Staging src/app.go in /tmp/project",
		},
		{
			name:            "commit",
			command:         gitCommand("commit", "-m", "Add app.go"),
			expectedMessage: `Creating commit in /tmp/project with message "Add app.go"`,
		},
		{
			name:            "push",
			command:         gitCommand("push"),
			expectedMessage: "Pushing from /tmp/project",
		},
		{
			name:            "pull",
			command:         gitCommand("pull", "--rebase"),
			expectedMessage: "Pulling latest changes into /tmp/project",
		},
		{
			name:            "reset_hard",
			command:         gitCommand("reset", "--hard", "HEAD"),
			expectedMessage: "Discarding working tree changes in /tmp/project",
		},
		{
			name:            "reset_soft",
			command:         gitCommand("reset", "--soft", "HEAD~1"),
			expectedMessage: "Rewinding last commit in /tmp/project",
		},
		{
			name:            "clean",
			command:         gitCommand("clean", "-fd"),
			expectedMessage: "Removing untracked files from /tmp/project",
		},
		{
			name:            "diff",
			command:         gitCommand("diff", "--stat"),
			expectedMessage: "Computing diff in /tmp/project",
		},
		{
			name:            "branch_listing",
			command:         gitCommand("branch", "--format=%(refname:short)"),
			expectedMessage: "Listing branches in /tmp/project",
		},
		{
			name:            "branch_delete",
			command:         gitCommand("branch", "-d", "feature/done"),
			expectedMessage: "Deleting branch feature/done in /tmp/project",
		},
		{
			name:            "switch",
			command:         gitCommand("switch", "feature/login"),
			expectedMessage: "Switching to branch feature/login in /tmp/project",
		},
		{
			name:            "switch_create",
			command:         gitCommand("switch", "--create", "feature/new"),
			expectedMessage: "Creating and switching to branch feature/new in /tmp/project",
		},
		{
			name:            "log",
			command:         gitCommand("log", "--oneline", "--max-count", "10"),
			expectedMessage: "Collecting recent history in /tmp/project",
		},
		{
			name:            "generic_remote",
			command:         gitCommand("remote", "get-url", "origin"),
			expectedMessage: "Running git remote get-url origin (in /tmp/project)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildStartedMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterSuccessUsesResult(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	branchMessage := formatter.BuildSuccessMessage(
		gitCommand("rev-parse", "--abbrev-ref", "HEAD"),
		execshell.ExecutionResult{StandardOutput: "main\n"},
	)
	require.Equal(testInstance, "Current branch in /tmp/project is main", branchMessage)

	detachedMessage := formatter.BuildSuccessMessage(
		gitCommand("rev-parse", "--abbrev-ref", "HEAD"),
		execshell.ExecutionResult{StandardOutput: "HEAD\n"},
	)
	require.Equal(testInstance, "/tmp/project is in a detached HEAD state", detachedMessage)

	upstreamMissingMessage := formatter.BuildSuccessMessage(
		gitCommand("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"),
		execshell.ExecutionResult{},
	)
	require.Equal(testInstance, "No upstream branch configured in /tmp/project", upstreamMissingMessage)
}

func TestCommandMessageFormatterFailureMessages(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	failureMessage := formatter.BuildFailureMessage(
		gitCommand("commit", "-m", "Save work"),
		execshell.ExecutionResult{ExitCode: 1, StandardError: "nothing to commit\n"},
	)
	require.Equal(testInstance, `Failed to create commit in /tmp/project with message "Save work" (exit code 1: nothing to commit)`, failureMessage)

	executionFailureMessage := formatter.BuildExecutionFailureMessage(
		gitCommand("push"),
		errors.New("executable not found"),
	)
	require.Equal(testInstance, "Unable to push from /tmp/project: executable not found", executionFailureMessage)
}
