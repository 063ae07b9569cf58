package hints_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
	"github.com/gitq-dev/gitq/internal/hints"
)

func failedGitCommand(commandArguments ...string) execshell.CommandFailedError {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{
			Name:    execshell.CommandGit,
			Details: execshell.CommandDetails{Arguments: commandArguments},
		},
		Result: execshell.ExecutionResult{ExitCode: 1},
	}
}

func TestForError(testInstance *testing.T) {
	testCases := []struct {
		name         string
		failure      error
		expectedHint string
	}{
		{
			name:         "nil_error_yields_no_hint",
			failure:      nil,
			expectedHint: "",
		},
		{
			name:         "not_a_repository",
			failure:      fmt.Errorf("checking worktree: %w", gitrepo.ErrNotARepository),
			expectedHint: "run this command inside a git repository, or create one with `git init`",
		},
		{
			name: "git_binary_unavailable",
			failure: execshell.CommandExecutionError{
				Command: execshell.ShellCommand{Name: execshell.CommandGit},
				Cause:   errors.New("executable file not found in $PATH"),
			},
			expectedHint: "install git and make sure it is on your PATH",
		},
		{
			name:         "rejected_push",
			failure:      failedGitCommand("push"),
			expectedHint: "fetch remote changes first with `gitq sync`, then push again",
		},
		{
			name:         "pull_with_conflicts",
			failure:      failedGitCommand("pull", "--rebase", "--autostash"),
			expectedHint: "resolve the reported conflicts, then run `gitq save`",
		},
		{
			name:         "stash_pop_conflict",
			failure:      failedGitCommand("stash", "pop"),
			expectedHint: "resolve the reported conflicts; the stash entry is kept until it applies cleanly",
		},
		{
			name:         "stash_push_failure_has_no_hint",
			failure:      failedGitCommand("stash", "push"),
			expectedHint: "",
		},
		{
			name:         "missing_upstream",
			failure:      failedGitCommand("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"),
			expectedHint: "publish the branch with `git push --set-upstream origin <branch>`",
		},
		{
			name:         "unrecognized_failure_has_no_hint",
			failure:      failedGitCommand("commit", "-m", "message"),
			expectedHint: "",
		},
		{
			name:         "unrelated_error_has_no_hint",
			failure:      errors.New("disk full"),
			expectedHint: "",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedHint, hints.ForError(testCase.failure))
		})
	}
}
