package syncer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/syncer"
)

type scriptedGitExecutor struct {
	executedCommands []execshell.CommandDetails
	scriptedResults  []execshell.ExecutionResult
	scriptedErrors   []error
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	invocationIndex := len(executor.executedCommands)
	executor.executedCommands = append(executor.executedCommands, details)

	var scriptedError error
	if invocationIndex < len(executor.scriptedErrors) {
		scriptedError = executor.scriptedErrors[invocationIndex]
	}
	scriptedResult := execshell.ExecutionResult{}
	if invocationIndex < len(executor.scriptedResults) {
		scriptedResult = executor.scriptedResults[invocationIndex]
	}
	return scriptedResult, scriptedError
}

func TestServiceSyncPullsAndPushes(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: "origin/main\n"},
			{},
			{StandardOutput: "0\t2\n"},
			{},
		},
	}

	service, serviceError := syncer.NewService(zap.NewNop(), gitExecutor)
	require.NoError(testInstance, serviceError)

	syncResult, syncError := service.Sync(context.Background(), syncer.Options{RepositoryPath: "/tmp/project"})
	require.NoError(testInstance, syncError)

	require.Equal(testInstance, syncer.Result{
		UpstreamName: "origin/main",
		Pulled:       true,
		Pushed:       true,
		PushedCount:  2,
	}, syncResult)
	require.Equal(testInstance, []string{"pull", "--rebase", "--autostash"}, gitExecutor.executedCommands[2].Arguments)
	require.Equal(testInstance, []string{"push"}, gitExecutor.executedCommands[4].Arguments)
}

func TestServiceSyncUpToDateSkipsPush(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: "origin/main\n"},
			{},
			{StandardOutput: "0\t0\n"},
		},
	}

	service, serviceError := syncer.NewService(zap.NewNop(), gitExecutor)
	require.NoError(testInstance, serviceError)

	syncResult, syncError := service.Sync(context.Background(), syncer.Options{RepositoryPath: "/tmp/project"})
	require.NoError(testInstance, syncError)
	require.True(testInstance, syncResult.Pulled)
	require.False(testInstance, syncResult.Pushed)
	require.Len(testInstance, gitExecutor.executedCommands, 4)
}

func TestServiceSyncWithoutUpstream(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{},
		},
		scriptedErrors: []error{
			nil,
			execshell.CommandFailedError{
				Command: execshell.ShellCommand{
					Name:    execshell.CommandGit,
					Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"}},
				},
				Result: execshell.ExecutionResult{ExitCode: 128},
			},
		},
	}

	service, serviceError := syncer.NewService(zap.NewNop(), gitExecutor)
	require.NoError(testInstance, serviceError)

	_, syncError := service.Sync(context.Background(), syncer.Options{RepositoryPath: "/tmp/project"})
	require.ErrorIs(testInstance, syncError, syncer.ErrNoUpstream)
	require.Len(testInstance, gitExecutor.executedCommands, 2)
}

func TestServiceSyncRebaseConflictSurfaces(testInstance *testing.T) {
	conflictFailure := execshell.CommandFailedError{
		Command: execshell.ShellCommand{
			Name:    execshell.CommandGit,
			Details: execshell.CommandDetails{Arguments: []string{"pull", "--rebase", "--autostash"}},
		},
		Result: execshell.ExecutionResult{ExitCode: 1, StandardError: "CONFLICT (content): Merge conflict in server.go"},
	}
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: "origin/main\n"},
		},
		scriptedErrors: []error{nil, nil, conflictFailure},
	}

	service, serviceError := syncer.NewService(zap.NewNop(), gitExecutor)
	require.NoError(testInstance, serviceError)

	_, syncError := service.Sync(context.Background(), syncer.Options{RepositoryPath: "/tmp/project"})
	targetFailure := execshell.CommandFailedError{}
	require.ErrorAs(testInstance, syncError, &targetFailure)
	require.Equal(testInstance, 1, targetFailure.Result.ExitCode)
}
