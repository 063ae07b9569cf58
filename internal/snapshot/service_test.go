package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
	"github.com/gitq-dev/gitq/internal/snapshot"
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

func (executor *scriptedGitExecutor) argumentsOfCommand(commandIndex int) []string {
	return executor.executedCommands[commandIndex].Arguments
}

func newService(testInstance *testing.T, gitExecutor gitrepo.GitExecutor) *snapshot.Service {
	testInstance.Helper()
	service, serviceError := snapshot.NewService(zap.NewNop(), gitExecutor)
	require.NoError(testInstance, serviceError)
	return service
}

func TestServiceSaveStagesEverythingAndCommits(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: "?? notes.txt\n M server.go\n"},
			{},
			{StandardOutput: "A  notes.txt\nM  server.go\n"},
			{},
		},
	}

	service := newService(testInstance, gitExecutor)
	saveResult, saveError := service.Save(context.Background(), snapshot.SaveOptions{RepositoryPath: "/tmp/project"})
	require.NoError(testInstance, saveError)

	require.True(testInstance, saveResult.Committed)
	require.Equal(testInstance, "Update 2 files: 1 added, 1 modified", saveResult.CommitMessage)
	require.Equal(testInstance, []string{"add", "--all"}, gitExecutor.argumentsOfCommand(2))
	require.Equal(testInstance, []string{"commit", "-m", saveResult.CommitMessage}, gitExecutor.argumentsOfCommand(4))
}

func TestServiceSaveUsesExplicitMessage(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: " M server.go\n"},
			{},
			{StandardOutput: "M  server.go\n"},
			{},
		},
	}

	service := newService(testInstance, gitExecutor)
	saveResult, saveError := service.Save(context.Background(), snapshot.SaveOptions{
		RepositoryPath: "/tmp/project",
		Message:        "Fix login redirect",
	})
	require.NoError(testInstance, saveError)

	require.True(testInstance, saveResult.Committed)
	require.Equal(testInstance, "Fix login redirect", saveResult.CommitMessage)
	require.Equal(testInstance, []string{"commit", "-m", "Fix login redirect"}, gitExecutor.argumentsOfCommand(4))
}

func TestServiceSaveSingleUntrackedFileGeneratesAddMessage(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: "?? src/app.go\n"},
			{},
			{StandardOutput: "A  src/app.go\n"},
			{},
		},
	}

	service := newService(testInstance, gitExecutor)
	saveResult, saveError := service.Save(context.Background(), snapshot.SaveOptions{RepositoryPath: "/tmp/project"})
	require.NoError(testInstance, saveError)
	require.Equal(testInstance, "Add app.go", saveResult.CommitMessage)
}

func TestServiceSaveRestrictsStagingToPaths(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: " M server.go\n M handler.go\n"},
			{},
			{StandardOutput: "M  server.go\n M handler.go\n"},
			{},
		},
	}

	service := newService(testInstance, gitExecutor)
	saveResult, saveError := service.Save(context.Background(), snapshot.SaveOptions{
		RepositoryPath: "/tmp/project",
		Paths:          []string{"server.go"},
	})
	require.NoError(testInstance, saveError)

	require.Equal(testInstance, []string{"add", "--", "server.go"}, gitExecutor.argumentsOfCommand(2))
	require.Equal(testInstance, "Update server.go", saveResult.CommitMessage)
}

func TestServiceSaveCleanWorktreeIsNoOp(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: ""},
		},
	}

	service := newService(testInstance, gitExecutor)
	saveResult, saveError := service.Save(context.Background(), snapshot.SaveOptions{RepositoryPath: "/tmp/project"})
	require.NoError(testInstance, saveError)
	require.False(testInstance, saveResult.Committed)
	require.Len(testInstance, gitExecutor.executedCommands, 2)
}

func TestServiceSaveOutsideRepository(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedErrors: []error{
			execshell.CommandFailedError{
				Command: execshell.ShellCommand{Name: execshell.CommandGit},
				Result:  execshell.ExecutionResult{ExitCode: 128},
			},
		},
	}

	service := newService(testInstance, gitExecutor)
	_, saveError := service.Save(context.Background(), snapshot.SaveOptions{RepositoryPath: "/tmp/not-a-repo"})
	require.ErrorIs(testInstance, saveError, gitrepo.ErrNotARepository)
}

func TestServicePushDefaultsToOrigin(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{},
		},
	}

	service := newService(testInstance, gitExecutor)
	pushError := service.Push(context.Background(), snapshot.PushOptions{RepositoryPath: "/tmp/project"})
	require.NoError(testInstance, pushError)
	require.Equal(testInstance, []string{"push", "origin"}, gitExecutor.argumentsOfCommand(1))
}

func TestServiceBackupCommitsWithTimestampAndPushes(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: " M server.go\n"},
			{},
			{StandardOutput: "M  server.go\n"},
			{},
			{StandardOutput: "true\n"},
			{},
		},
	}

	service := newService(testInstance, gitExecutor).WithTimeProvider(func() time.Time {
		return time.Date(2026, time.August, 28, 14, 30, 0, 0, time.UTC)
	})

	backupResult, backupError := service.Backup(context.Background(), snapshot.BackupOptions{
		RepositoryPath: "/tmp/project",
		RemoteName:     "mirror",
	})
	require.NoError(testInstance, backupError)

	require.True(testInstance, backupResult.Save.Committed)
	require.True(testInstance, backupResult.Pushed)
	require.Equal(testInstance, "backup: 2026-08-28 14:30:00", backupResult.Save.CommitMessage)
	require.Equal(testInstance, []string{"push", "mirror"}, gitExecutor.argumentsOfCommand(6))
}

func TestServiceBackupCleanWorktreeStillPushes(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: ""},
			{StandardOutput: "true\n"},
			{},
		},
	}

	service := newService(testInstance, gitExecutor)
	backupResult, backupError := service.Backup(context.Background(), snapshot.BackupOptions{RepositoryPath: "/tmp/project"})
	require.NoError(testInstance, backupError)

	require.False(testInstance, backupResult.Save.Committed)
	require.True(testInstance, backupResult.Pushed)
	require.Equal(testInstance, []string{"push", "origin"}, gitExecutor.argumentsOfCommand(3))
}
