package branches_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitq-dev/gitq/internal/branches"
	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/utils"
)

func runBranchCommand(testInstance *testing.T, gitExecutor *scriptedGitExecutor, commandArguments []string) (string, error) {
	testInstance.Helper()

	builder := &branches.CommandBuilder{
		Executor:        gitExecutor,
		ContextAccessor: utils.NewCommandContextAccessor(),
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs(commandArguments)

	accessor := utils.NewCommandContextAccessor()
	executionError := command.ExecuteContext(accessor.WithRepositoryPath(context.Background(), "/tmp/project"))
	return outputBuffer.String(), executionError
}

func TestBranchCommandRegistersManagementFlags(testInstance *testing.T) {
	builder := &branches.CommandBuilder{ContextAccessor: utils.NewCommandContextAccessor()}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	require.NotNil(testInstance, command.Flags().Lookup("all"))
	require.NotNil(testInstance, command.Flags().Lookup("create"))
	require.NotNil(testInstance, command.Flags().Lookup("delete"))
}

func TestBranchCommandAllFlagListsRemoteBranches(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{StandardOutput: "main\n"},
			{StandardOutput: "main\norigin/main\n"},
		},
	}

	commandOutput, executionError := runBranchCommand(testInstance, gitExecutor, []string{"--all"})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"branch", "--all", "--format=%(refname:short)"}, gitExecutor.executedCommands[2].Arguments)
	require.Contains(testInstance, commandOutput, "origin/main")
}

func TestBranchCommandCreateFlag(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{},
		},
	}

	commandOutput, executionError := runBranchCommand(testInstance, gitExecutor, []string{"--create", "feature/search"})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"switch", "--create", "feature/search"}, gitExecutor.executedCommands[1].Arguments)
	require.Contains(testInstance, commandOutput, "created and switched to feature/search")
}

func TestBranchCommandDeleteFlag(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{
		scriptedResults: []execshell.ExecutionResult{
			{StandardOutput: "true\n"},
			{},
		},
	}

	commandOutput, executionError := runBranchCommand(testInstance, gitExecutor, []string{"--delete", "feature/done"})
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"branch", "-d", "feature/done"}, gitExecutor.executedCommands[1].Arguments)
	require.Contains(testInstance, commandOutput, "deleted feature/done")
}

func TestBranchCommandRejectsCreateCombinedWithDelete(testInstance *testing.T) {
	gitExecutor := &scriptedGitExecutor{}

	_, executionError := runBranchCommand(testInstance, gitExecutor, []string{"--create", "a", "--delete", "b"})
	require.Error(testInstance, executionError)
	require.Empty(testInstance, gitExecutor.executedCommands)
}
