package catalog_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/gitq-dev/gitq/internal/catalog"
)

func TestLoadTools(testInstance *testing.T) {
	toolDescriptions, loadError := catalog.LoadTools()
	require.NoError(testInstance, loadError)
	require.NotEmpty(testInstance, toolDescriptions)

	toolsByName := map[string]catalog.ToolDescription{}
	for _, toolDescription := range toolDescriptions {
		require.NotEmpty(testInstance, toolDescription.Name)
		require.NotEmpty(testInstance, toolDescription.Summary)
		toolsByName[toolDescription.Name] = toolDescription
	}

	for _, expectedToolName := range []string{"status", "diff", "branch", "stash", "save", "quick", "backup", "sync", "fresh", "undo", "log", "list"} {
		require.Contains(testInstance, toolsByName, expectedToolName)
	}

	require.False(testInstance, toolsByName["status"].Mutates)
	require.True(testInstance, toolsByName["fresh"].Mutates)
}

func TestListCommandPrintsEveryTool(testInstance *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	builder := &catalog.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs(nil)
	require.NoError(testInstance, command.Execute())

	commandOutput := outputBuffer.String()
	require.Contains(testInstance, commandOutput, "status")
	require.Contains(testInstance, commandOutput, "Stage everything and commit in one step")
	require.Contains(testInstance, commandOutput, "tools marked * modify the repository")
}
