package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitq-dev/gitq/internal/utils"
)

type sampleConfiguration struct {
	Common struct {
		LogLevel string `mapstructure:"log_level"`
		NoColor  bool   `mapstructure:"no_color"`
	} `mapstructure:"common"`
	Tools struct {
		Quick struct {
			Push bool `mapstructure:"push"`
		} `mapstructure:"quick"`
		Log struct {
			Limit int `mapstructure:"limit"`
		} `mapstructure:"log"`
	} `mapstructure:"tools"`
}

func writeConfigurationFile(testInstance *testing.T, configurationContent string) string {
	testInstance.Helper()
	configurationFilePath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
	return configurationFilePath
}

func TestConfigurationLoaderAppliesDefaults(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader("config", "yaml", "GITQ", nil)

	var loadedConfiguration sampleConfiguration
	loadedMetadata, loadError := loader.LoadConfiguration("", map[string]any{
		"common.log_level": "info",
		"tools.log.limit":  10,
	}, &loadedConfiguration)

	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loadedMetadata.ConfigFileUsed)
	require.Equal(testInstance, "info", loadedConfiguration.Common.LogLevel)
	require.Equal(testInstance, 10, loadedConfiguration.Tools.Log.Limit)
	require.False(testInstance, loadedConfiguration.Tools.Quick.Push)
}

func TestConfigurationLoaderReadsFile(testInstance *testing.T) {
	configurationFilePath := writeConfigurationFile(testInstance, ""+
		"common:\n"+
		"  log_level: debug\n"+
		"  no_color: true\n"+
		"tools:\n"+
		"  quick:\n"+
		"    push: true\n"+
		"  log:\n"+
		"    limit: 25\n")

	loader := utils.NewConfigurationLoader("config", "yaml", "GITQ", nil)

	var loadedConfiguration sampleConfiguration
	loadedMetadata, loadError := loader.LoadConfiguration(configurationFilePath, map[string]any{
		"common.log_level": "info",
		"tools.log.limit":  10,
	}, &loadedConfiguration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationFilePath, loadedMetadata.ConfigFileUsed)
	require.Equal(testInstance, "debug", loadedConfiguration.Common.LogLevel)
	require.True(testInstance, loadedConfiguration.Common.NoColor)
	require.True(testInstance, loadedConfiguration.Tools.Quick.Push)
	require.Equal(testInstance, 25, loadedConfiguration.Tools.Log.Limit)
}

func TestConfigurationLoaderEnvironmentOverride(testInstance *testing.T) {
	configurationFilePath := writeConfigurationFile(testInstance, ""+
		"common:\n"+
		"  log_level: info\n")

	testInstance.Setenv("GITQ_COMMON_LOG_LEVEL", "error")

	loader := utils.NewConfigurationLoader("config", "yaml", "GITQ", nil)

	var loadedConfiguration sampleConfiguration
	_, loadError := loader.LoadConfiguration(configurationFilePath, map[string]any{
		"common.log_level": "info",
	}, &loadedConfiguration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "error", loadedConfiguration.Common.LogLevel)
}

func TestConfigurationLoaderRejectsMalformedFile(testInstance *testing.T) {
	configurationFilePath := writeConfigurationFile(testInstance, "common: [unclosed\n")

	loader := utils.NewConfigurationLoader("config", "yaml", "GITQ", nil)

	var loadedConfiguration sampleConfiguration
	_, loadError := loader.LoadConfiguration(configurationFilePath, nil, &loadedConfiguration)
	require.Error(testInstance, loadError)
}
