package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gitq-dev/gitq/internal/branches"
	"github.com/gitq-dev/gitq/internal/catalog"
	"github.com/gitq-dev/gitq/internal/diffview"
	"github.com/gitq-dev/gitq/internal/hints"
	"github.com/gitq-dev/gitq/internal/history"
	"github.com/gitq-dev/gitq/internal/render"
	"github.com/gitq-dev/gitq/internal/restore"
	"github.com/gitq-dev/gitq/internal/snapshot"
	"github.com/gitq-dev/gitq/internal/stash"
	"github.com/gitq-dev/gitq/internal/status"
	"github.com/gitq-dev/gitq/internal/syncer"
	"github.com/gitq-dev/gitq/internal/utils"
	pathutils "github.com/gitq-dev/gitq/internal/utils/path"
)

const (
	applicationNameConstant                 = "gitq"
	applicationShortDescriptionConstant     = "Friendly shortcuts for everyday git workflows"
	applicationLongDescriptionConstant      = "gitq wraps the git invocations behind everyday workflows into small, safe commands with readable output. Run gitq list to see every tool."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level (debug, info, warn, error)."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	noColorFlagNameConstant                 = "no-color"
	noColorFlagUsageConstant                = "Disable colorized output."
	repositoryFlagNameConstant              = "repo"
	repositoryFlagShorthandConstant         = "C"
	repositoryFlagUsageConstant             = "Path to the repository to operate on (defaults to the working directory)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	commonNoColorConfigKeyConstant          = commonConfigurationKeyConstant + ".no_color"
	toolsQuickPushConfigKeyConstant         = "tools.quick.push"
	toolsBackupRemoteConfigKeyConstant      = "tools.backup.remote"
	toolsLogLimitConfigKeyConstant          = "tools.log.limit"
	toolsFreshConfirmConfigKeyConstant      = "tools.fresh.require_confirmation"
	environmentPrefixConstant               = "GITQ"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	repositoryPathErrorTemplateConstant     = "unable to resolve repository path: %w"
	defaultConfigurationSearchPathConstant  = "."
	defaultLogLevelConstant                 = "warn"
	defaultBackupRemoteConstant             = "origin"
	defaultLogLimitConstant                 = 10
	hintOutputTemplateConstant              = "%s\n"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging and output configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	NoColor   bool   `mapstructure:"no_color"`
}

// ApplicationToolsConfiguration holds per-tool configuration sections.
type ApplicationToolsConfiguration struct {
	Quick  QuickToolConfiguration  `mapstructure:"quick"`
	Backup BackupToolConfiguration `mapstructure:"backup"`
	Log    LogToolConfiguration    `mapstructure:"log"`
	Fresh  FreshToolConfiguration  `mapstructure:"fresh"`
}

// QuickToolConfiguration controls the quick command.
type QuickToolConfiguration struct {
	Push bool `mapstructure:"push"`
}

// BackupToolConfiguration controls the backup command.
type BackupToolConfiguration struct {
	Remote string `mapstructure:"remote"`
}

// LogToolConfiguration controls the log command.
type LogToolConfiguration struct {
	Limit int `mapstructure:"limit"`
}

// FreshToolConfiguration controls the fresh command.
type FreshToolConfiguration struct {
	RequireConfirmation bool `mapstructure:"require_confirmation"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	noColorFlagValue       bool
	repositoryFlagValue    string
	commandContextAccessor utils.CommandContextAccessor
	repositoryPathResolver *pathutils.RepositoryPathResolver
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	application := &Application{
		configurationLoader: utils.NewConfigurationLoader(
			configurationNameConstant,
			configurationTypeConstant,
			environmentPrefixConstant,
			[]string{defaultConfigurationSearchPathConstant},
		),
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		repositoryPathResolver: pathutils.NewRepositoryPathResolver(),
	}

	rootCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initialize(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	rootCommand.SetContext(context.Background())
	rootCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	rootCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	rootCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	rootCommand.PersistentFlags().BoolVar(&application.noColorFlagValue, noColorFlagNameConstant, false, noColorFlagUsageConstant)
	rootCommand.PersistentFlags().StringVarP(&application.repositoryFlagValue, repositoryFlagNameConstant, repositoryFlagShorthandConstant, "", repositoryFlagUsageConstant)

	application.registerSubcommands(rootCommand)
	application.rootCommand = rootCommand

	return application
}

// Execute runs the configured Cobra command hierarchy, prints remediation
// hints for recognized failures, and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if executionError != nil {
		if remediationHint := hints.ForError(executionError); len(remediationHint) > 0 {
			fmt.Fprintf(application.rootCommand.ErrOrStderr(), hintOutputTemplateConstant, render.HintLine(remediationHint))
		}
	}
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) registerSubcommands(rootCommand *cobra.Command) {
	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	colorDisabledProvider := func() bool {
		return application.colorDisabled()
	}

	statusBuilder := status.CommandBuilder{
		LoggerProvider:  loggerProvider,
		ContextAccessor: application.commandContextAccessor,
	}
	if statusCommand, buildError := statusBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(statusCommand)
	}

	diffBuilder := diffview.CommandBuilder{
		LoggerProvider:        loggerProvider,
		ContextAccessor:       application.commandContextAccessor,
		ColorDisabledProvider: colorDisabledProvider,
	}
	if diffCommand, buildError := diffBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(diffCommand)
	}

	branchBuilder := branches.CommandBuilder{
		LoggerProvider:  loggerProvider,
		ContextAccessor: application.commandContextAccessor,
	}
	if branchCommand, buildError := branchBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(branchCommand)
	}

	stashBuilder := stash.CommandBuilder{
		LoggerProvider:  loggerProvider,
		ContextAccessor: application.commandContextAccessor,
	}
	if stashCommand, buildError := stashBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(stashCommand)
	}

	snapshotBuilder := snapshot.CommandBuilder{
		LoggerProvider:  loggerProvider,
		ContextAccessor: application.commandContextAccessor,
		QuickPushEnabledProvider: func() bool {
			return application.configuration.Tools.Quick.Push
		},
		BackupRemoteProvider: func() string {
			return application.configuration.Tools.Backup.Remote
		},
	}
	if saveCommand, buildError := snapshotBuilder.BuildSaveCommand(); buildError == nil {
		rootCommand.AddCommand(saveCommand)
	}
	if quickCommand, buildError := snapshotBuilder.BuildQuickCommand(); buildError == nil {
		rootCommand.AddCommand(quickCommand)
	}
	if backupCommand, buildError := snapshotBuilder.BuildBackupCommand(); buildError == nil {
		rootCommand.AddCommand(backupCommand)
	}

	syncBuilder := syncer.CommandBuilder{
		LoggerProvider:  loggerProvider,
		ContextAccessor: application.commandContextAccessor,
	}
	if syncCommand, buildError := syncBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(syncCommand)
	}

	restoreBuilder := restore.CommandBuilder{
		LoggerProvider:  loggerProvider,
		ContextAccessor: application.commandContextAccessor,
		ConfirmationRequiredProvider: func() bool {
			return application.configuration.Tools.Fresh.RequireConfirmation
		},
	}
	if freshCommand, buildError := restoreBuilder.BuildFreshCommand(); buildError == nil {
		rootCommand.AddCommand(freshCommand)
	}
	if undoCommand, buildError := restoreBuilder.BuildUndoCommand(); buildError == nil {
		rootCommand.AddCommand(undoCommand)
	}

	historyBuilder := history.CommandBuilder{
		LoggerProvider:  loggerProvider,
		ContextAccessor: application.commandContextAccessor,
		LimitProvider: func() int {
			return application.configuration.Tools.Log.Limit
		},
		ColorDisabledProvider: colorDisabledProvider,
	}
	if logCommand, buildError := historyBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(logCommand)
	}

	catalogBuilder := catalog.CommandBuilder{}
	if listCommand, buildError := catalogBuilder.Build(); buildError == nil {
		rootCommand.AddCommand(listCommand)
	}
}

func (application *Application) initialize(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:    defaultLogLevelConstant,
		commonLogFormatConfigKeyConstant:   string(utils.LogFormatConsole),
		commonNoColorConfigKeyConstant:     false,
		toolsQuickPushConfigKeyConstant:    true,
		toolsBackupRemoteConfigKeyConstant: defaultBackupRemoteConstant,
		toolsLogLimitConfigKeyConstant:     defaultLogLimitConstant,
		toolsFreshConfirmConfigKeyConstant: true,
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, noColorFlagNameConstant) {
		application.configuration.Common.NoColor = application.noColorFlagValue
	}

	createdLogger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = createdLogger

	render.ConfigureColor(application.configuration.Common.NoColor)

	repositoryPath, repositoryPathError := application.repositoryPathResolver.Resolve(application.repositoryFlagValue)
	if repositoryPathError != nil {
		return fmt.Errorf(repositoryPathErrorTemplateConstant, repositoryPathError)
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(command.Context(), application.configurationMetadata.ConfigFileUsed)
		updatedContext = application.commandContextAccessor.WithRepositoryPath(updatedContext, repositoryPath)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) colorDisabled() bool {
	return application.configuration.Common.NoColor
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}
		if flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}
