package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant          = "--abbrev-ref"
	gitSymbolicFullNameFlagConstant   = "--symbolic-full-name"
	gitUpstreamReferenceConstant      = "@{u}"
	gitHeadReferenceConstant          = "HEAD"
	gitStatusSubcommandNameConstant   = "status"
	gitStashSubcommandNameConstant    = "stash"
	gitStashPushSubcommandConstant    = "push"
	gitStashPopSubcommandConstant     = "pop"
	gitStashApplySubcommandConstant   = "apply"
	gitStashDropSubcommandConstant    = "drop"
	gitStashListSubcommandConstant    = "list"
	gitAddSubcommandNameConstant      = "add"
	gitAddAllFlagConstant             = "--all"
	gitAddAllChangesLabelConstant     = "all changes"
	gitCommitSubcommandNameConstant   = "commit"
	gitMessageFlagConstant            = "-m"
	gitPushSubcommandNameConstant     = "push"
	gitPullSubcommandNameConstant     = "pull"
	gitResetSubcommandNameConstant    = "reset"
	gitResetHardFlagConstant          = "--hard"
	gitResetSoftFlagConstant          = "--soft"
	gitCleanSubcommandNameConstant    = "clean"
	gitDiffSubcommandNameConstant     = "diff"
	gitBranchSubcommandNameConstant   = "branch"
	gitBranchDeleteFlagConstant       = "-d"
	gitSwitchSubcommandNameConstant   = "switch"
	gitSwitchCreateFlagConstant       = "--create"
	gitLogSubcommandNameConstant      = "log"
)

const (
	gitWorkTreeStartTemplateConstant             = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant           = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant           = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant  = "Could not analyze %s: %s"
	gitBranchStartTemplateConstant               = "Identifying current branch in %s"
	gitBranchSuccessTemplateConstant             = "Current branch in %s is %s"
	gitBranchDetachedSuccessTemplateConstant     = "%s is in a detached HEAD state"
	gitBranchFailureTemplateConstant             = "Failed to identify current branch in %s (exit code %d%s)"
	gitBranchExecutionFailureTemplateConstant    = "Unable to identify current branch in %s: %s"
	gitUpstreamStartTemplateConstant             = "Checking upstream branch configuration in %s"
	gitUpstreamSuccessTemplateConstant           = "Upstream branch in %s is %s"
	gitUpstreamMissingSuccessTemplateConstant    = "No upstream branch configured in %s"
	gitUpstreamFailureTemplateConstant           = "Failed to check upstream branch configuration in %s (exit code %d%s)"
	gitUpstreamExecutionFailureTemplateConstant  = "Unable to check upstream branch configuration in %s: %s"
	gitStatusStartTemplateConstant               = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant             = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant             = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant    = "Unable to review working tree status in %s: %s"
	gitStashStartTemplateConstant                = "Running stash %s in %s"
	gitStashSuccessTemplateConstant              = "Stash %s completed in %s"
	gitStashFailureTemplateConstant              = "Stash %s failed in %s (exit code %d%s)"
	gitStashExecutionFailureTemplateConstant     = "Unable to run stash %s in %s: %s"
	gitAddStartTemplateConstant                  = "Staging %s in %s"
	gitAddSuccessTemplateConstant                = "Staged %s in %s"
	gitAddFailureTemplateConstant                = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant       = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant               = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant             = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant             = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant    = "Unable to create commit in %s with message %q: %s"
	gitPushStartTemplateConstant                 = "Pushing from %s"
	gitPushSuccessTemplateConstant               = "Pushed from %s"
	gitPushFailureTemplateConstant               = "Failed to push from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant      = "Unable to push from %s: %s"
	gitPullStartTemplateConstant                 = "Pulling latest changes into %s"
	gitPullSuccessTemplateConstant               = "Pulled latest changes into %s"
	gitPullFailureTemplateConstant               = "Failed to pull latest changes into %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant      = "Unable to pull latest changes into %s: %s"
	gitResetHardStartTemplateConstant            = "Discarding working tree changes in %s"
	gitResetHardSuccessTemplateConstant          = "Discarded working tree changes in %s"
	gitResetHardFailureTemplateConstant          = "Failed to discard working tree changes in %s (exit code %d%s)"
	gitResetHardExecutionFailureTemplateConstant = "Unable to discard working tree changes in %s: %s"
	gitResetSoftStartTemplateConstant            = "Rewinding last commit in %s"
	gitResetSoftSuccessTemplateConstant          = "Rewound last commit in %s"
	gitResetSoftFailureTemplateConstant          = "Failed to rewind last commit in %s (exit code %d%s)"
	gitResetSoftExecutionFailureTemplateConstant = "Unable to rewind last commit in %s: %s"
	gitCleanStartTemplateConstant                = "Removing untracked files from %s"
	gitCleanSuccessTemplateConstant              = "Removed untracked files from %s"
	gitCleanFailureTemplateConstant              = "Failed to remove untracked files from %s (exit code %d%s)"
	gitCleanExecutionFailureTemplateConstant     = "Unable to remove untracked files from %s: %s"
	gitDiffStartTemplateConstant                 = "Computing diff in %s"
	gitDiffSuccessTemplateConstant               = "Computed diff in %s"
	gitDiffFailureTemplateConstant               = "Failed to compute diff in %s (exit code %d%s)"
	gitDiffExecutionFailureTemplateConstant      = "Unable to compute diff in %s: %s"
	gitBranchesStartTemplateConstant             = "Listing branches in %s"
	gitBranchesSuccessTemplateConstant           = "Listed branches in %s"
	gitBranchesFailureTemplateConstant           = "Failed to list branches in %s (exit code %d%s)"
	gitBranchesExecutionFailureTemplateConstant  = "Unable to list branches in %s: %s"
	gitBranchDeleteStartTemplateConstant         = "Deleting branch %s in %s"
	gitBranchDeleteSuccessTemplateConstant       = "Deleted branch %s in %s"
	gitBranchDeleteFailureTemplateConstant       = "Failed to delete branch %s in %s (exit code %d%s)"
	gitBranchDeleteExecutionFailureTemplate      = "Unable to delete branch %s in %s: %s"
	gitSwitchStartTemplateConstant               = "Switching to branch %s in %s"
	gitSwitchSuccessTemplateConstant             = "Switched to branch %s in %s"
	gitSwitchFailureTemplateConstant             = "Failed to switch to branch %s in %s (exit code %d%s)"
	gitSwitchExecutionFailureTemplateConstant    = "Unable to switch to branch %s in %s: %s"
	gitSwitchCreateStartTemplateConstant         = "Creating and switching to branch %s in %s"
	gitSwitchCreateSuccessTemplateConstant       = "Created and switched to branch %s in %s"
	gitSwitchCreateFailureTemplateConstant       = "Failed to create branch %s in %s (exit code %d%s)"
	gitSwitchCreateExecutionFailureTemplate      = "Unable to create branch %s in %s: %s"
	gitLogStartTemplateConstant                  = "Collecting recent history in %s"
	gitLogSuccessTemplateConstant                = "Collected recent history in %s"
	gitLogFailureTemplateConstant                = "Failed to collect recent history in %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant       = "Unable to collect recent history in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.describeGitStatusMessage(command, result, failure, stage)
	case gitStashSubcommandNameConstant:
		return formatter.describeGitStashMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeSingleSubjectMessage(command, result, failure, stage, gitPushStartTemplateConstant, gitPushSuccessTemplateConstant, gitPushFailureTemplateConstant, gitPushExecutionFailureTemplateConstant)
	case gitPullSubcommandNameConstant:
		return formatter.describeSingleSubjectMessage(command, result, failure, stage, gitPullStartTemplateConstant, gitPullSuccessTemplateConstant, gitPullFailureTemplateConstant, gitPullExecutionFailureTemplateConstant)
	case gitResetSubcommandNameConstant:
		return formatter.describeGitResetMessage(command, result, failure, stage)
	case gitCleanSubcommandNameConstant:
		return formatter.describeSingleSubjectMessage(command, result, failure, stage, gitCleanStartTemplateConstant, gitCleanSuccessTemplateConstant, gitCleanFailureTemplateConstant, gitCleanExecutionFailureTemplateConstant)
	case gitDiffSubcommandNameConstant:
		return formatter.describeSingleSubjectMessage(command, result, failure, stage, gitDiffStartTemplateConstant, gitDiffSuccessTemplateConstant, gitDiffFailureTemplateConstant, gitDiffExecutionFailureTemplateConstant)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitSwitchSubcommandNameConstant:
		return formatter.describeGitSwitchMessage(command, result, failure, stage)
	case gitLogSubcommandNameConstant:
		return formatter.describeSingleSubjectMessage(command, result, failure, stage, gitLogStartTemplateConstant, gitLogSuccessTemplateConstant, gitLogFailureTemplateConstant, gitLogExecutionFailureTemplateConstant)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		if containsArgument(arguments, gitSymbolicFullNameFlagConstant) && containsArgument(arguments, gitUpstreamReferenceConstant) {
			switch stage {
			case messageStageStart:
				return fmt.Sprintf(gitUpstreamStartTemplateConstant, workingDirectory)
			case messageStageSuccess:
				trimmed := strings.TrimSpace(result.StandardOutput)
				if len(trimmed) == 0 {
					return fmt.Sprintf(gitUpstreamMissingSuccessTemplateConstant, workingDirectory)
				}
				return fmt.Sprintf(gitUpstreamSuccessTemplateConstant, workingDirectory, trimmed)
			case messageStageFailure:
				return fmt.Sprintf(gitUpstreamFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
			case messageStageExecutionFailure:
				return fmt.Sprintf(gitUpstreamExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
			}
		}

		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			trimmed := strings.TrimSpace(result.StandardOutput)
			if strings.EqualFold(trimmed, gitHeadReferenceConstant) || len(trimmed) == 0 {
				return fmt.Sprintf(gitBranchDetachedSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitBranchSuccessTemplateConstant, workingDirectory, trimmed)
		case messageStageFailure:
			return fmt.Sprintf(gitBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitStatusMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStatusStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitStatusSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitStatusFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitStatusExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitStashMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	operation := formatter.ensureValue(formatter.argumentAtIndex(command.Details.Arguments, 1))
	switch operation {
	case gitStashPushSubcommandConstant, gitStashPopSubcommandConstant, gitStashApplySubcommandConstant, gitStashDropSubcommandConstant, gitStashListSubcommandConstant:
	default:
		operation = gitStashPushSubcommandConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStashStartTemplateConstant, operation, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitStashSuccessTemplateConstant, operation, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitStashFailureTemplateConstant, operation, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitStashExecutionFailureTemplateConstant, operation, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	targetPath := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
	if len(targetPath) == 0 && containsArgument(command.Details.Arguments, gitAddAllFlagConstant) {
		targetPath = gitAddAllChangesLabelConstant
	}
	targetPath = formatter.ensureValue(targetPath)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, targetPath, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, targetPath, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, targetPath, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, targetPath, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractCommitMessage(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitResetMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if containsArgument(command.Details.Arguments, gitResetSoftFlagConstant) {
		return formatter.describeSingleSubjectMessage(command, result, failure, stage, gitResetSoftStartTemplateConstant, gitResetSoftSuccessTemplateConstant, gitResetSoftFailureTemplateConstant, gitResetSoftExecutionFailureTemplateConstant)
	}
	if containsArgument(command.Details.Arguments, gitResetHardFlagConstant) {
		return formatter.describeSingleSubjectMessage(command, result, failure, stage, gitResetHardStartTemplateConstant, gitResetHardSuccessTemplateConstant, gitResetHardFailureTemplateConstant, gitResetHardExecutionFailureTemplateConstant)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitBranchDeleteFlagConstant) {
		return formatter.describeSingleSubjectMessage(command, result, failure, stage, gitBranchesStartTemplateConstant, gitBranchesSuccessTemplateConstant, gitBranchesFailureTemplateConstant, gitBranchesExecutionFailureTemplateConstant)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitBranchDeleteStartTemplateConstant, branchName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchDeleteSuccessTemplateConstant, branchName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchDeleteFailureTemplateConstant, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBranchDeleteExecutionFailureTemplate, branchName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitSwitchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
	creating := containsArgument(command.Details.Arguments, gitSwitchCreateFlagConstant)

	startTemplate, successTemplate, failureTemplate, executionFailureTemplate := gitSwitchStartTemplateConstant, gitSwitchSuccessTemplateConstant, gitSwitchFailureTemplateConstant, gitSwitchExecutionFailureTemplateConstant
	if creating {
		startTemplate, successTemplate, failureTemplate, executionFailureTemplate = gitSwitchCreateStartTemplateConstant, gitSwitchCreateSuccessTemplateConstant, gitSwitchCreateFailureTemplateConstant, gitSwitchCreateExecutionFailureTemplate
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, branchName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, branchName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, branchName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, branchName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeSingleSubjectMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return strings.TrimSpace(arguments[index])
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitMessageFlagConstant && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return fallbackUnknownValueLabelConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
