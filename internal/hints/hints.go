// Package hints maps well-known command failures to remediation hints. The
// mapping inspects typed errors and the failed git invocation only, never the
// free-form stderr text, so hints stay stable across git versions and locales.
package hints

import (
	"errors"

	"github.com/gitq-dev/gitq/internal/execshell"
	"github.com/gitq-dev/gitq/internal/gitrepo"
)

const (
	notARepositoryHintConstant      = "run this command inside a git repository, or create one with `git init`"
	gitUnavailableHintConstant      = "install git and make sure it is on your PATH"
	pushRejectedHintConstant        = "fetch remote changes first with `gitq sync`, then push again"
	pullConflictHintConstant        = "resolve the reported conflicts, then run `gitq save`"
	missingUpstreamHintConstant     = "publish the branch with `git push --set-upstream origin <branch>`"
	stashPopConflictHintConstant    = "resolve the reported conflicts; the stash entry is kept until it applies cleanly"
	detachedOperationHintConstant   = "check out a branch first with `gitq branch <name>`"
	gitPushSubcommandConstant       = "push"
	gitPullSubcommandConstant       = "pull"
	gitStashSubcommandConstant      = "stash"
	gitStashPopSubcommandConstant   = "pop"
	gitRevParseSubcommandConstant   = "rev-parse"
	gitUpstreamReferenceConstant    = "@{u}"
	gitSymbolicFullNameFlagConstant = "--symbolic-full-name"
)

// ForError returns a remediation hint for the given error, or an empty string
// when no hint applies.
func ForError(failure error) string {
	if failure == nil {
		return ""
	}

	if errors.Is(failure, gitrepo.ErrNotARepository) {
		return notARepositoryHintConstant
	}

	var executionError execshell.CommandExecutionError
	if errors.As(failure, &executionError) {
		return gitUnavailableHintConstant
	}

	var failedError execshell.CommandFailedError
	if errors.As(failure, &failedError) {
		return hintForFailedCommand(failedError)
	}

	return ""
}

func hintForFailedCommand(failedError execshell.CommandFailedError) string {
	commandArguments := failedError.Command.Details.Arguments
	if len(commandArguments) == 0 {
		return ""
	}

	switch commandArguments[0] {
	case gitPushSubcommandConstant:
		return pushRejectedHintConstant
	case gitPullSubcommandConstant:
		return pullConflictHintConstant
	case gitStashSubcommandConstant:
		if containsArgument(commandArguments, gitStashPopSubcommandConstant) {
			return stashPopConflictHintConstant
		}
		return ""
	case gitRevParseSubcommandConstant:
		if containsArgument(commandArguments, gitUpstreamReferenceConstant) ||
			containsArgument(commandArguments, gitSymbolicFullNameFlagConstant) {
			return missingUpstreamHintConstant
		}
		return detachedOperationHintConstant
	default:
		return ""
	}
}

func containsArgument(commandArguments []string, expectedArgument string) bool {
	for _, commandArgument := range commandArguments {
		if commandArgument == expectedArgument {
			return true
		}
	}
	return false
}
