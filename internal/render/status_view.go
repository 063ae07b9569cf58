package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gitq-dev/gitq/internal/changes"
)

const (
	branchHeaderTemplateConstant      = "On branch %s"
	repositorySuffixTemplateConstant  = " — %s"
	detachedHeadLabelConstant         = "detached HEAD"
	aheadBehindTemplateConstant       = "%d ahead, %d behind %s"
	upToDateTemplateConstant          = "up to date with %s"
	cleanWorktreeMessageConstant      = "working tree clean"
	stagedSectionHeaderConstant       = "Staged changes:"
	unstagedSectionHeaderConstant     = "Unstaged changes:"
	untrackedSectionHeaderConstant    = "Untracked files:"
	conflictedSectionHeaderConstant   = "Conflicts:"
	sectionEntryIndentConstant        = "  "
	addedEntryPrefixConstant          = "+ "
	modifiedEntryPrefixConstant       = "~ "
	deletedEntryPrefixConstant        = "- "
	renamedEntryPrefixConstant        = "> "
	conflictedEntryPrefixConstant     = "! "
	statusLineJoinSeparatorConstant   = "\n"
	headReferenceBranchLabelConstant  = "HEAD"
)

// StatusView carries everything the status subcommand displays.
type StatusView struct {
	RepositoryName string
	BranchName     string
	UpstreamName   string
	Ahead          int
	Behind         int
	Changes        changes.ChangeSet
}

// RenderStatus produces the colorized, categorized working tree summary. The
// rendering is a pure function of the view: identical repository state yields
// identical output.
func RenderStatus(view StatusView) string {
	renderedLines := []string{renderBranchHeader(view)}

	if trackingLine := renderTrackingLine(view); len(trackingLine) > 0 {
		renderedLines = append(renderedLines, sectionEntryIndentConstant+trackingLine)
	}

	if view.Changes.IsClean() {
		renderedLines = append(renderedLines, "", SuccessLine(cleanWorktreeMessageConstant))
		return strings.Join(renderedLines, statusLineJoinSeparatorConstant)
	}

	renderedLines = append(renderedLines, renderChangeSections(view.Changes)...)
	return strings.Join(renderedLines, statusLineJoinSeparatorConstant)
}

func renderBranchHeader(view StatusView) string {
	branchLabel := strings.TrimSpace(view.BranchName)
	if len(branchLabel) == 0 || branchLabel == headReferenceBranchLabelConstant {
		branchLabel = detachedHeadLabelConstant
	}
	branchHeader := fmt.Sprintf(branchHeaderTemplateConstant, AccentStyle.Render(branchLabel))
	if len(view.RepositoryName) > 0 {
		branchHeader += fmt.Sprintf(repositorySuffixTemplateConstant, MutedStyle.Render(view.RepositoryName))
	}
	return branchHeader
}

func renderTrackingLine(view StatusView) string {
	if len(view.UpstreamName) == 0 {
		return ""
	}
	if view.Ahead == 0 && view.Behind == 0 {
		return MutedStyle.Render(fmt.Sprintf(upToDateTemplateConstant, view.UpstreamName))
	}
	return WarningStyle.Render(fmt.Sprintf(aheadBehindTemplateConstant, view.Ahead, view.Behind, view.UpstreamName))
}

func renderChangeSections(changeSet changes.ChangeSet) []string {
	renderedLines := []string{}

	stagedEntries := []string{}
	stagedEntries = appendEntries(stagedEntries, AddedStyle, addedEntryPrefixConstant, changeSet.StagedAdded)
	stagedEntries = appendEntries(stagedEntries, WarningStyle, modifiedEntryPrefixConstant, changeSet.StagedModified)
	stagedEntries = appendEntries(stagedEntries, RemovedStyle, deletedEntryPrefixConstant, changeSet.StagedDeleted)
	stagedEntries = appendEntries(stagedEntries, AccentStyle, renamedEntryPrefixConstant, changeSet.StagedRenamed)
	renderedLines = appendSection(renderedLines, stagedSectionHeaderConstant, stagedEntries)

	unstagedEntries := []string{}
	unstagedEntries = appendEntries(unstagedEntries, WarningStyle, modifiedEntryPrefixConstant, changeSet.Modified)
	unstagedEntries = appendEntries(unstagedEntries, RemovedStyle, deletedEntryPrefixConstant, changeSet.Deleted)
	renderedLines = appendSection(renderedLines, unstagedSectionHeaderConstant, unstagedEntries)

	untrackedEntries := appendEntries([]string{}, AddedStyle, addedEntryPrefixConstant, changeSet.Untracked)
	renderedLines = appendSection(renderedLines, untrackedSectionHeaderConstant, untrackedEntries)

	conflictedEntries := appendEntries([]string{}, ErrorStyle, conflictedEntryPrefixConstant, changeSet.Conflicted)
	renderedLines = appendSection(renderedLines, conflictedSectionHeaderConstant, conflictedEntries)

	return renderedLines
}

func appendEntries(entries []string, style lipgloss.Style, entryPrefix string, changedPaths []string) []string {
	for _, changedPath := range changedPaths {
		entries = append(entries, sectionEntryIndentConstant+style.Render(entryPrefix+changedPath))
	}
	return entries
}

func appendSection(renderedLines []string, sectionHeader string, sectionEntries []string) []string {
	if len(sectionEntries) == 0 {
		return renderedLines
	}
	renderedLines = append(renderedLines, "", sectionHeader)
	return append(renderedLines, sectionEntries...)
}
