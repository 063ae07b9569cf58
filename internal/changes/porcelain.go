package changes

import (
	"strings"
)

const (
	porcelainLineMinimumLengthConstant = 4
	untrackedStatusCodeConstant        = "??"
	renameTargetSeparatorConstant      = " -> "
	unmergedStatusRuneConstant         = 'U'
	addedStatusRuneConstant            = 'A'
	modifiedStatusRuneConstant         = 'M'
	deletedStatusRuneConstant          = 'D'
	renamedStatusRuneConstant          = 'R'
	copiedStatusRuneConstant           = 'C'
)

// ChangeSet categorizes the paths reported by git status --porcelain.
type ChangeSet struct {
	StagedAdded    []string
	StagedModified []string
	StagedDeleted  []string
	StagedRenamed  []string
	Modified       []string
	Deleted        []string
	Untracked      []string
	Conflicted     []string
}

// ParsePorcelain splits porcelain status output into a categorized ChangeSet.
// Each line carries a two-character status code followed by the path; rename
// lines record the new path. Index and worktree columns are classified
// independently, so a path may appear in both a staged and an unstaged bucket.
func ParsePorcelain(porcelainOutput string) ChangeSet {
	changeSet := ChangeSet{}

	for _, statusLine := range strings.Split(porcelainOutput, "\n") {
		if len(statusLine) < porcelainLineMinimumLengthConstant {
			continue
		}

		statusCode := statusLine[:2]
		changedPath := statusLine[3:]
		if renameSeparatorIndex := strings.Index(changedPath, renameTargetSeparatorConstant); renameSeparatorIndex != -1 {
			changedPath = changedPath[renameSeparatorIndex+len(renameTargetSeparatorConstant):]
		}

		if statusCode == untrackedStatusCodeConstant {
			changeSet.Untracked = append(changeSet.Untracked, changedPath)
			continue
		}

		indexColumn := rune(statusCode[0])
		worktreeColumn := rune(statusCode[1])
		if isConflictCode(indexColumn, worktreeColumn) {
			changeSet.Conflicted = append(changeSet.Conflicted, changedPath)
			continue
		}

		switch indexColumn {
		case addedStatusRuneConstant, copiedStatusRuneConstant:
			changeSet.StagedAdded = append(changeSet.StagedAdded, changedPath)
		case modifiedStatusRuneConstant:
			changeSet.StagedModified = append(changeSet.StagedModified, changedPath)
		case deletedStatusRuneConstant:
			changeSet.StagedDeleted = append(changeSet.StagedDeleted, changedPath)
		case renamedStatusRuneConstant:
			changeSet.StagedRenamed = append(changeSet.StagedRenamed, changedPath)
		}

		switch worktreeColumn {
		case modifiedStatusRuneConstant:
			changeSet.Modified = append(changeSet.Modified, changedPath)
		case deletedStatusRuneConstant:
			changeSet.Deleted = append(changeSet.Deleted, changedPath)
		}
	}

	return changeSet
}

func isConflictCode(indexColumn rune, worktreeColumn rune) bool {
	if indexColumn == unmergedStatusRuneConstant || worktreeColumn == unmergedStatusRuneConstant {
		return true
	}
	if indexColumn == addedStatusRuneConstant && worktreeColumn == addedStatusRuneConstant {
		return true
	}
	return indexColumn == deletedStatusRuneConstant && worktreeColumn == deletedStatusRuneConstant
}

// IsClean reports whether no changes of any category were recorded.
func (changeSet ChangeSet) IsClean() bool {
	return changeSet.TotalCount() == 0
}

// TotalCount reports the number of distinct changed paths.
func (changeSet ChangeSet) TotalCount() int {
	seenPaths := map[string]struct{}{}
	for _, categoryPaths := range [][]string{
		changeSet.StagedAdded,
		changeSet.StagedModified,
		changeSet.StagedDeleted,
		changeSet.StagedRenamed,
		changeSet.Modified,
		changeSet.Deleted,
		changeSet.Untracked,
		changeSet.Conflicted,
	} {
		for _, changedPath := range categoryPaths {
			seenPaths[changedPath] = struct{}{}
		}
	}
	return len(seenPaths)
}

// AddedCount reports staged additions plus untracked files.
func (changeSet ChangeSet) AddedCount() int {
	return len(changeSet.StagedAdded) + len(changeSet.Untracked)
}

// ModifiedCount reports staged and unstaged modifications, counting each path once.
func (changeSet ChangeSet) ModifiedCount() int {
	return mergedCategoryCount(changeSet.StagedModified, changeSet.Modified)
}

// DeletedCount reports staged and unstaged deletions, counting each path once.
func (changeSet ChangeSet) DeletedCount() int {
	return mergedCategoryCount(changeSet.StagedDeleted, changeSet.Deleted)
}

// RenamedCount reports staged renames.
func (changeSet ChangeSet) RenamedCount() int {
	return len(changeSet.StagedRenamed)
}

func mergedCategoryCount(stagedPaths []string, unstagedPaths []string) int {
	seenPaths := map[string]struct{}{}
	for _, changedPath := range stagedPaths {
		seenPaths[changedPath] = struct{}{}
	}
	for _, changedPath := range unstagedPaths {
		seenPaths[changedPath] = struct{}{}
	}
	return len(seenPaths)
}
