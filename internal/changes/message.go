package changes

import (
	"fmt"
	"path"
	"strings"
)

const (
	addVerbConstant                    = "Add"
	updateVerbConstant                 = "Update"
	removeVerbConstant                 = "Remove"
	renameVerbConstant                 = "Rename"
	singleChangeMessageTemplate        = "%s %s"
	multiChangeMessageTemplateConstant = "%s %d files: %s"
	categoryCountTemplateConstant      = "%d %s"
	addedCategoryLabelConstant         = "added"
	modifiedCategoryLabelConstant      = "modified"
	deletedCategoryLabelConstant       = "deleted"
	renamedCategoryLabelConstant       = "renamed"
	categoryJoinSeparatorConstant      = ", "
)

// AutoMessage derives a deterministic commit message from a change set. A
// single changed path yields "<Verb> <basename>" with the verb chosen by
// category; several paths yield "<Verb> N files:" followed by per-category
// counts in fixed order (added, modified, deleted, renamed). A clean set
// yields an empty message.
func AutoMessage(changeSet ChangeSet) string {
	totalCount := changeSet.TotalCount()
	if totalCount == 0 {
		return ""
	}
	if totalCount == 1 {
		verb, changedPath := singleChangeVerb(changeSet)
		return fmt.Sprintf(singleChangeMessageTemplate, verb, path.Base(changedPath))
	}

	categoryCounts := []string{}
	if addedCount := changeSet.AddedCount(); addedCount > 0 {
		categoryCounts = append(categoryCounts, fmt.Sprintf(categoryCountTemplateConstant, addedCount, addedCategoryLabelConstant))
	}
	if modifiedCount := changeSet.ModifiedCount(); modifiedCount > 0 {
		categoryCounts = append(categoryCounts, fmt.Sprintf(categoryCountTemplateConstant, modifiedCount, modifiedCategoryLabelConstant))
	}
	if deletedCount := changeSet.DeletedCount(); deletedCount > 0 {
		categoryCounts = append(categoryCounts, fmt.Sprintf(categoryCountTemplateConstant, deletedCount, deletedCategoryLabelConstant))
	}
	if renamedCount := changeSet.RenamedCount(); renamedCount > 0 {
		categoryCounts = append(categoryCounts, fmt.Sprintf(categoryCountTemplateConstant, renamedCount, renamedCategoryLabelConstant))
	}

	return fmt.Sprintf(multiChangeMessageTemplateConstant, updateVerbConstant, totalCount, strings.Join(categoryCounts, categoryJoinSeparatorConstant))
}

func singleChangeVerb(changeSet ChangeSet) (string, string) {
	switch {
	case len(changeSet.StagedAdded) > 0:
		return addVerbConstant, changeSet.StagedAdded[0]
	case len(changeSet.Untracked) > 0:
		return addVerbConstant, changeSet.Untracked[0]
	case len(changeSet.StagedRenamed) > 0:
		return renameVerbConstant, changeSet.StagedRenamed[0]
	case len(changeSet.StagedDeleted) > 0:
		return removeVerbConstant, changeSet.StagedDeleted[0]
	case len(changeSet.Deleted) > 0:
		return removeVerbConstant, changeSet.Deleted[0]
	case len(changeSet.StagedModified) > 0:
		return updateVerbConstant, changeSet.StagedModified[0]
	case len(changeSet.Modified) > 0:
		return updateVerbConstant, changeSet.Modified[0]
	case len(changeSet.Conflicted) > 0:
		return updateVerbConstant, changeSet.Conflicted[0]
	default:
		return updateVerbConstant, ""
	}
}
