// Package gitrepo exposes repository-level git operations behind an explicit
// repository handle so services never rely on the ambient working directory.
package gitrepo
