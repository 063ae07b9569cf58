// Package pathutils normalizes repository path inputs consistently across commands.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
	currentDirectoryPathConstant    = "."
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// RepositoryPathResolver converts user-supplied repository paths into
// absolute paths, expanding home directory shortcuts.
type RepositoryPathResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewRepositoryPathResolver constructs a resolver using the operating system lookup.
func NewRepositoryPathResolver() *RepositoryPathResolver {
	return NewRepositoryPathResolverWithProvider(os.UserHomeDir)
}

// NewRepositoryPathResolverWithProvider constructs a resolver with a custom home directory provider.
func NewRepositoryPathResolverWithProvider(provider HomeDirectoryProvider) *RepositoryPathResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &RepositoryPathResolver{homeDirectoryProvider: provider}
}

// Resolve trims the candidate path, expands a leading tilde, and converts the
// result to an absolute path. An empty candidate resolves to the current
// working directory.
func (resolver *RepositoryPathResolver) Resolve(candidatePath string) (string, error) {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		trimmedCandidate = currentDirectoryPathConstant
	}

	expandedPath := resolver.expandHomeShortcut(trimmedCandidate)

	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", absoluteError
	}

	return filepath.Clean(absolutePath), nil
}

func (resolver *RepositoryPathResolver) expandHomeShortcut(candidatePath string) string {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	resolvedHomeDirectory := resolver.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildeSymbolConstant {
		return resolvedHomeDirectory
	}

	if strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant) {
		relativePath := strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant)
		return filepath.Join(resolvedHomeDirectory, relativePath)
	}

	return candidatePath
}

func (resolver *RepositoryPathResolver) resolveHomeDirectory() string {
	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
