// Package catalog implements the list command: a summary of every gitq tool,
// loaded from an embedded manifest so it works outside any repository.
package catalog
