// Package diffview implements the change comparison command.
package diffview
