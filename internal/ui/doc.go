// Package ui bridges command lifecycle events to user-facing log output.
package ui
