// Package render centralizes terminal presentation: shared lipgloss styles,
// status symbols, and the categorized working tree view.
package render
