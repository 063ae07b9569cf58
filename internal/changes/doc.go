// Package changes parses git porcelain status output into categorized change
// sets and derives deterministic commit messages from them.
package changes
