// Package stash implements shelving and restoring of uncommitted changes.
package stash
