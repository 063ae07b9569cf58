// Package syncer implements the sync command: rebase onto the upstream and
// publish local commits in one step.
package syncer
