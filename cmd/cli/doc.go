// Package cli wires the gitq root command: configuration loading, logging,
// color handling, repository path resolution, and subcommand registration.
package cli
