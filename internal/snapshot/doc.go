// Package snapshot implements one-step commit workflows: save, quick, and
// backup. Each stages pending changes, commits them with an explicit or
// generated message, and optionally publishes the result.
package snapshot
