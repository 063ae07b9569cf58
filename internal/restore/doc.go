// Package restore implements destructive recovery commands: fresh discards
// every uncommitted change, undo rewinds the last commit while keeping its
// changes staged.
package restore
