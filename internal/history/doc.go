// Package history implements the condensed commit log command.
package history
