// Package status implements the categorized working tree summary command.
package status
