// Package branches implements listing and switching of local branches.
package branches
