// Package vcs decides which search backend a root directory gets.
package vcs

import (
	"os"
	"path/filepath"
)

// Prober reports whether a root is a version-controlled tree. The probe is
// injected into the coordinator so backend selection stays an explicit
// strategy rather than a global.
type Prober func(root string) bool

// GitProbe checks for the .git marker. A plain file counts too — worktrees
// and submodules keep a .git file instead of a directory.
func GitProbe(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}
