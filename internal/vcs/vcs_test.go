package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitProbe_PlainDirectory(t *testing.T) {
	assert.False(t, GitProbe(t.TempDir()))
}

func TestGitProbe_GitDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	assert.True(t, GitProbe(dir))
}

func TestGitProbe_WorktreeMarkerFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: ../.git/worktrees/x\n"), 0644))
	assert.True(t, GitProbe(dir))
}
