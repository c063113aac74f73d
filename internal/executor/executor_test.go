package executor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CapturesStdout(t *testing.T) {
	res := NewProcessRunner().Run(context.Background(), t.TempDir(), []string{"echo", "hello"})

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Empty(t, res.Stderr)
}

func TestRun_CapturesStderrAndExitCode(t *testing.T) {
	res := NewProcessRunner().Run(context.Background(), t.TempDir(),
		[]string{"sh", "-c", "echo oops >&2; exit 2"})

	assert.Equal(t, 2, res.ExitCode)
	assert.Equal(t, "oops\n", res.Stderr)
	assert.Empty(t, res.Stdout)
}

func TestRun_NoMatchesStyleExit(t *testing.T) {
	res := NewProcessRunner().Run(context.Background(), t.TempDir(), []string{"sh", "-c", "exit 1"})

	assert.Equal(t, 1, res.ExitCode)
}

func TestRun_SpawnFailureSentinel(t *testing.T) {
	res := NewProcessRunner().Run(context.Background(), t.TempDir(),
		[]string{"definitely-not-a-real-binary-8412"})

	assert.Equal(t, SpawnFailureExit, res.ExitCode)
	assert.NotEmpty(t, res.Stderr, "spawn failure message stands in for stderr")
}

func TestRun_LargeOutputDoesNotDeadlock(t *testing.T) {
	// Well past the kernel pipe buffer; hangs if streams are not drained
	// before waiting on the process.
	res := NewProcessRunner().Run(context.Background(), t.TempDir(),
		[]string{"sh", "-c", "seq 1 200000"})

	require.Equal(t, 0, res.ExitCode)
	assert.True(t, strings.HasSuffix(res.Stdout, "200000\n"))
	assert.Greater(t, len(res.Stdout), 1<<20)
}

func TestRun_RunsInGivenRoot(t *testing.T) {
	dir := t.TempDir()
	res := NewProcessRunner().Run(context.Background(), dir, []string{"pwd"})

	require.Equal(t, 0, res.ExitCode)
	assert.Contains(t, strings.TrimSpace(res.Stdout), dirBase(dir))
}

func dirBase(dir string) string {
	if i := strings.LastIndexByte(dir, '/'); i >= 0 {
		return dir[i+1:]
	}
	return dir
}
