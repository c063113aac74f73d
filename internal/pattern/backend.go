package pattern

import (
	"grepagrip/internal/domain"
)

// Per-file match cap applied by the versioned backend to bound pathological
// single-file blowups.
const perFileMatchCap = "50"

// Backend is one of the two external line-matching strategies. BuildArgs
// returns the full argv (argv[0] is the executable); both backends emit the
// same relativePath:lineNumber:content protocol.
type Backend interface {
	Name() string
	BuildArgs(opts domain.MatchOptions) []string
	// Success reports whether the exit code means "ran fine" — matches found
	// (0) or cleanly none (1). Anything else is a backend failure.
	Success(exitCode int) bool
	// NoMatches reports the backend-specific clean "nothing matched" code.
	NoMatches(exitCode int) bool
}

// ForRoot selects the backend for a scan root.
func ForRoot(versioned bool) Backend {
	if versioned {
		return GitGrep{}
	}
	return Grep{}
}

// GitGrep searches a version-controlled tree with `git grep`, which honors
// ignore rules natively and takes include globs as trailing pathspecs.
type GitGrep struct{}

func (GitGrep) Name() string { return "git grep" }

func (GitGrep) BuildArgs(opts domain.MatchOptions) []string {
	args := []string{"git", "grep", "-n", "-I", "--no-color", "--max-count", perFileMatchCap, "-E"}
	if !opts.CaseSensitive {
		args = append(args, "-i")
	}
	args = append(args, "-e", Expression(opts))

	globs, dirs := SplitFilter(opts.FileFilter)
	pathspecs := append(globs, dirs...)
	if len(pathspecs) > 0 {
		args = append(args, "--")
		args = append(args, pathspecs...)
	}
	return args
}

func (GitGrep) Success(exitCode int) bool   { return exitCode == 0 || exitCode == 1 }
func (GitGrep) NoMatches(exitCode int) bool { return exitCode == 1 }

// Noise directories the plain backend skips; the versioned backend gets the
// equivalent for free from ignore rules.
var excludedDirs = []string{
	".git", ".hg", ".svn",
	"node_modules", "vendor",
	"build", ".build", "dist", "target",
	"__pycache__",
}

// Grep searches a plain filesystem tree with recursive grep. Include globs
// become --include flags; bare directory tokens become positional roots.
type Grep struct{}

func (Grep) Name() string { return "grep" }

func (Grep) BuildArgs(opts domain.MatchOptions) []string {
	args := []string{"grep", "-r", "-n", "-H", "-I", "-E"}
	for _, dir := range excludedDirs {
		args = append(args, "--exclude-dir="+dir)
	}
	if !opts.CaseSensitive {
		args = append(args, "-i")
	}

	globs, dirs := SplitFilter(opts.FileFilter)
	for _, g := range globs {
		args = append(args, "--include="+g)
	}

	args = append(args, "-e", Expression(opts))

	if len(dirs) == 0 {
		args = append(args, ".")
	} else {
		args = append(args, dirs...)
	}
	return args
}

func (Grep) Success(exitCode int) bool   { return exitCode == 0 || exitCode == 1 }
func (Grep) NoMatches(exitCode int) bool { return exitCode == 1 }
