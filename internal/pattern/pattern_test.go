package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grepagrip/internal/domain"
)

func TestExpression_LiteralEscapesMetacharacters(t *testing.T) {
	opts := domain.MatchOptions{Query: "a.b*c(d)"}
	assert.Equal(t, `a\.b\*c\(d\)`, Expression(opts))
}

func TestExpression_WholeWordWrapsLiteral(t *testing.T) {
	opts := domain.MatchOptions{Query: "cat", WholeWord: true}
	assert.Equal(t, `\bcat\b`, Expression(opts))
}

func TestExpression_RegexPassesThrough(t *testing.T) {
	opts := domain.MatchOptions{Query: `fn\s+\w+`, UseRegex: true}
	assert.Equal(t, `fn\s+\w+`, Expression(opts))
}

func TestCompile_CaseInsensitiveByDefault(t *testing.T) {
	re, err := Compile(domain.MatchOptions{Query: "Foo"})
	require.NoError(t, err)
	assert.True(t, re.MatchString("some foo here"))
	assert.True(t, re.MatchString("FOO"))
}

func TestCompile_CaseSensitive(t *testing.T) {
	re, err := Compile(domain.MatchOptions{Query: "Foo", CaseSensitive: true})
	require.NoError(t, err)
	assert.False(t, re.MatchString("foo"))
	assert.True(t, re.MatchString("Foo"))
}

func TestCompile_WholeWordDoesNotMatchInsideToken(t *testing.T) {
	re, err := Compile(domain.MatchOptions{Query: "cat", WholeWord: true, CaseSensitive: true})
	require.NoError(t, err)
	assert.False(t, re.MatchString("category"))
	assert.True(t, re.MatchString("a cat sat"))
}

func TestCompile_InvalidRegexErrors(t *testing.T) {
	_, err := Compile(domain.MatchOptions{Query: "(", UseRegex: true})
	assert.Error(t, err)
}

func TestGitGrep_BuildArgs(t *testing.T) {
	opts := domain.MatchOptions{Query: "needle", CaseSensitive: true}
	args := GitGrep{}.BuildArgs(opts)

	assert.Equal(t, []string{
		"git", "grep", "-n", "-I", "--no-color", "--max-count", "50", "-E",
		"-e", "needle",
	}, args)
}

func TestGitGrep_BuildArgsCaseInsensitiveAndPathspecs(t *testing.T) {
	opts := domain.MatchOptions{Query: "needle", FileFilter: "*.go, src"}
	args := GitGrep{}.BuildArgs(opts)

	assert.Contains(t, args, "-i")
	// include globs and dir prefixes land after the pathspec separator
	sep := -1
	for i, a := range args {
		if a == "--" {
			sep = i
		}
	}
	require.GreaterOrEqual(t, sep, 0, "expected pathspec separator")
	assert.Equal(t, []string{"*.go", "src"}, args[sep+1:])
}

func TestGrep_BuildArgsDefaults(t *testing.T) {
	opts := domain.MatchOptions{Query: "needle", CaseSensitive: true}
	args := Grep{}.BuildArgs(opts)

	assert.Equal(t, "grep", args[0])
	assert.Contains(t, args, "-r")
	assert.Contains(t, args, "--exclude-dir=.git")
	assert.Contains(t, args, "--exclude-dir=node_modules")
	assert.NotContains(t, args, "-i")
	assert.Equal(t, ".", args[len(args)-1], "defaults to the current root")
}

func TestGrep_BuildArgsFilters(t *testing.T) {
	opts := domain.MatchOptions{Query: "needle", FileFilter: "*.go, docs"}
	args := Grep{}.BuildArgs(opts)

	assert.Contains(t, args, "--include=*.go")
	assert.Contains(t, args, "-i")
	assert.Equal(t, "docs", args[len(args)-1], "dir tokens become positional roots")
	assert.NotContains(t, args, ".")
}

func TestBackend_ExitCodes(t *testing.T) {
	for _, b := range []Backend{GitGrep{}, Grep{}} {
		assert.True(t, b.Success(0), b.Name())
		assert.True(t, b.Success(1), b.Name())
		assert.False(t, b.Success(2), b.Name())
		assert.False(t, b.NoMatches(0), b.Name())
		assert.True(t, b.NoMatches(1), b.Name())
	}
}

func TestForRoot(t *testing.T) {
	assert.Equal(t, "git grep", ForRoot(true).Name())
	assert.Equal(t, "grep", ForRoot(false).Name())
}
