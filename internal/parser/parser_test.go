package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/project"

func TestParse_GroupsByFileInFirstSeenOrder(t *testing.T) {
	raw := "a.txt:1:alpha\n" +
		"b.txt:1:alpha\n" +
		"a.txt:2:beta alpha\n"

	results := Parse(raw, root)

	require.Len(t, results, 2)
	assert.Equal(t, "/project/a.txt", results[0].Path)
	assert.Equal(t, "a.txt", results[0].RelativePath)
	require.Len(t, results[0].Matches, 2)
	assert.Equal(t, 1, results[0].Matches[0].LineNumber)
	assert.Equal(t, "alpha", results[0].Matches[0].LineContent)
	assert.Equal(t, 2, results[0].Matches[1].LineNumber)
	assert.Equal(t, "beta alpha", results[0].Matches[1].LineContent)

	assert.Equal(t, "/project/b.txt", results[1].Path)
	require.Len(t, results[1].Matches, 1)
}

func TestParse_ContentMayContainColons(t *testing.T) {
	raw := "src/main.go:12:\turl := \"http://example.com:8080\"\n"

	results := Parse(raw, root)

	require.Len(t, results, 1)
	assert.Equal(t, 12, results[0].Matches[0].LineNumber)
	assert.Equal(t, "\turl := \"http://example.com:8080\"", results[0].Matches[0].LineContent)
}

func TestParse_DropsMalformedLines(t *testing.T) {
	raw := "no colons here\n" +
		"missingnumber:notanint:content\n" +
		"onlyonecolon:4\n" +
		":1:leading colon\n" +
		"zero.txt:0:line numbers are 1-based\n" +
		"good.txt:3:kept\n"

	results := Parse(raw, root)

	require.Len(t, results, 1)
	assert.Equal(t, "good.txt", results[0].RelativePath)
	assert.Equal(t, 3, results[0].Matches[0].LineNumber)
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse("", root))
	assert.Empty(t, Parse("\n\n", root))
}

func TestParse_CleansDotSlashPrefix(t *testing.T) {
	results := Parse("./a.txt:1:alpha\n", root)

	require.Len(t, results, 1)
	assert.Equal(t, "a.txt", results[0].RelativePath)
	assert.Equal(t, "/project/a.txt", results[0].Path)
}

func TestParse_KeepsAbsolutePaths(t *testing.T) {
	results := Parse("/elsewhere/a.txt:1:alpha\n", root)

	require.Len(t, results, 1)
	assert.Equal(t, "/elsewhere/a.txt", results[0].Path)
}

func TestParse_EmptyContent(t *testing.T) {
	results := Parse("a.txt:7:\n", root)

	require.Len(t, results, 1)
	assert.Equal(t, "", results[0].Matches[0].LineContent)
}
