package domain

import "strings"

// MatchOptions describes one search request. A snapshot of these options is
// taken when a scan is dispatched; the coordinator never mutates a snapshot.
type MatchOptions struct {
	Query         string
	CaseSensitive bool
	UseRegex      bool
	WholeWord     bool
	FileFilter    string // comma-separated globs or directory prefixes
}

// IsEmpty reports whether the query is blank after trimming. A blank query
// means "no active search" and must never spawn a backend process.
func (o MatchOptions) IsEmpty() bool {
	return strings.TrimSpace(o.Query) == ""
}

// LineMatch is a single matched line within a file.
type LineMatch struct {
	LineNumber  int    // 1-based
	LineContent string // raw line text, untrimmed
}

// FileResult groups the matches found in one file. Identity key is Path;
// RelativePath is Path relative to the scan root.
type FileResult struct {
	Path         string
	RelativePath string
	Matches      []LineMatch
}

// MatchCount returns the number of matched lines in this file.
func (f FileResult) MatchCount() int {
	return len(f.Matches)
}

// ScanState is the published outcome of one scan generation. Only the state
// belonging to the highest generation is ever current.
type ScanState struct {
	Generation   int64
	Results      []FileResult
	TotalMatches int
	IsSearching  bool
	RegexError   string
}

// ReplaceOutcome reports one replace invocation (single file or replace-all).
type ReplaceOutcome struct {
	FilesChanged      int
	ReplacementsCount int
}

// TotalMatches sums the match counts across a result set.
func TotalMatches(results []FileResult) int {
	total := 0
	for _, r := range results {
		total += len(r.Matches)
	}
	return total
}
