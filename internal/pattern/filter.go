package pattern

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SplitFilter splits a comma-separated file filter into include globs and
// bare directory prefixes. A token counts as a glob when it carries a
// wildcard or a file-extension dot in its base name; everything else is
// treated as a search-root restriction. Malformed glob tokens are dropped.
func SplitFilter(filter string) (globs []string, dirs []string) {
	for _, token := range strings.Split(filter, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if isGlobToken(token) {
			if doublestar.ValidatePattern(token) {
				globs = append(globs, token)
			}
			continue
		}
		dirs = append(dirs, strings.TrimSuffix(token, "/"))
	}
	return globs, dirs
}

func isGlobToken(token string) bool {
	if strings.ContainsAny(token, "*?[") {
		return true
	}
	return strings.Contains(path.Base(token), ".")
}

// MatchesFilter reports whether a root-relative path passes the file filter.
// An empty filter admits everything. Globs match against the full relative
// path or any basename depth; directory tokens match by prefix.
func MatchesFilter(relPath, filter string) bool {
	globs, dirs := SplitFilter(filter)
	if len(globs) == 0 && len(dirs) == 0 {
		return true
	}
	for _, g := range globs {
		if ok, err := doublestar.Match(g, relPath); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match("**/"+g, relPath); err == nil && ok {
			return true
		}
	}
	for _, d := range dirs {
		if relPath == d || strings.HasPrefix(relPath, d+"/") {
			return true
		}
	}
	return false
}
