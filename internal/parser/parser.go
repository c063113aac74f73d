// Package parser turns raw backend output into grouped per-file results.
package parser

import (
	"path/filepath"
	"strconv"
	"strings"

	"grepagrip/internal/domain"
)

// Parse maps `relativePath:lineNumber:content` lines into FileResults,
// grouping by file in first-seen order and keeping per-file match order.
// Lines that do not parse as path:int:rest are dropped. Content after the
// second colon is kept verbatim, colons and all.
func Parse(raw string, root string) []domain.FileResult {
	var results []domain.FileResult
	index := make(map[string]int) // path -> position in results

	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}

		pathEnd := strings.Index(line, ":")
		if pathEnd <= 0 {
			continue
		}
		numEnd := strings.Index(line[pathEnd+1:], ":")
		if numEnd < 0 {
			continue
		}
		numEnd += pathEnd + 1

		lineNumber, err := strconv.Atoi(line[pathEnd+1 : numEnd])
		if err != nil || lineNumber <= 0 {
			continue
		}

		relPath := filepath.Clean(line[:pathEnd])
		absPath := relPath
		if !filepath.IsAbs(relPath) {
			absPath = filepath.Join(root, relPath)
		}

		match := domain.LineMatch{
			LineNumber:  lineNumber,
			LineContent: line[numEnd+1:],
		}

		if i, seen := index[absPath]; seen {
			results[i].Matches = append(results[i].Matches, match)
			continue
		}
		index[absPath] = len(results)
		results = append(results, domain.FileResult{
			Path:         absPath,
			RelativePath: relPath,
			Matches:      []domain.LineMatch{match},
		})
	}

	return results
}
