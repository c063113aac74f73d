// Package replace computes and applies text replacement across files.
package replace

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"grepagrip/internal/domain"
	"grepagrip/internal/pattern"
)

// InContent returns the rewritten content and the number of non-overlapping
// matches substituted. Pattern construction mirrors the scan rules, so a
// replace touches exactly what the scan showed. A pattern that fails to
// compile yields zero replacements; validity was already vetted by the scan.
func InContent(content string, opts domain.MatchOptions, replacement string) (string, int) {
	re, err := pattern.Compile(opts)
	if err != nil {
		return content, 0
	}

	count := len(re.FindAllStringIndex(content, -1))
	if count == 0 {
		return content, 0
	}

	repl := replacement
	if !opts.UseRegex {
		// Literal replacement text must never act as a regex template.
		repl = strings.ReplaceAll(replacement, "$", "$$")
	}

	return re.ReplaceAllString(content, repl), count
}

// InFile rewrites one file on disk and returns the replacement count. Every
// failure mode — unreadable file, bad pattern, failed write — degrades to
// zero replacements rather than erroring. The write is atomic: a temp file
// in the same directory is renamed over the original, so a concurrent reader
// never sees a half-written file.
func InFile(path string, opts domain.MatchOptions, replacement string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Replace: cannot read %s: %v", path, err)
		return 0
	}

	newContent, count := InContent(string(data), opts, replacement)
	if count == 0 || newContent == string(data) {
		return 0
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	if err := writeAtomic(path, []byte(newContent), mode); err != nil {
		log.Printf("Replace: cannot write %s: %v", path, err)
		return 0
	}
	return count
}

// All applies the replacement to every file in the result set that still
// lives under root and still passes the file filter — the result set may be
// older than the current filter. Files the replacement does not touch are
// not counted as changed; files that fail mid-way stay failed without
// rolling back the ones already written.
func All(results []domain.FileResult, root string, opts domain.MatchOptions, replacement string) domain.ReplaceOutcome {
	var outcome domain.ReplaceOutcome
	for _, r := range results {
		if !underRoot(r.Path, root) {
			log.Printf("Replace: skipping %s, no longer under %s", r.Path, root)
			continue
		}
		if !pattern.MatchesFilter(r.RelativePath, opts.FileFilter) {
			log.Printf("Replace: skipping %s, excluded by filter %q", r.RelativePath, opts.FileFilter)
			continue
		}
		count := InFile(r.Path, opts, replacement)
		if count > 0 {
			outcome.FilesChanged++
			outcome.ReplacementsCount += count
		}
	}
	return outcome
}

func underRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
