package search

import "grepagrip/internal/domain"

// Snapshot accessors. The host renders reactively from these at any time;
// each returns a consistent copy taken under the coordinator lock.

// Options returns the current match options.
func (c *Coordinator) Options() domain.MatchOptions {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// Replacement returns the current replacement text.
func (c *Coordinator) Replacement() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.replacement
}

// Root returns the active scan root.
func (c *Coordinator) Root() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root
}

// Versioned reports whether the active root uses the versioned-tree backend.
func (c *Coordinator) Versioned() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versioned
}

// State returns the full published scan state.
func (c *Coordinator) State() domain.ScanState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ScanState{
		Generation:   c.generation,
		Results:      copyResults(c.results),
		TotalMatches: c.totalMatches,
		IsSearching:  c.isSearching,
		RegexError:   c.regexError,
	}
}

// Results returns the current result set.
func (c *Coordinator) Results() []domain.FileResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyResults(c.results)
}

// TotalMatches returns the current total match count.
func (c *Coordinator) TotalMatches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalMatches
}

// IsSearching reports whether a scan is pending publication.
func (c *Coordinator) IsSearching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSearching
}

// RegexError returns the surfaced pattern error, if any.
func (c *Coordinator) RegexError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regexError
}

// IsReplacing reports whether a replace job is pending.
func (c *Coordinator) IsReplacing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isReplacing
}

// LastReplaceOutcome returns the most recent replace outcome, if one exists.
func (c *Coordinator) LastReplaceOutcome() (domain.ReplaceOutcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastReplace == nil {
		return domain.ReplaceOutcome{}, false
	}
	return *c.lastReplace, true
}

func copyResults(results []domain.FileResult) []domain.FileResult {
	if results == nil {
		return nil
	}
	out := make([]domain.FileResult, len(results))
	copy(out, results)
	return out
}
