// Package search owns the reactive scan pipeline: option state, debouncing,
// generation tracking and the single background worker.
package search

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"grepagrip/internal/domain"
	"grepagrip/internal/eventbus"
	"grepagrip/internal/executor"
	"grepagrip/internal/parser"
	"grepagrip/internal/pattern"
	"grepagrip/internal/replace"
	"grepagrip/internal/vcs"
)

// DefaultDebounce is the quiescence window after the last option mutation
// before a scan is dispatched.
const DefaultDebounce = 300 * time.Millisecond

// totalMatchCap bounds the grouped result set after parsing. The versioned
// backend already caps per-file matches; this caps the whole scan.
const totalMatchCap = 1000

// Coordinator drives scans and replaces. All observable state lives behind
// one mutex; blocking work runs on a single worker goroutine that processes
// jobs strictly in order, so two scans never run concurrently. Superseded
// scans are not killed — their results are discarded on generation mismatch.
type Coordinator struct {
	bus    eventbus.EventBus
	runner executor.Runner
	probe  vcs.Prober

	mu            sync.Mutex
	root          string
	versioned     bool
	opts          domain.MatchOptions
	replacement   string
	debounce      *time.Timer
	debounceDelay time.Duration

	generation   int64
	results      []domain.FileResult
	totalMatches int
	isSearching  bool
	regexError   string
	isReplacing  bool
	lastReplace  *domain.ReplaceOutcome

	jobs    chan func()
	stopped bool
}

// NewCoordinator creates a coordinator and starts its worker. The prober is
// consulted on every root switch to pick the backend.
func NewCoordinator(bus eventbus.EventBus, runner executor.Runner, probe vcs.Prober) *Coordinator {
	c := &Coordinator{
		bus:           bus,
		runner:        runner,
		probe:         probe,
		debounceDelay: DefaultDebounce,
		jobs:          make(chan func(), 64),
	}

	go c.work()

	// Re-run the current query when the watcher reports tree changes.
	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		c.Refresh()
	})

	return c
}

func (c *Coordinator) work() {
	for job := range c.jobs {
		job()
	}
}

// SetDebounceDelay overrides the quiescence window.
func (c *Coordinator) SetDebounceDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debounceDelay = d
}

// SetQuery updates the query and restarts the debounce window.
func (c *Coordinator) SetQuery(query string) {
	c.mu.Lock()
	if c.opts.Query == query {
		c.mu.Unlock()
		return
	}
	c.opts.Query = query
	c.scheduleScanLocked()
	c.mu.Unlock()
}

// SetCaseSensitive updates case sensitivity and restarts the debounce window.
func (c *Coordinator) SetCaseSensitive(v bool) {
	c.setOptionFlag(&c.opts.CaseSensitive, v)
}

// SetUseRegex updates regex mode and restarts the debounce window.
func (c *Coordinator) SetUseRegex(v bool) {
	c.setOptionFlag(&c.opts.UseRegex, v)
}

// SetWholeWord updates whole-word matching and restarts the debounce window.
func (c *Coordinator) SetWholeWord(v bool) {
	c.setOptionFlag(&c.opts.WholeWord, v)
}

func (c *Coordinator) setOptionFlag(field *bool, v bool) {
	c.mu.Lock()
	if *field == v {
		c.mu.Unlock()
		return
	}
	*field = v
	c.scheduleScanLocked()
	c.mu.Unlock()
}

// SetFileFilter updates the file filter and restarts the debounce window.
func (c *Coordinator) SetFileFilter(filter string) {
	c.mu.Lock()
	if c.opts.FileFilter == filter {
		c.mu.Unlock()
		return
	}
	c.opts.FileFilter = filter
	c.scheduleScanLocked()
	c.mu.Unlock()
}

// SetReplacement updates the replacement text. Replacement text is not a
// match option, so it never triggers a scan.
func (c *Coordinator) SetReplacement(text string) {
	c.mu.Lock()
	c.replacement = text
	c.mu.Unlock()
}

// SetRoot switches the coordinator to a new project root. Published state is
// reset; if a query is already set a scan starts immediately instead of
// waiting for the next option mutation.
func (c *Coordinator) SetRoot(root string) {
	c.mu.Lock()
	c.stopDebounceLocked()
	c.root = root
	c.versioned = c.probe != nil && c.probe(root)
	c.generation++ // orphan anything still in flight
	c.results = nil
	c.totalMatches = 0
	c.regexError = ""
	c.lastReplace = nil
	c.isSearching = false
	versioned := c.versioned
	hasQuery := !c.opts.IsEmpty()
	c.mu.Unlock()

	c.bus.Publish(eventbus.RootChangedEvent{Root: root, Versioned: versioned})
	if hasQuery {
		c.startScan()
	}
}

// Refresh re-runs the current query immediately, bypassing the debounce.
func (c *Coordinator) Refresh() {
	c.mu.Lock()
	hasQuery := !c.opts.IsEmpty() && c.root != ""
	c.mu.Unlock()
	if hasQuery {
		c.startScan()
	}
}

// Clear resets query, filter, replacement, results and errors in one step.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	c.stopDebounceLocked()
	c.generation++
	c.opts.Query = ""
	c.opts.FileFilter = ""
	c.replacement = ""
	c.results = nil
	c.totalMatches = 0
	c.regexError = ""
	c.lastReplace = nil
	c.isSearching = false
	c.mu.Unlock()

	c.bus.Publish(eventbus.SearchClearedEvent{})
}

// Stop shuts the worker down after the job it is on. In-flight results are
// discarded by generation mismatch; nothing is forcibly interrupted.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.stopDebounceLocked()
	c.generation++
	c.mu.Unlock()

	close(c.jobs)
}

func (c *Coordinator) stopDebounceLocked() {
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

func (c *Coordinator) scheduleScanLocked() {
	c.stopDebounceLocked()
	c.debounce = time.AfterFunc(c.debounceDelay, c.startScan)
}

// enqueue reports whether the job was accepted; callers that flagged work as
// in progress must undo that on a refusal.
func (c *Coordinator) enqueue(job func()) bool {
	// The send stays under the lock so it can never race Stop's close.
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return false
	}
	select {
	case c.jobs <- job:
		return true
	default:
		// Queue saturated; the newest request would be superseded anyway.
		log.Printf("Search: job queue full, dropping request")
		return false
	}
}

// startScan snapshots the current options and dispatches one scan
// generation. An empty query clears state without touching the backend.
func (c *Coordinator) startScan() {
	c.mu.Lock()
	c.stopDebounceLocked()

	if c.opts.IsEmpty() {
		c.generation++
		c.results = nil
		c.totalMatches = 0
		c.regexError = ""
		c.isSearching = false
		c.mu.Unlock()
		c.bus.Publish(eventbus.SearchClearedEvent{})
		return
	}

	c.generation++
	gen := c.generation
	opts := c.opts
	root := c.root
	backend := pattern.ForRoot(c.versioned)
	c.isSearching = true
	c.mu.Unlock()

	c.bus.Publish(eventbus.SearchStartedEvent{Generation: gen, Options: opts})
	if !c.enqueue(func() { c.runScan(gen, root, opts, backend) }) {
		c.mu.Lock()
		if gen == c.generation {
			c.isSearching = false
		}
		c.mu.Unlock()
	}
}

// runScan executes on the worker goroutine.
func (c *Coordinator) runScan(gen int64, root string, opts domain.MatchOptions, backend pattern.Backend) {
	argv := backend.BuildArgs(opts)
	res := c.runner.Run(context.Background(), root, argv)

	switch {
	case res.ExitCode == executor.SpawnFailureExit:
		// Missing or broken executable presents as no results; the log is
		// the only trace (see DESIGN.md).
		log.Printf("Search: %s failed to run: %s", backend.Name(), res.Stderr)
		c.finishScan(gen, root, nil, "")

	case backend.Success(res.ExitCode):
		raw := ""
		if !backend.NoMatches(res.ExitCode) {
			raw = res.Stdout
		}
		c.finishScan(gen, root, parser.Parse(raw, root), "")

	case opts.UseRegex:
		msg := firstLine(res.Stderr)
		if msg == "" {
			msg = "invalid pattern"
		}
		c.finishScan(gen, root, nil, msg)

	default:
		// Non-regex failures are indistinguishable from no matches for the
		// user; keep the detail in the log.
		log.Printf("Search: %s exited %d: %s", backend.Name(), res.ExitCode, firstLine(res.Stderr))
		c.finishScan(gen, root, nil, "")
	}
}

// finishScan publishes results only if this scan is still the newest one
// against the same root.
func (c *Coordinator) finishScan(gen int64, root string, results []domain.FileResult, regexErr string) {
	results, total := capResults(results)

	c.mu.Lock()
	if gen != c.generation || root != c.root {
		c.mu.Unlock()
		return // superseded, discard silently
	}
	if regexErr != "" {
		c.results = nil
		c.totalMatches = 0
		c.regexError = regexErr
	} else {
		c.results = results
		c.totalMatches = total
		c.regexError = ""
	}
	c.isSearching = false
	c.mu.Unlock()

	if regexErr != "" {
		c.bus.Publish(eventbus.SearchFailedEvent{Generation: gen, PatternError: regexErr})
		return
	}
	c.bus.Publish(eventbus.SearchCompletedEvent{Generation: gen, Results: results, TotalMatches: total})
}

// capResults truncates grouped results so the total match count stays within
// totalMatchCap, dropping whole trailing files once a partial file is cut.
func capResults(results []domain.FileResult) ([]domain.FileResult, int) {
	total := 0
	for i, r := range results {
		if total+len(r.Matches) <= totalMatchCap {
			total += len(r.Matches)
			continue
		}
		keep := totalMatchCap - total
		capped := make([]domain.FileResult, i, i+1)
		copy(capped, results[:i])
		if keep > 0 {
			trimmed := r
			trimmed.Matches = r.Matches[:keep]
			capped = append(capped, trimmed)
			total += keep
		}
		return capped, total
	}
	return results, total
}

// ReplaceInFile applies the current query/replacement to one file on the
// worker, then rescans if anything changed.
func (c *Coordinator) ReplaceInFile(path string) {
	c.mu.Lock()
	opts := c.opts
	repl := c.replacement
	c.isReplacing = true
	c.mu.Unlock()

	c.bus.Publish(eventbus.ReplaceStartedEvent{})
	accepted := c.enqueue(func() {
		count := replace.InFile(path, opts, repl)
		outcome := domain.ReplaceOutcome{ReplacementsCount: count}
		if count > 0 {
			outcome.FilesChanged = 1
		}
		c.finishReplace(outcome)
	})
	if !accepted {
		c.clearReplacing()
	}
}

// ReplaceAll applies the current query/replacement to a snapshot of the
// current result set. The snapshot is fixed up front — files are not
// re-queried mid-operation.
func (c *Coordinator) ReplaceAll() {
	c.mu.Lock()
	opts := c.opts
	repl := c.replacement
	root := c.root
	snapshot := make([]domain.FileResult, len(c.results))
	copy(snapshot, c.results)
	c.isReplacing = true
	c.mu.Unlock()

	c.bus.Publish(eventbus.ReplaceStartedEvent{})
	accepted := c.enqueue(func() {
		outcome := replace.All(snapshot, root, opts, repl)
		c.finishReplace(outcome)
	})
	if !accepted {
		c.clearReplacing()
	}
}

func (c *Coordinator) clearReplacing() {
	c.mu.Lock()
	c.isReplacing = false
	c.mu.Unlock()
}

func (c *Coordinator) finishReplace(outcome domain.ReplaceOutcome) {
	c.mu.Lock()
	c.isReplacing = false
	c.lastReplace = &outcome
	c.mu.Unlock()

	c.bus.Publish(eventbus.ReplaceCompletedEvent{Outcome: outcome})

	// Stale match positions must never be shown as still matching.
	if outcome.ReplacementsCount > 0 {
		c.startScan()
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
