package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"grepagrip/internal/config"
	"grepagrip/internal/domain"
	"grepagrip/internal/eventbus"
	"grepagrip/internal/search"
)

// focusArea identifies which part of the screen receives keystrokes
type focusArea int

const (
	focusQuery focusArea = iota
	focusFilter
	focusReplace
	focusResults
)

// matchRef addresses one match line inside the flattened result list
type matchRef struct {
	file  int
	match int
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	coord  *search.Coordinator
	config *config.Config
	styles *Styles

	queryInput   textinput.Model
	filterInput  textinput.Model
	replaceInput textinput.Model
	spin         spinner.Model
	focus        focusArea

	// mirror of the coordinator's published state
	results      []domain.FileResult
	totalMatches int
	isSearching  bool
	isReplacing  bool
	regexError   string
	statusMsg    string

	flat     []matchRef
	selected int
	scroll   int

	width  int
	height int

	events  <-chan eventbus.DomainEvent
	program *tea.Program
}

// NewModel creates a new UI model. Domain events arrive over the events
// channel, pumped there from the bus in main.
func NewModel(bus eventbus.EventBus, coord *search.Coordinator, cfg *config.Config, events <-chan eventbus.DomainEvent) *Model {
	query := textinput.New()
	query.Placeholder = "search"
	query.Prompt = ""
	query.Focus()

	filter := textinput.New()
	filter.Placeholder = "*.go, src/  (files to include)"
	filter.Prompt = ""

	repl := textinput.New()
	repl.Placeholder = "replace with"
	repl.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	opts := coord.Options()
	query.SetValue(opts.Query)
	filter.SetValue(opts.FileFilter)

	return &Model{
		bus:          bus,
		coord:        coord,
		config:       cfg,
		styles:       NewStyles(),
		queryInput:   query,
		filterInput:  filter,
		replaceInput: repl,
		spin:         sp,
		focus:        focusQuery,
		events:       events,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.waitForEvent())
}

// waitForEvent blocks on the event channel and redelivers as a tea.Msg
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return nil
		}
		return EventMsg{Event: event}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := msg.Width - 20
		if inputWidth < 10 {
			inputWidth = 10
		}
		m.queryInput.Width = inputWidth
		m.filterInput.Width = inputWidth
		m.replaceInput.Width = inputWidth
		return m, nil

	case spinner.TickMsg:
		if !m.isSearching && !m.isReplacing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case EventMsg:
		m.handleEvent(msg.Event)
		cmds := []tea.Cmd{m.waitForEvent()}
		if m.isSearching || m.isReplacing {
			cmds = append(cmds, m.spin.Tick)
		}
		return m, tea.Batch(cmds...)

	case pagerFinishedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Pager failed for %s: %v", msg.path, msg.err)
			log.Printf("Pager failed for %s: %v", msg.path, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleEvent folds a published domain event into the view state
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.SearchStartedEvent:
		m.isSearching = true
		m.regexError = ""

	case eventbus.SearchCompletedEvent:
		m.isSearching = false
		m.regexError = ""
		m.results = e.Results
		m.totalMatches = e.TotalMatches
		m.rebuildFlat()

	case eventbus.SearchFailedEvent:
		m.isSearching = false
		m.results = nil
		m.totalMatches = 0
		m.regexError = e.PatternError
		m.rebuildFlat()

	case eventbus.SearchClearedEvent:
		m.isSearching = false
		m.results = nil
		m.totalMatches = 0
		m.regexError = ""
		m.statusMsg = ""
		m.rebuildFlat()

	case eventbus.ReplaceStartedEvent:
		m.isReplacing = true

	case eventbus.ReplaceCompletedEvent:
		m.isReplacing = false
		m.statusMsg = fmt.Sprintf("Replaced %d occurrence(s) in %d file(s)",
			e.Outcome.ReplacementsCount, e.Outcome.FilesChanged)

	case eventbus.RootChangedEvent:
		backend := "plain"
		if e.Versioned {
			backend = "versioned"
		}
		m.statusMsg = fmt.Sprintf("Root: %s (%s tree)", e.Root, backend)

	case eventbus.ErrorEvent:
		m.statusMsg = e.Message
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()

	case "tab":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil

	case "alt+c":
		opts := m.coord.Options()
		m.coord.SetCaseSensitive(!opts.CaseSensitive)
		return m, nil

	case "alt+r":
		opts := m.coord.Options()
		m.coord.SetUseRegex(!opts.UseRegex)
		return m, nil

	case "alt+w":
		opts := m.coord.Options()
		m.coord.SetWholeWord(!opts.WholeWord)
		return m, nil

	case "ctrl+l":
		m.coord.Clear()
		m.queryInput.SetValue("")
		m.filterInput.SetValue("")
		m.replaceInput.SetValue("")
		m.setFocus(focusQuery)
		return m, nil
	}

	if m.focus == focusResults {
		return m.handleResultsKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "down":
		if len(m.flat) > 0 {
			m.setFocus(focusResults)
		}
		return m, nil
	case "esc":
		m.setFocus(focusQuery)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusQuery:
		m.queryInput, cmd = m.queryInput.Update(msg)
		m.coord.SetQuery(m.queryInput.Value())
	case focusFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.coord.SetFileFilter(m.filterInput.Value())
	case focusReplace:
		m.replaceInput, cmd = m.replaceInput.Update(msg)
		m.coord.SetReplacement(m.replaceInput.Value())
	}
	return m, cmd
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, m.quit()

	case "esc", "/":
		m.setFocus(focusQuery)
		return m, nil

	case "up", "k":
		m.moveSelection(-1)
		return m, nil

	case "down", "j":
		m.moveSelection(1)
		return m, nil

	case "pgup":
		m.moveSelection(-m.resultsHeight())
		return m, nil

	case "pgdown":
		m.moveSelection(m.resultsHeight())
		return m, nil

	case "g":
		m.selected = 0
		m.scroll = 0
		return m, nil

	case "G":
		m.moveSelection(len(m.flat))
		return m, nil

	case "enter":
		if ref, ok := m.currentRef(); ok {
			file := m.results[ref.file]
			return m, m.openPreview(file.Path)
		}
		return m, nil

	case "r":
		if ref, ok := m.currentRef(); ok {
			m.coord.ReplaceInFile(m.results[ref.file].Path)
		}
		return m, nil

	case "R":
		if len(m.results) > 0 {
			m.coord.ReplaceAll()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	if m.config.UISettings.RememberRoot {
		m.config.LastRoot = m.coord.Root()
	}
	m.coord.Stop()
	return tea.Quit
}

func (m *Model) cycleFocus(dir int) {
	order := []focusArea{focusQuery, focusFilter, focusReplace, focusResults}
	for i, f := range order {
		if f == m.focus {
			next := (i + dir + len(order)) % len(order)
			if order[next] == focusResults && len(m.flat) == 0 {
				next = (next + dir + len(order)) % len(order)
			}
			m.setFocus(order[next])
			return
		}
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.queryInput.Blur()
	m.filterInput.Blur()
	m.replaceInput.Blur()
	switch f {
	case focusQuery:
		m.queryInput.Focus()
	case focusFilter:
		m.filterInput.Focus()
	case focusReplace:
		m.replaceInput.Focus()
	}
}

func (m *Model) rebuildFlat() {
	m.flat = m.flat[:0]
	for fi, file := range m.results {
		for mi := range file.Matches {
			m.flat = append(m.flat, matchRef{file: fi, match: mi})
		}
	}
	if m.selected >= len(m.flat) {
		m.selected = len(m.flat) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if len(m.flat) == 0 && m.focus == focusResults {
		m.setFocus(focusQuery)
	}
}

func (m *Model) moveSelection(delta int) {
	if len(m.flat) == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.flat) {
		m.selected = len(m.flat) - 1
	}
}

func (m *Model) currentRef() (matchRef, bool) {
	if m.selected < 0 || m.selected >= len(m.flat) {
		return matchRef{}, false
	}
	return m.flat[m.selected], true
}
