package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted    EventType = "SearchStarted"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchFailed     EventType = "SearchFailed"
	EventSearchCleared    EventType = "SearchCleared"
	EventReplaceStarted   EventType = "ReplaceStarted"
	EventReplaceCompleted EventType = "ReplaceCompleted"
	EventRootChanged      EventType = "RootChanged"
	EventRefreshRequested EventType = "RefreshRequested"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventError            EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a scan generation is dispatched
type SearchStartedEvent struct {
	Generation int64
	Options    MatchOptions
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when the current generation publishes results
type SearchCompletedEvent struct {
	Generation   int64
	Results      []FileResult
	TotalMatches int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the backend rejected the pattern
type SearchFailedEvent struct {
	Generation   int64
	PatternError string
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchClearedEvent is emitted when the query empties or the state is reset
type SearchClearedEvent struct{}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// ReplaceStartedEvent is emitted when a replace job begins
type ReplaceStartedEvent struct{}

func (e ReplaceStartedEvent) Type() EventType { return EventReplaceStarted }

// ReplaceCompletedEvent is emitted when a replace job finishes
type ReplaceCompletedEvent struct {
	Outcome ReplaceOutcome
}

func (e ReplaceCompletedEvent) Type() EventType { return EventReplaceCompleted }

// RootChangedEvent is emitted when the scan root switches to a new project
type RootChangedEvent struct {
	Root      string
	Versioned bool
}

func (e RootChangedEvent) Type() EventType { return EventRootChanged }

// RefreshRequestedEvent asks the coordinator to re-run the current query,
// e.g. after the watcher saw the tree change
type RefreshRequestedEvent struct{}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Root string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
