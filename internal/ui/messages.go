package ui

import (
	"grepagrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerFinishedMsg contains the result of a file preview pager run
type pagerFinishedMsg struct {
	path string
	err  error
}
