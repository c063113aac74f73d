package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"grepagrip/internal/config"
	"grepagrip/internal/eventbus"
	"grepagrip/internal/executor"
	"grepagrip/internal/search"
	"grepagrip/internal/ui"
	"grepagrip/internal/vcs"
	"grepagrip/internal/watch"
)

func main() {
	// Parse command line arguments
	var targetDir string
	flag.StringVar(&targetDir, "dir", "", "Directory to search in")
	flag.StringVar(&targetDir, "d", "", "Directory to search in (shorthand)")
	initialQuery := flag.String("query", "", "Initial search query")
	flag.Parse()

	// If no directory specified, check for remaining args
	if targetDir == "" && flag.NArg() > 0 {
		targetDir = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("grepagrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	// Fall back to the remembered root, then the current directory
	if targetDir == "" && cfg.UISettings.RememberRoot && cfg.LastRoot != "" {
		if info, err := os.Stat(cfg.LastRoot); err == nil && info.IsDir() {
			targetDir = cfg.LastRoot
		}
	}
	if targetDir == "" {
		targetDir, err = os.Getwd()
		if err != nil {
			fmt.Printf("Error getting current directory: %v\n", err)
			os.Exit(1)
		}
	}

	// Resolve to absolute path
	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// Initialize services
	coordinator := search.NewCoordinator(bus, executor.NewProcessRunner(), vcs.GitProbe)
	coordinator.SetDebounceDelay(time.Duration(cfg.DebounceMs) * time.Millisecond)
	coordinator.SetCaseSensitive(cfg.Defaults.CaseSensitive)
	coordinator.SetUseRegex(cfg.Defaults.UseRegex)
	coordinator.SetWholeWord(cfg.Defaults.WholeWord)
	coordinator.SetFileFilter(cfg.Defaults.FileFilter)
	if *initialQuery != "" {
		coordinator.SetQuery(*initialQuery)
	}

	watchSvc := watch.NewWatchService(bus) // re-arms itself on root changes
	defer watchSvc.Stop()

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Printf("UI event channel full, dropping event: %v", e.Type())
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventSearchStarted,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventSearchCleared,
		eventbus.EventReplaceStarted,
		eventbus.EventReplaceCompleted,
		eventbus.EventRootChanged,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forward)
	}

	// Create UI model and program
	model := ui.NewModel(bus, coordinator, cfg, eventChan)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Point the coordinator at the root; this arms the watcher and, if a
	// query was given, kicks off the first scan immediately.
	coordinator.SetRoot(absDir)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Persist settings for the next session
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}
