package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"dbexplorer/internal/theme"
)

type themeChangedMsg struct {
	Theme theme.Theme
	// Watching is false when the watcher could not start; no further
	// messages follow.
	Watching bool
}

// themeWatcher turns filesystem events on the Omarchy theme into
// themeChangedMsg. Events are coalesced into a single pending signal.
type themeWatcher struct {
	ch      chan struct{}
	started bool
	ok      bool
}

func newThemeWatcher() *themeWatcher {
	return &themeWatcher{ch: make(chan struct{}, 1)}
}

func (w *themeWatcher) start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, p := range theme.OmarchyPaths() {
		_ = fw.Add(p)
	}
	go func() {
		for {
			select {
			case _, ok := <-fw.Events:
				if !ok {
					return
				}
				w.signal()
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Printf("theme watcher: %v", err)
			}
		}
	}()
	return nil
}

func (w *themeWatcher) signal() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// startCmd reports the current theme, then keeps waiting for changes.
func (w *themeWatcher) startCmd() tea.Cmd {
	return func() tea.Msg {
		if !w.started {
			w.started = true
			if err := w.start(); err != nil {
				log.Printf("theme watcher disabled: %v", err)
			} else {
				w.ok = true
			}
		}
		return themeChangedMsg{Theme: theme.Detect("auto"), Watching: w.ok}
	}
}

func (w *themeWatcher) waitCmd() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.ch
		th := theme.Detect("auto")
		log.Printf("theme reloaded (dark=%v)", th.Dark)
		return themeChangedMsg{Theme: th, Watching: true}
	}
}
