// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/calendar"
)

// PageLoadedMsg is sent when resources and events for a page are loaded.
type PageLoadedMsg struct {
	Start     time.Time // first day of the loaded range
	End       time.Time // exclusive
	Resources []calendar.Resource
	Events    []calendar.RawEvent
}

// RescheduledMsg is sent after a reschedule intent has been stored.
type RescheduledMsg struct {
	Intent calendar.RescheduleIntent
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadPage loads all resources and the events overlapping [start, end).
func LoadPage(repo calendar.Repository, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		resources, err := repo.ListResources(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading resources: %w", err)}
		}

		events, err := repo.ListEventsBetween(ctx, start, end)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading events: %w", err)}
		}

		return PageLoadedMsg{
			Start:     start,
			End:       end,
			Resources: resources,
			Events:    events,
		}
	}
}

// ApplyReschedule stores a committed drag.
func ApplyReschedule(repo calendar.Repository, intent calendar.RescheduleIntent) tea.Cmd {
	return func() tea.Msg {
		if err := repo.ApplyReschedule(context.Background(), intent); err != nil {
			return ErrMsg{Err: fmt.Errorf("rescheduling %q: %w", intent.Event.Title, err)}
		}
		return RescheduledMsg{Intent: intent}
	}
}

// Status emits a temporary status message.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}
