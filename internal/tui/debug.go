package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/javiermolinar/rota/internal/calendar"
)

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	log.Debug().Str("event", "key_press").Str("key", msg.String()).Send()
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	log.Debug().
		Str("event", "mode_change").
		Str("from", modeString(from)).
		Str("to", modeString(to)).
		Str("reason", reason).
		Send()
}

// LogNavigation logs the page after a view or date change.
func LogNavigation(nav *calendar.Navigator, reason string) {
	log.Debug().
		Str("event", "navigate").
		Str("view", string(nav.View())).
		Str("active", nav.Active().Format("2006-01-02")).
		Str("reason", reason).
		Send()
}

// LogDragStart logs the start of a pointer drag.
func LogDragStart(st calendar.DragState) {
	log.Debug().
		Str("event", "drag_start").
		Str("event_id", st.EventID).
		Float64("x", st.StartX).
		Float64("y", st.StartY).
		Int("row", st.TargetRow).
		Send()
}

// LogDragCancel logs an abandoned drag.
func LogDragCancel(eventID, reason string) {
	log.Debug().
		Str("event", "drag_cancel").
		Str("event_id", eventID).
		Str("reason", reason).
		Send()
}

// LogReschedule logs a committed reschedule.
func LogReschedule(intent calendar.RescheduleIntent) {
	log.Debug().
		Str("event", "reschedule").
		Str("event_id", intent.Event.ID).
		Int("delta_days", intent.DeltaDays).
		Str("from_resource", intent.Origin.ResourceID).
		Str("to_resource", intent.ResourceID).
		Str("start", intent.Event.Start.String()).
		Str("end", intent.Event.End.String()).
		Send()
}

// LogError logs an error surfaced to the status bar.
func LogError(err error, context string) {
	log.Error().Err(err).Str("context", context).Send()
}

// modeString returns a string representation of a Mode.
func modeString(m Mode) string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModePrompt:
		return "Prompt"
	default:
		return "Unknown"
	}
}
