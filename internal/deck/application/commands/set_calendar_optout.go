package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/felixgeelhaar/deckctl/pkg/observability"
)

const (
	// DeckAppID is the preference namespace owned by Deck.
	DeckAppID = "deck"
	// CalendarKey holds the calendar/tasks integration preference.
	CalendarKey = "calendar"
	// CalendarEnabledValue marks the integration as enabled (opt-out mode).
	// Any other value, including "", means opt-in only.
	CalendarEnabledValue = "yes"
)

// UserDirectory lists the registered users.
type UserDirectory interface {
	Search(ctx context.Context, pattern string) ([]*domain.User, error)
}

// SettingsStore writes per-user preferences.
type SettingsStore interface {
	SetUserValue(ctx context.Context, uid domain.UID, appID, key, value string) error
}

// SetCalendarOptOutCommand contains the flags of a bulk calendar opt-out run.
// Setting neither flag disables the integration, the same as Disable.
type SetCalendarOptOutCommand struct {
	Enable  bool
	Disable bool
}

// Value returns the preference value written for every user.
func (c SetCalendarOptOutCommand) Value() string {
	if c.Enable {
		return CalendarEnabledValue
	}
	return ""
}

// SetCalendarOptOutResult summarizes a completed run.
type SetCalendarOptOutResult struct {
	Updated int
	Enabled bool
}

// ProgressFunc is called once per user after its preference has been written.
type ProgressFunc func(uid domain.UID, enabled bool)

// SetCalendarOptOutHandler handles the SetCalendarOptOutCommand.
type SetCalendarOptOutHandler struct {
	users    UserDirectory
	settings SettingsStore
	logger   *slog.Logger
}

// NewSetCalendarOptOutHandler creates a new SetCalendarOptOutHandler.
func NewSetCalendarOptOutHandler(users UserDirectory, settings SettingsStore, logger *slog.Logger) *SetCalendarOptOutHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SetCalendarOptOutHandler{
		users:    users,
		settings: settings,
		logger:   logger,
	}
}

// Handle writes the calendar preference for every user, in directory order.
// A failed write stops the run; users already written keep their new value.
func (h *SetCalendarOptOutHandler) Handle(ctx context.Context, cmd SetCalendarOptOutCommand, progress ProgressFunc) (SetCalendarOptOutResult, error) {
	if cmd.Enable && cmd.Disable {
		return SetCalendarOptOutResult{}, ErrConflictingOptions
	}

	result := SetCalendarOptOutResult{Enabled: cmd.Enable}
	value := cmd.Value()

	users, err := h.users.Search(ctx, "")
	if err != nil {
		return result, fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		uid := user.UID()
		if err := h.settings.SetUserValue(ctx, uid, DeckAppID, CalendarKey, value); err != nil {
			return result, fmt.Errorf("failed to update calendar preference for %s: %w", uid, err)
		}
		result.Updated++

		h.logger.DebugContext(ctx, "calendar preference updated",
			observability.UserIDKey, uid.String(),
			"enabled", cmd.Enable,
		)
		if progress != nil {
			progress(uid, cmd.Enable)
		}
	}

	h.logger.InfoContext(ctx, "calendar opt-out applied",
		"enabled", cmd.Enable,
		"updated", result.Updated,
	)
	return result, nil
}
