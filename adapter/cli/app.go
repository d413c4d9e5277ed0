package cli

import (
	deckCommands "github.com/felixgeelhaar/deckctl/internal/deck/application/commands"
	identitySettings "github.com/felixgeelhaar/deckctl/internal/identity/application/settings"
	identityDomain "github.com/felixgeelhaar/deckctl/internal/identity/domain"
)

// App holds the CLI application dependencies.
type App struct {
	// Deck Command Handlers
	SetCalendarOptOutHandler *deckCommands.SetCalendarOptOutHandler

	// Identity
	Users           identityDomain.UserRepository
	SettingsService *identitySettings.Service
}

// NewApp creates a new CLI application with all handlers.
func NewApp(
	setCalendarOptOutHandler *deckCommands.SetCalendarOptOutHandler,
	users identityDomain.UserRepository,
	settingsService *identitySettings.Service,
) *App {
	return &App{
		SetCalendarOptOutHandler: setCalendarOptOutHandler,
		Users:                    users,
		SettingsService:          settingsService,
	}
}

var app *App

// SetApp sets the global app instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global app instance.
func GetApp() *App {
	return app
}
