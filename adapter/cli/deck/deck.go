package deck

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/deckctl/adapter/cli"
	"github.com/felixgeelhaar/deckctl/internal/deck/application/commands"
	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
)

// CalendarOptOutCmd sets the calendar/tasks integration preference for every user.
var CalendarOptOutCmd = &cobra.Command{
	Use:   "deck:calendar-optout",
	Short: "Set Deck calendar/tasks integration to opt-out for all users (enabled by default, users can opt-out).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SetCalendarOptOutHandler == nil {
			return errors.New("calendar opt-out handler not configured")
		}

		out := cmd.OutOrStdout()
		result, err := app.SetCalendarOptOutHandler.Handle(cmd.Context(),
			commands.SetCalendarOptOutCommand{Enable: optOutOn, Disable: optOutOff},
			func(uid domain.UID, enabled bool) {
				fmt.Fprintf(out, "Set calendar integration to '%s' for user: %s\n", onOff(enabled), uid)
			},
		)
		if errors.Is(err, commands.ErrConflictingOptions) {
			fmt.Fprintln(out, "Cannot use --on and --off together.")
			return cli.ExitCode(1)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Done. Updated %d users.\n", result.Updated)
		return nil
	},
}

var (
	optOutOn  bool
	optOutOff bool
)

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func init() {
	CalendarOptOutCmd.Flags().BoolVar(&optOutOn, "on", false, "Enable calendar/tasks integration for all users (opt-out, default)")
	CalendarOptOutCmd.Flags().BoolVar(&optOutOff, "off", false, "Disable calendar/tasks integration for all users (opt-in)")
}
