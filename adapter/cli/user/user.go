package user

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/deckctl/adapter/cli"
	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
)

// ListCmd prints every user known to the directory.
var ListCmd = &cobra.Command{
	Use:   "user:list [search]",
	Short: "List users, optionally filtered by uid or display name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Users == nil {
			return errors.New("user directory not configured")
		}

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}
		users, err := app.Users.Search(cmd.Context(), pattern)
		if err != nil {
			return err
		}

		if listJSON {
			uids := make([]string, 0, len(users))
			for _, u := range users {
				uids = append(uids, u.UID().String())
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(uids)
		}
		for _, u := range users {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", u.UID(), u.DisplayName())
		}
		return nil
	},
}

// SettingCmd reads, writes or deletes one preference of one user.
var SettingCmd = &cobra.Command{
	Use:   "user:setting <uid> <app> <key> [value]",
	Short: "Read or modify a user preference",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SettingsService == nil {
			return errors.New("settings service not configured")
		}

		uid, err := domain.NewUID(args[0])
		if err != nil {
			return err
		}
		appID, key := args[1], args[2]
		out := cmd.OutOrStdout()

		switch {
		case settingDelete:
			if len(args) == 4 {
				return errors.New("--delete does not take a value")
			}
			if err := app.SettingsService.DeleteUserValue(cmd.Context(), uid, appID, key); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %s/%s for user: %s\n", appID, key, uid)
		case len(args) == 4:
			if err := app.SettingsService.SetUserValue(cmd.Context(), uid, appID, key, args[3]); err != nil {
				return err
			}
			fmt.Fprintf(out, "Set %s/%s to '%s' for user: %s\n", appID, key, args[3], uid)
		default:
			value, err := app.SettingsService.GetUserValue(cmd.Context(), uid, appID, key)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
		}
		return nil
	},
}

var (
	listJSON      bool
	settingDelete bool
)

func init() {
	ListCmd.Flags().BoolVar(&listJSON, "json", false, "output uids as a JSON array")
	SettingCmd.Flags().BoolVar(&settingDelete, "delete", false, "delete the preference")
}
