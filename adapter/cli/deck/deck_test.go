package deck

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/deckctl/adapter/cli"
	"github.com/felixgeelhaar/deckctl/internal/deck/application/commands"
	identitySettings "github.com/felixgeelhaar/deckctl/internal/identity/application/settings"
	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
)

type stubDirectory struct {
	uids []string
	err  error
}

func (s stubDirectory) Save(ctx context.Context, user *domain.User) error { return nil }

func (s stubDirectory) FindByUID(ctx context.Context, uid domain.UID) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s stubDirectory) Search(ctx context.Context, pattern string) ([]*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	users := make([]*domain.User, 0, len(s.uids))
	for _, uid := range s.uids {
		users = append(users, domain.RehydrateUser(domain.MustUID(uid), uid, time.Now()))
	}
	return users, nil
}

func (s stubDirectory) Delete(ctx context.Context, uid domain.UID) error { return nil }

type memoryPreferences struct {
	values map[string]string
	writes int
	err    error
}

func newMemoryPreferences() *memoryPreferences {
	return &memoryPreferences{values: make(map[string]string)}
}

func (m *memoryPreferences) GetUserValue(ctx context.Context, uid domain.UID, appID, key string) (string, error) {
	return m.values[uid.String()+"/"+appID+"/"+key], nil
}

func (m *memoryPreferences) SetUserValue(ctx context.Context, uid domain.UID, appID, key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.writes++
	m.values[uid.String()+"/"+appID+"/"+key] = value
	return nil
}

func (m *memoryPreferences) DeleteUserValue(ctx context.Context, uid domain.UID, appID, key string) error {
	delete(m.values, uid.String()+"/"+appID+"/"+key)
	return nil
}

func setupApp(t *testing.T, dir stubDirectory, prefs *memoryPreferences) {
	t.Helper()
	settings := identitySettings.NewService(prefs)
	handler := commands.NewSetCalendarOptOutHandler(dir, settings, nil)
	cli.SetApp(cli.NewApp(handler, dir, settings))
	t.Cleanup(func() { cli.SetApp(nil) })
}

// runOptOut parses flags the way cobra would and runs the command.
func runOptOut(t *testing.T, flags ...string) (string, error) {
	t.Helper()
	optOutOn, optOutOff = false, false

	var output strings.Builder
	cmd := CalendarOptOutCmd
	cmd.SetContext(context.Background())
	cmd.SetOut(&output)
	require.NoError(t, cmd.ParseFlags(flags))

	err := cmd.RunE(cmd, nil)
	return output.String(), err
}

func TestCalendarOptOut_On(t *testing.T) {
	prefs := newMemoryPreferences()
	setupApp(t, stubDirectory{uids: []string{"alice", "bob"}}, prefs)

	output, err := runOptOut(t, "--on")
	require.NoError(t, err)

	assert.Equal(t, "Set calendar integration to 'on' for user: alice\n"+
		"Set calendar integration to 'on' for user: bob\n"+
		"Done. Updated 2 users.\n", output)
	assert.Equal(t, 2, prefs.writes)
	assert.Equal(t, "yes", prefs.values["alice/deck/calendar"])
	assert.Equal(t, "yes", prefs.values["bob/deck/calendar"])
}

func TestCalendarOptOut_Off(t *testing.T) {
	for _, flags := range [][]string{{"--off"}, {}} {
		prefs := newMemoryPreferences()
		prefs.values["alice/deck/calendar"] = "yes"
		setupApp(t, stubDirectory{uids: []string{"alice"}}, prefs)

		output, err := runOptOut(t, flags...)
		require.NoError(t, err)

		assert.Contains(t, output, "Set calendar integration to 'off' for user: alice\n")
		assert.Contains(t, output, "Done. Updated 1 users.\n")
		assert.Equal(t, "", prefs.values["alice/deck/calendar"])
	}
}

func TestCalendarOptOut_Conflict(t *testing.T) {
	prefs := newMemoryPreferences()
	setupApp(t, stubDirectory{uids: []string{"alice"}}, prefs)

	output, err := runOptOut(t, "--on", "--off")

	require.Error(t, err)
	assert.Equal(t, 1, cli.ExitCodeOf(err))
	assert.Equal(t, "Cannot use --on and --off together.\n", output)
	assert.Zero(t, prefs.writes)
}

func TestCalendarOptOut_NoUsers(t *testing.T) {
	prefs := newMemoryPreferences()
	setupApp(t, stubDirectory{}, prefs)

	output, err := runOptOut(t, "--on")
	require.NoError(t, err)
	assert.Equal(t, 0, cli.ExitCodeOf(err))
	assert.Equal(t, "Done. Updated 0 users.\n", output)
	assert.Zero(t, prefs.writes)
}

func TestCalendarOptOut_StoreFailure(t *testing.T) {
	prefs := newMemoryPreferences()
	prefs.err = errors.New("database is locked")
	setupApp(t, stubDirectory{uids: []string{"alice"}}, prefs)

	output, err := runOptOut(t, "--on")
	require.Error(t, err)
	assert.Equal(t, 1, cli.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "database is locked")
	assert.NotContains(t, output, "Done.")
}

func TestCalendarOptOut_NotConfigured(t *testing.T) {
	cli.SetApp(nil)

	_, err := runOptOut(t, "--on")
	assert.Error(t, err)
}

func TestCalendarOptOut_Flags(t *testing.T) {
	assert.Equal(t, "deck:calendar-optout", CalendarOptOutCmd.Name())
	for _, name := range []string{"on", "off"} {
		flag := CalendarOptOutCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "false", flag.DefValue)
		assert.Equal(t, "true", flag.NoOptDefVal)
	}
}
