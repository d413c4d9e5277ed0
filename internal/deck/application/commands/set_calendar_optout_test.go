package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/deckctl/internal/identity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	uids   []string
	err    error
	calls  int
	filter []string
}

func (s *stubDirectory) Search(ctx context.Context, pattern string) ([]*domain.User, error) {
	s.calls++
	s.filter = append(s.filter, pattern)
	if s.err != nil {
		return nil, s.err
	}
	users := make([]*domain.User, 0, len(s.uids))
	for _, uid := range s.uids {
		users = append(users, domain.RehydrateUser(domain.MustUID(uid), uid, time.Now()))
	}
	return users, nil
}

type write struct {
	uid, appID, key, value string
}

type recordingStore struct {
	writes []write
	state  map[string]string
	failOn string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{state: make(map[string]string)}
}

func (r *recordingStore) SetUserValue(ctx context.Context, uid domain.UID, appID, key, value string) error {
	if uid.String() == r.failOn {
		return errors.New("store unavailable")
	}
	r.writes = append(r.writes, write{uid.String(), appID, key, value})
	r.state[uid.String()+"/"+appID+"/"+key] = value
	return nil
}

type progressLine struct {
	uid     string
	enabled bool
}

func collect(lines *[]progressLine) ProgressFunc {
	return func(uid domain.UID, enabled bool) {
		*lines = append(*lines, progressLine{uid.String(), enabled})
	}
}

func TestSetCalendarOptOut_Enable(t *testing.T) {
	dir := &stubDirectory{uids: []string{"alice", "bob"}}
	store := newRecordingStore()
	handler := NewSetCalendarOptOutHandler(dir, store, nil)

	var lines []progressLine
	result, err := handler.Handle(context.Background(), SetCalendarOptOutCommand{Enable: true}, collect(&lines))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Updated)
	assert.True(t, result.Enabled)
	assert.Equal(t, []string{""}, dir.filter)
	assert.Equal(t, []write{
		{"alice", "deck", "calendar", "yes"},
		{"bob", "deck", "calendar", "yes"},
	}, store.writes)
	assert.Equal(t, []progressLine{{"alice", true}, {"bob", true}}, lines)
}

func TestSetCalendarOptOut_DisableAndDefault(t *testing.T) {
	tests := []struct {
		name string
		cmd  SetCalendarOptOutCommand
	}{
		{"off flag", SetCalendarOptOutCommand{Disable: true}},
		{"no flags", SetCalendarOptOutCommand{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &stubDirectory{uids: []string{"alice", "bob", "carol"}}
			store := newRecordingStore()
			handler := NewSetCalendarOptOutHandler(dir, store, nil)

			var lines []progressLine
			result, err := handler.Handle(context.Background(), tt.cmd, collect(&lines))
			require.NoError(t, err)

			assert.Equal(t, 3, result.Updated)
			assert.False(t, result.Enabled)
			require.Len(t, store.writes, 3)
			for _, w := range store.writes {
				assert.Equal(t, "", w.value)
			}
			for _, l := range lines {
				assert.False(t, l.enabled)
			}
		})
	}
}

func TestSetCalendarOptOut_ConflictingOptions(t *testing.T) {
	dir := &stubDirectory{uids: []string{"alice"}}
	store := newRecordingStore()
	handler := NewSetCalendarOptOutHandler(dir, store, nil)

	var lines []progressLine
	result, err := handler.Handle(context.Background(), SetCalendarOptOutCommand{Enable: true, Disable: true}, collect(&lines))

	assert.ErrorIs(t, err, ErrConflictingOptions)
	assert.Zero(t, result.Updated)
	assert.Zero(t, dir.calls)
	assert.Empty(t, store.writes)
	assert.Empty(t, lines)
}

func TestSetCalendarOptOut_NoUsers(t *testing.T) {
	for _, cmd := range []SetCalendarOptOutCommand{{Enable: true}, {Disable: true}, {}} {
		store := newRecordingStore()
		handler := NewSetCalendarOptOutHandler(&stubDirectory{}, store, nil)

		result, err := handler.Handle(context.Background(), cmd, nil)
		require.NoError(t, err)
		assert.Zero(t, result.Updated)
		assert.Empty(t, store.writes)
	}
}

func TestSetCalendarOptOut_Idempotent(t *testing.T) {
	dir := &stubDirectory{uids: []string{"alice", "bob"}}
	store := newRecordingStore()
	handler := NewSetCalendarOptOutHandler(dir, store, nil)
	cmd := SetCalendarOptOutCommand{Enable: true}

	_, err := handler.Handle(context.Background(), cmd, nil)
	require.NoError(t, err)
	first := make(map[string]string, len(store.state))
	for k, v := range store.state {
		first[k] = v
	}

	_, err = handler.Handle(context.Background(), cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, first, store.state)
}

func TestSetCalendarOptOut_OverwritesPreviousValue(t *testing.T) {
	dir := &stubDirectory{uids: []string{"alice"}}
	store := newRecordingStore()
	handler := NewSetCalendarOptOutHandler(dir, store, nil)

	_, err := handler.Handle(context.Background(), SetCalendarOptOutCommand{Enable: true}, nil)
	require.NoError(t, err)
	_, err = handler.Handle(context.Background(), SetCalendarOptOutCommand{Disable: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, "", store.state["alice/deck/calendar"])
}

func TestSetCalendarOptOut_DirectoryError(t *testing.T) {
	dir := &stubDirectory{err: errors.New("directory down")}
	store := newRecordingStore()
	handler := NewSetCalendarOptOutHandler(dir, store, nil)

	_, err := handler.Handle(context.Background(), SetCalendarOptOutCommand{Enable: true}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, dir.err)
	assert.Empty(t, store.writes)
}

func TestSetCalendarOptOut_WriteErrorStopsRun(t *testing.T) {
	dir := &stubDirectory{uids: []string{"alice", "bob", "carol"}}
	store := newRecordingStore()
	store.failOn = "bob"
	handler := NewSetCalendarOptOutHandler(dir, store, nil)

	var lines []progressLine
	result, err := handler.Handle(context.Background(), SetCalendarOptOutCommand{Enable: true}, collect(&lines))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bob")
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, []write{{"alice", "deck", "calendar", "yes"}}, store.writes)
	assert.Equal(t, []progressLine{{"alice", true}}, lines)
}

func TestSetCalendarOptOutCommand_Value(t *testing.T) {
	assert.Equal(t, "yes", SetCalendarOptOutCommand{Enable: true}.Value())
	assert.Equal(t, "", SetCalendarOptOutCommand{Disable: true}.Value())
	assert.Equal(t, "", SetCalendarOptOutCommand{}.Value())
}
