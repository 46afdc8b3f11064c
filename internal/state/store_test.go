package state_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alkime/slideswitch/internal/notify"
	"github.com/alkime/slideswitch/internal/state"
	"github.com/alkime/slideswitch/pkg/slideswitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(filepath.Join(t.TempDir(), "nested", "state.toml"))
}

func TestStore_LoadMissing(t *testing.T) {
	_, err := newStore(t).Load()
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestStore_RoundTrip(t *testing.T) {
	s := newStore(t)

	want := slideswitch.SavedState{InstanceState: []byte(`{"shape":"circle"}`), IsOpen: true}
	require.NoError(t, s.Save(want))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "is_open = true")

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveOpenFlagKeepsHostState(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(slideswitch.SavedState{InstanceState: []byte("host"), IsOpen: true}))

	require.NoError(t, s.SaveOpenFlag(false))

	got, err := s.Load()
	require.NoError(t, err)
	assert.False(t, got.IsOpen)
	assert.Equal(t, []byte("host"), got.InstanceState)
}

func TestStore_Reset(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Reset(), "reset without a file is fine")

	require.NoError(t, s.SaveOpenFlag(true))
	require.NoError(t, s.Reset())

	_, err := s.Load()
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestStore_Autosave(t *testing.T) {
	s := newStore(t)
	ch := make(chan notify.Transition, 2)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Autosave(context.Background(), ch)
	}()

	ch <- notify.Transition{Open: true, At: time.Now()}
	close(ch)
	<-done

	got, err := s.Load()
	require.NoError(t, err)
	assert.True(t, got.IsOpen)
}
