// Package state persists a switch's saved state as a small TOML file.
package state

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/alkime/slideswitch/internal/notify"
	"github.com/alkime/slideswitch/internal/workdir"
	"github.com/alkime/slideswitch/pkg/slideswitch"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no saved state")

// file is the on-disk layout.
type file struct {
	IsOpen        bool   `toml:"is_open"`
	InstanceState string `toml:"instance_state,omitempty"`
}

// Store reads and writes the state file.
type Store struct {
	path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns a store in the user's slideswitch directory.
func DefaultStore() (*Store, error) {
	p, err := workdir.FilePath(workdir.StateFile)
	if err != nil {
		return nil, err
	}

	return NewStore(p), nil
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved state.
func (s *Store) Load() (slideswitch.SavedState, error) {
	var f file
	if _, err := toml.DecodeFile(s.path, &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return slideswitch.SavedState{}, ErrNotFound
		}

		return slideswitch.SavedState{}, fmt.Errorf("failed to read state %s: %w", s.path, err)
	}

	host, err := base64.StdEncoding.DecodeString(f.InstanceState)
	if err != nil {
		return slideswitch.SavedState{}, fmt.Errorf("failed to decode instance state: %w", err)
	}

	return slideswitch.SavedState{
		InstanceState: host,
		IsOpen:        f.IsOpen,
	}, nil
}

// Save writes st, replacing any previous state.
func (s *Store) Save(st slideswitch.SavedState) error {
	f := file{
		IsOpen: st.IsOpen,
	}
	if len(st.InstanceState) > 0 {
		f.InstanceState = base64.StdEncoding.EncodeToString(st.InstanceState)
	}

	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(&f); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := workdir.Prep(s.path); err != nil {
		return err
	}

	if err := os.WriteFile(s.path, buffer.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write state %s: %w", s.path, err)
	}

	return nil
}

// SaveOpenFlag updates only the open flag, keeping the host's state.
func (s *Store) SaveOpenFlag(open bool) error {
	st, err := s.Load()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	st.IsOpen = open

	return s.Save(st)
}

// Reset deletes the saved state.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove state %s: %w", s.path, err)
	}

	return nil
}

// Autosave writes the open flag for every transition received on ch until
// ch is closed or ctx is done.
func (s *Store) Autosave(ctx context.Context, ch <-chan notify.Transition) {
	for {
		select {
		case <-ctx.Done():
			return
		case tr, ok := <-ch:
			if !ok {
				return
			}

			if err := s.SaveOpenFlag(tr.Open); err != nil {
				slog.Error("Failed to autosave switch state", "error", err)
				continue
			}

			slog.Debug("Autosaved switch state", "open", tr.Open, "path", s.path)
		}
	}
}
