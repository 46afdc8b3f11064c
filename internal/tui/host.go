package tui

import (
	"encoding/json"
	"fmt"

	"github.com/alkime/slideswitch/pkg/slideswitch"
)

// hostState is the TUI's own part of the saved state, stored as the
// switch's opaque instance state.
type hostState struct {
	Shape     string `json:"shape"`
	Slideable bool   `json:"slideable"`
}

// SaveState captures the switch together with the TUI's settings.
func SaveState(sw *slideswitch.Switch) (slideswitch.SavedState, error) {
	blob, err := json.Marshal(hostState{
		Shape:     sw.Shape().String(),
		Slideable: sw.Slideable(),
	})
	if err != nil {
		return slideswitch.SavedState{}, fmt.Errorf("failed to encode host state: %w", err)
	}

	return sw.SaveInstanceState(blob), nil
}

// RestoreState applies a saved state to sw. The open flag is restored
// without notifying listeners. An empty instance state keeps the current
// shape and slideable settings.
func RestoreState(sw *slideswitch.Switch, saved slideswitch.SavedState) error {
	blob := sw.RestoreInstanceState(saved)
	if len(blob) == 0 {
		return nil
	}

	var hs hostState
	if err := json.Unmarshal(blob, &hs); err != nil {
		return fmt.Errorf("failed to decode host state: %w", err)
	}

	shape, err := slideswitch.ParseShape(hs.Shape)
	if err != nil {
		return fmt.Errorf("failed to restore shape: %w", err)
	}

	sw.SetShape(shape)
	sw.SetSlideable(hs.Slideable)

	return nil
}
