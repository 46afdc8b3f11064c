package slideswitch

// SavedState is what a host persists for a switch: its own opaque state
// plus the open flag.
type SavedState struct {
	InstanceState []byte
	IsOpen        bool
}

// OpenFlag returns the committed open state for persistence.
func (s *Switch) OpenFlag() bool {
	return s.open
}

// RestoreOpenFlag restores a persisted open state. The thumb snaps to the
// matching edge without animation and the listener is not notified.
func (s *Switch) RestoreOpenFlag(open bool) {
	if s.disposed {
		return
	}

	s.cancelSettle()
	s.gesture = nil
	s.open = open

	if s.laidOut {
		s.snap()
		s.requestRedraw()
	}
}

// SaveInstanceState bundles the host's state with the open flag.
func (s *Switch) SaveInstanceState(host []byte) SavedState {
	return SavedState{
		InstanceState: host,
		IsOpen:        s.open,
	}
}

// RestoreInstanceState restores the open flag and hands back the host's state.
func (s *Switch) RestoreInstanceState(state SavedState) []byte {
	s.RestoreOpenFlag(state.IsOpen)

	return state.InstanceState
}
