// Package channels holds small channel helpers for handing values between
// goroutines without blocking the sender.
package channels

import (
	"errors"
)

// Send failures. A closed channel is reported rather than panicking.
var (
	ErrChannelClosed  = errors.New("channel closed")
	ErrChannelTimeout = errors.New("send timeout")
	ErrChannelFull    = errors.New("channel full")
)
