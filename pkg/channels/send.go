package channels

import "time"

// SendNonBlock offers msg to ch and returns immediately.
// It fails with ErrChannelFull if nobody can take msg now.
func SendNonBlock[T any](ch chan<- T, msg T) error {
	return send(ch, msg, nil)
}

// SendWithTimeout waits at most timeout for ch to accept msg.
func SendWithTimeout[T any](ch chan<- T, msg T, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	return send(ch, msg, timer.C)
}

// send delivers msg, giving up when expire fires. A nil expire never waits.
func send[T any](ch chan<- T, msg T, expire <-chan time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	if expire == nil {
		select {
		case ch <- msg:
			return nil
		default:
			return ErrChannelFull
		}
	}

	select {
	case ch <- msg:
		return nil
	case <-expire:
		return ErrChannelTimeout
	}
}
