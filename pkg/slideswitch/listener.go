package slideswitch

// Listener is notified on the owner goroutine each time a settle completes
// and whenever SetState changes the logical state. It is never called for
// intermediate drag frames.
type Listener interface {
	Open()
	Close()
}

// ListenerFuncs adapts a pair of functions to a Listener. Nil funcs are skipped.
type ListenerFuncs struct {
	OnOpen  func()
	OnClose func()
}

// Open implements Listener.
func (l ListenerFuncs) Open() {
	if l.OnOpen != nil {
		l.OnOpen()
	}
}

// Close implements Listener.
func (l ListenerFuncs) Close() {
	if l.OnClose != nil {
		l.OnClose()
	}
}

// Listeners fans a notification out to several listeners in order.
type Listeners []Listener

// Open implements Listener.
func (ls Listeners) Open() {
	for _, l := range ls {
		l.Open()
	}
}

// Close implements Listener.
func (ls Listeners) Close() {
	for _, l := range ls {
		l.Close()
	}
}
