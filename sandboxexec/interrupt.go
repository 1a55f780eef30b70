package sandboxexec

import "sync"

// Interrupt is a reusable, broadcast-style cancellation signal shared across
// possibly many concurrent [Orchestrator.Run] calls. Each call observes the
// *next* call to [Interrupt.Notify] independently of how many times Notify
// was called before it started watching — the same shape as tokio::sync's
// Notify, which this mirrors because the Orchestrator's race (child exit vs
// timeout vs interrupt) needs exactly this "next notification" semantics
// rather than a one-shot close.
//
// The zero value is not usable; construct with [NewInterrupt].
type Interrupt struct {
	mu sync.Mutex
	ch chan struct{}
}

// NewInterrupt returns a ready-to-use Interrupt.
func NewInterrupt() *Interrupt {
	return &Interrupt{ch: make(chan struct{})}
}

// Notify wakes every call currently waiting on [Interrupt.Notified] and
// arms a fresh channel for subsequent waiters.
func (n *Interrupt) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()

	close(n.ch)
	n.ch = make(chan struct{})
}

// Notified returns a channel that is closed on the next call to Notify.
func (n *Interrupt) Notified() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.ch
}
