package progress

import "sync"

// Notifier is the store-owned change signal for daily-history writes.
// Subscribers are invoked synchronously on the writer's goroutine, strictly
// after the write, so a subscriber that re-reads the store always observes
// the new state. There is no payload: the contract is "write, then notify,
// then re-read".
type Notifier struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func())}
}

// Subscribe registers fn and returns its unsubscribe function. Views
// subscribe on mount and must unsubscribe on teardown.
func (n *Notifier) Subscribe(fn func()) (unsubscribe func()) {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *Notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
