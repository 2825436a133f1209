package bus

import "sync"

// Handler receives a published message.
type Handler func(Message)

type subscription struct {
	id      int
	handler Handler
}

// Bus is the single dispatch point for broadcasts. Delivery is synchronous, in
// subscription order, on the publishing goroutine.
type Bus struct {
	mu     *sync.Mutex
	subs   []subscription
	nextID int
}

func New() *Bus {
	return &Bus{mu: &sync.Mutex{}}
}

// Subscribe registers h and returns a function that removes it again. The
// returned function is safe to call more than once.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers m to every current subscriber. Handlers may publish or
// (un)subscribe themselves; changes apply from the next Publish.
func (b *Bus) Publish(m Message) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(m)
	}
}

// Len is the number of current subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
