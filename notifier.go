package swiftbatch

import (
	"context"
	"sync"

	"github.com/SwiftBridge/swift-batch-transactions-contract/sdk"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// Observer receives contract events in emission order.
//
// Events raised by a state-changing call are delivered once that call has committed and released
// the contract, before it returns to its caller. ctx is the caller's context, so an observer may
// call back into the contract.
type Observer func(ctx context.Context, e types.Event)

// notifier fans events out to observers.
type notifier struct {
	mu        sync.RWMutex
	observers []Observer
}

func (n *notifier) subscribe(o Observer) {
	if o == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.observers = append(n.observers, o)
}

// emit delivers events to every observer. A panicking observer is logged and skipped.
func (n *notifier) emit(ctx context.Context, logger sdk.Logger, events ...types.Event) {
	if len(events) == 0 {
		return
	}

	n.mu.RLock()
	observers := n.observers
	n.mu.RUnlock()

	for _, e := range events {
		for _, o := range observers {
			deliver(ctx, logger, o, e)
		}
	}
}

func deliver(ctx context.Context, logger sdk.Logger, o Observer, e types.Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("Observer of %s panicked: %v", e.EventName(), r)
		}
	}()

	o(ctx, e)
}

type outboxKey struct{}

// outbox holds the events of one guarded call until the guard is released.
type outbox struct {
	mu     sync.Mutex
	events []types.Event
}

func (b *outbox) add(e types.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, e)
}

func (b *outbox) drain() []types.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := b.events
	b.events = nil

	return events
}
