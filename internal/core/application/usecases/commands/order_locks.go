package commands

import (
	"context"
	"hash/fnv"

	"orderflow/internal/core/domain/model/kernel"
)

const orderLockStripes = 256

// orderLocks serializes status changes of one order from the conditional
// update until their notifications are queued and the event is emitted, so
// batches reach the dispatcher in commit order. Orders hashing to the same
// stripe share a lock.
type orderLocks struct {
	stripes []chan struct{}
}

func newOrderLocks(n int) *orderLocks {
	stripes := make([]chan struct{}, n)
	for i := range stripes {
		stripes[i] = make(chan struct{}, 1)
	}
	return &orderLocks{stripes: stripes}
}

// acquire waits for the stripe of orderID until ctx is done. A free stripe is
// taken even when ctx is already done.
func (l *orderLocks) acquire(ctx context.Context, orderID kernel.UUID) (func(), error) {
	stripe := l.stripes[l.stripeOf(orderID)]
	release := func() { <-stripe }

	select {
	case stripe <- struct{}{}:
		return release, nil
	default:
	}

	select {
	case stripe <- struct{}{}:
		return release, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *orderLocks) stripeOf(orderID kernel.UUID) int {
	h := fnv.New32a()
	id := orderID.Bytes()
	_, _ = h.Write(id[:])
	return int(h.Sum32() % uint32(len(l.stripes)))
}
