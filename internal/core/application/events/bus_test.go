package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus() (*events.Bus, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return events.NewBus(logger), &buf
}

func sampleEvent() events.OrderStatusChanged {
	return events.OrderStatusChanged{
		OrderID:   kernel.NewUUID(),
		OldStatus: order.Pending,
		NewStatus: order.Confirmed,
	}
}

func TestBus_Emit(t *testing.T) {
	t.Run("should call listeners in registration order", func(t *testing.T) {
		bus, _ := newBus()
		var calls []string
		bus.Add(func(context.Context, events.OrderStatusChanged) error { calls = append(calls, "first"); return nil })
		bus.Add(func(context.Context, events.OrderStatusChanged) error { calls = append(calls, "second"); return nil })

		failed := bus.Emit(context.Background(), sampleEvent())

		assert.Zero(t, failed)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("should isolate failing and panicking listeners", func(t *testing.T) {
		bus, logs := newBus()
		called := false
		bus.Add(func(context.Context, events.OrderStatusChanged) error { panic("boom") })
		bus.Add(func(context.Context, events.OrderStatusChanged) error { return errors.New("broker down") })
		bus.Add(func(context.Context, events.OrderStatusChanged) error { called = true; return nil })

		failed := bus.Emit(context.Background(), sampleEvent())

		assert.Equal(t, 2, failed)
		assert.True(t, called)
		assert.Contains(t, logs.String(), "listener panicked: boom")
		assert.Contains(t, logs.String(), "broker down")
	})

	t.Run("should pass the event through", func(t *testing.T) {
		bus, _ := newBus()
		event := sampleEvent()
		var got events.OrderStatusChanged
		bus.Add(func(_ context.Context, e events.OrderStatusChanged) error { got = e; return nil })

		bus.Emit(context.Background(), event)

		assert.Equal(t, event, got)
	})
}

func TestBus_Add_Remove(t *testing.T) {
	bus, _ := newBus()
	count := 0
	remove := bus.Add(func(context.Context, events.OrderStatusChanged) error { count++; return nil })
	keep := bus.Add(func(context.Context, events.OrderStatusChanged) error { return nil })
	require.Equal(t, 2, bus.Len())

	remove()
	remove()
	bus.Emit(context.Background(), sampleEvent())

	assert.Zero(t, count)
	assert.Equal(t, 1, bus.Len())
	keep()
	assert.Zero(t, bus.Len())
}

func TestBus_ListenerRemovesItselfDuringEmit(t *testing.T) {
	bus, _ := newBus()
	var remove func()
	remove = bus.Add(func(context.Context, events.OrderStatusChanged) error {
		remove()
		return nil
	})

	bus.Emit(context.Background(), sampleEvent())

	assert.Zero(t, bus.Len())
}

func TestBus_ConcurrentUse(t *testing.T) {
	bus, _ := newBus()
	var wg sync.WaitGroup

	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			remove := bus.Add(func(context.Context, events.OrderStatusChanged) error { return nil })
			remove()
		}()
		go func() {
			defer wg.Done()
			bus.Emit(context.Background(), sampleEvent())
		}()
	}
	wg.Wait()

	assert.Zero(t, bus.Len())
}
