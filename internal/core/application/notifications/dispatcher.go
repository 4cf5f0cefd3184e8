// Package notifications delivers workflow notifications to their audience:
// live through the real-time channel and persisted for offline pickup.
package notifications

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// EventNotification is the real-time event name carrying a notification.
const EventNotification = "notification"

var ErrDispatcherStopped = errors.New("notification dispatcher is stopped")

// Batch groups the notifications produced by one status change.
type Batch struct {
	OrderID       kernel.UUID
	Notifications []*notification.Notification
}

type Config struct {
	// Workers is the number of shards. Batches of one order always go to
	// the same shard, so they are delivered in enqueue order.
	Workers int
	// QueueSize is the buffer of each shard.
	QueueSize int
	// SendTimeout bounds each delivery and the wait for a free queue slot.
	SendTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = 5 * time.Second
	}
	return c
}

// Dispatcher delivers notifications to role rooms and single users.
//
// Every delivery is dual: the notification is published live to the target
// room and stored once per recipient. Delivery is at least once; the
// notification id is carried by both the live event and the stored rows.
//
// Example usage:
//
//	d := notifications.NewDispatcher(hub, notificationRepo, userRepo, cfg, metrics, logger)
//	d.Start(ctx)
//	defer d.Stop(context.Background())
//
//	d.Enqueue(ctx, notifications.Batch{OrderID: o.ID(), Notifications: batch})
type Dispatcher struct {
	channel   ports.RealtimeChannel
	store     ports.NotificationRepository
	directory ports.RecipientDirectory
	cfg       Config
	metrics   *Metrics
	logger    *slog.Logger

	mu      sync.RWMutex
	shards  []chan Batch
	started bool
	stopped bool
	wg      sync.WaitGroup
}

func NewDispatcher(
	channel ports.RealtimeChannel,
	store ports.NotificationRepository,
	directory ports.RecipientDirectory,
	cfg Config,
	metrics *Metrics,
	logger *slog.Logger,
) *Dispatcher {
	cfg = cfg.withDefaults()
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	shards := make([]chan Batch, cfg.Workers)
	for i := range shards {
		shards[i] = make(chan Batch, cfg.QueueSize)
	}

	return &Dispatcher{
		channel:   channel,
		store:     store,
		directory: directory,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger.With("component", "NotificationDispatcher"),
		shards:    shards,
	}
}

// Start launches one worker per shard. Workers deliver with ctx, detached
// from the enqueuing request.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true

	for i, shard := range d.shards {
		d.wg.Add(1)
		go d.work(ctx, i, shard)
	}
	d.logger.InfoContext(ctx, "dispatcher started", "workers", len(d.shards))
}

// Stop refuses new batches and waits until queued batches are delivered or
// ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	for _, shard := range d.shards {
		close(shard)
	}
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.InfoContext(ctx, "dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue hands batch to the shard of its order. A shard with room always
// takes the batch, even when ctx is done. When the shard stays full for
// SendTimeout, or ctx ends while waiting, the batch is dropped and a delivery
// error returned.
func (d *Dispatcher) Enqueue(ctx context.Context, batch Batch) error {
	if len(batch.Notifications) == 0 {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}

	shard := d.shards[d.shardOf(batch.OrderID)]
	select {
	case shard <- batch:
		return nil
	default:
	}

	timer := time.NewTimer(d.cfg.SendTimeout)
	defer timer.Stop()

	select {
	case shard <- batch:
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}

	d.metrics.dropped.Inc()
	err := errs.NewNotificationDeliveryErrorWithCause("order "+batch.OrderID.String(),
		errors.New("dispatch queue is full"))
	d.logger.ErrorContext(ctx, "notification batch dropped",
		"orderId", batch.OrderID.String(),
		"notifications", len(batch.Notifications),
		"error", err)
	return err
}

func (d *Dispatcher) shardOf(orderID kernel.UUID) int {
	h := fnv.New32a()
	id := orderID.Bytes()
	_, _ = h.Write(id[:])
	return int(h.Sum32() % uint32(len(d.shards)))
}

func (d *Dispatcher) work(ctx context.Context, shardID int, shard <-chan Batch) {
	defer d.wg.Done()
	for batch := range shard {
		if err := d.DeliverBatch(ctx, batch); err != nil {
			d.logger.ErrorContext(ctx, "notification batch partially failed",
				"shard", shardID,
				"orderId", batch.OrderID.String(),
				"error", err)
		}
	}
}

// DeliverBatch sends every notification of batch concurrently. Targets are
// independent: one failure does not stop the others. The failures are joined.
func (d *Dispatcher) DeliverBatch(ctx context.Context, batch Batch) error {
	var (
		g        errgroup.Group
		mu       sync.Mutex
		failures []error
	)

	for _, n := range batch.Notifications {
		g.Go(func() error {
			if err := d.Send(ctx, n); err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(failures...)
}

// Send delivers n to its target.
func (d *Dispatcher) Send(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	target := n.Target()
	if target.Kind() == notification.TargetUser {
		return d.SendToUser(ctx, target.UserID(), n)
	}
	return d.SendToRole(ctx, target.Role(), n)
}

// SendToRole publishes n to the room of r and stores it for every user
// holding r.
func (d *Dispatcher) SendToRole(ctx context.Context, r role.Role, n *notification.Notification) error {
	target := notification.RoleTarget(r)
	ctx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	publishErr := d.publish(ctx, target, n)

	var storeErr error
	recipients, err := d.directory.UserIDsByRole(ctx, r)
	if err != nil {
		storeErr = err
	} else {
		storeErr = d.persist(ctx, n, recipients)
	}

	return d.record(ctx, target, errors.Join(publishErr, storeErr))
}

// SendToUser publishes n to the user's own room and stores it for that user.
func (d *Dispatcher) SendToUser(ctx context.Context, userID kernel.UUID, n *notification.Notification) error {
	target := notification.UserTarget(userID)
	ctx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
	defer cancel()

	publishErr := d.publish(ctx, target, n)
	storeErr := d.persist(ctx, n, []kernel.UUID{userID})

	return d.record(ctx, target, errors.Join(publishErr, storeErr))
}

func (d *Dispatcher) publish(ctx context.Context, target notification.Target, n *notification.Notification) error {
	return d.channel.Publish(ctx, target.Room(), EventNotification, NewMessage(n))
}

func (d *Dispatcher) persist(ctx context.Context, n *notification.Notification, recipients []kernel.UUID) error {
	if len(recipients) == 0 {
		return nil
	}
	return d.store.Save(ctx, n, recipients)
}

func (d *Dispatcher) record(ctx context.Context, target notification.Target, err error) error {
	kind := string(target.Kind())
	if err == nil {
		d.metrics.delivered.WithLabelValues(kind).Inc()
		return nil
	}

	d.metrics.failed.WithLabelValues(kind).Inc()
	deliveryErr := errs.NewNotificationDeliveryErrorWithCause(target.String(), err)
	d.logger.WarnContext(ctx, "notification delivery failed", "target", target.String(), "error", err)
	return deliveryErr
}
