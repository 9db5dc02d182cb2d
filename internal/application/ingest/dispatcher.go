package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopmetrics/backend/internal/domain/identity"
	"github.com/shopmetrics/backend/internal/domain/ingestion"
	"github.com/shopmetrics/backend/internal/domain/shared"
)

// InboundEvent is a verified webhook event waiting to be processed.
// It is immutable once enqueued and consumed exactly once by a worker.
type InboundEvent struct {
	Topic      Topic
	ShopDomain string
	Payload    []byte
}

// EventHandler processes one event payload for a resolved tenant
type EventHandler interface {
	Handle(ctx context.Context, tenantID uuid.UUID, payload []byte) error
}

// DispatcherConfig holds the worker pool and retry settings
type DispatcherConfig struct {
	Workers      int
	QueueSize    int
	MaxRetries   int
	RetryBackoff time.Duration
}

// DefaultDispatcherConfig returns the default dispatcher settings
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Workers:      4,
		QueueSize:    256,
		MaxRetries:   3,
		RetryBackoff: 500 * time.Millisecond,
	}
}

// Dispatcher routes verified webhook events to the upsert handler for their
// topic. Events flow through a bounded queue drained by a worker pool, so
// the HTTP acknowledgement never waits on storage. Events that exhaust
// their retries, and events that arrive while the queue is full, land in
// the dead-letter table.
type Dispatcher struct {
	tenants     identity.TenantRepository
	deadLetters ingestion.DeadLetterRepository
	handlers    map[EntityKind]EventHandler
	config      DispatcherConfig
	logger      *zap.Logger

	queue   chan InboundEvent
	mu      sync.RWMutex
	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher with handlers for every entity kind
func NewDispatcher(
	tenants identity.TenantRepository,
	deadLetters ingestion.DeadLetterRepository,
	orderHandler EventHandler,
	customerHandler EventHandler,
	productHandler EventHandler,
	config DispatcherConfig,
	logger *zap.Logger,
) *Dispatcher {
	if config.Workers <= 0 {
		config.Workers = DefaultDispatcherConfig().Workers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultDispatcherConfig().QueueSize
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultDispatcherConfig().MaxRetries
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = DefaultDispatcherConfig().RetryBackoff
	}

	return &Dispatcher{
		tenants:     tenants,
		deadLetters: deadLetters,
		handlers: map[EntityKind]EventHandler{
			EntityOrder:    orderHandler,
			EntityCustomer: customerHandler,
			EntityProduct:  productHandler,
		},
		config: config,
		logger: logger,
		queue:  make(chan InboundEvent, config.QueueSize),
	}
}

// Start launches the worker pool
func (d *Dispatcher) Start(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return errors.New("dispatcher already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.config.Workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}

	d.logger.Info("ingest dispatcher started",
		zap.Int("workers", d.config.Workers),
		zap.Int("queue_size", d.config.QueueSize),
	)
	return nil
}

// Stop drains the queue and stops the workers. Call it only after the HTTP
// server has stopped accepting webhooks. Events still queued when the
// context expires are lost; the platform redelivers them.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running.CompareAndSwap(true, false) {
		d.mu.Unlock()
		return nil
	}
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if d.cancel != nil {
			d.cancel()
		}
		d.logger.Info("ingest dispatcher stopped")
		return nil
	case <-ctx.Done():
		if d.cancel != nil {
			d.cancel()
		}
		return ctx.Err()
	}
}

// Dispatch enqueues an event without blocking. The caller has already
// acknowledged the sender, so a full queue must not stall the request:
// the event goes straight to the dead-letter table instead. Safe to call
// concurrently with Stop; events racing the shutdown are dead-lettered.
func (d *Dispatcher) Dispatch(event InboundEvent) {
	// The read lock keeps Stop from closing the queue mid-send.
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.running.Load() {
		d.logger.Warn("event dispatched to stopped dispatcher",
			zap.String("topic", event.Topic.String()),
			zap.String("shop_domain", event.ShopDomain),
		)
		d.deadLetter(context.Background(), event, 0, "dispatcher not running")
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn("ingest queue full, dead-lettering event",
			zap.String("topic", event.Topic.String()),
			zap.String("shop_domain", event.ShopDomain),
		)
		d.deadLetter(context.Background(), event, 0, "ingest queue full")
	}
}

// QueueDepth returns the number of events waiting to be processed
func (d *Dispatcher) QueueDepth() int {
	return len(d.queue)
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()

	for event := range d.queue {
		d.processEvent(ctx, event)
	}
}

// processEvent resolves the tenant, routes by topic, and retries transient
// handler failures before giving up to the dead-letter table. A failure in
// one event never affects other events.
func (d *Dispatcher) processEvent(ctx context.Context, event InboundEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panicked",
				zap.String("topic", event.Topic.String()),
				zap.String("shop_domain", event.ShopDomain),
				zap.Any("panic", r),
			)
			d.deadLetter(ctx, event, 1, fmt.Sprintf("panic: %v", r))
		}
	}()

	kind, ok := event.Topic.Entity()
	if !ok {
		d.logger.Info("ignoring unrecognized topic",
			zap.String("topic", event.Topic.String()),
			zap.String("shop_domain", event.ShopDomain),
		)
		return
	}

	tenant, err := d.tenants.FindByShopDomain(ctx, event.ShopDomain)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			d.logger.Warn("dropping event for unknown shop domain",
				zap.String("topic", event.Topic.String()),
				zap.String("shop_domain", event.ShopDomain),
			)
			return
		}
		// Lookup infrastructure failure, worth retrying via dead letter
		d.deadLetter(ctx, event, 1, fmt.Sprintf("tenant lookup: %v", err))
		return
	}
	if !tenant.IsActive() {
		d.logger.Warn("dropping event for inactive tenant",
			zap.String("topic", event.Topic.String()),
			zap.String("tenant_id", tenant.ID.String()),
		)
		return
	}

	handler := d.handlers[kind]
	var lastErr error
	for attempt := 1; attempt <= d.config.MaxRetries; attempt++ {
		lastErr = handler.Handle(ctx, tenant.ID, event.Payload)
		if lastErr == nil {
			return
		}

		d.logger.Warn("event handler failed",
			zap.String("topic", event.Topic.String()),
			zap.String("tenant_id", tenant.ID.String()),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)

		if attempt < d.config.MaxRetries {
			select {
			case <-ctx.Done():
				d.deadLetter(ctx, event, attempt, lastErr.Error())
				return
			case <-time.After(d.config.RetryBackoff * time.Duration(attempt)):
			}
		}
	}

	d.deadLetter(ctx, event, d.config.MaxRetries, lastErr.Error())
}

func (d *Dispatcher) deadLetter(ctx context.Context, event InboundEvent, attempts int, reason string) {
	letter := ingestion.NewDeadLetter(event.Topic.String(), event.ShopDomain, event.Payload, attempts, reason)
	if err := d.deadLetters.Save(ctx, letter); err != nil {
		// Last resort: the event is lost until the platform redelivers it
		d.logger.Error("failed to persist dead letter",
			zap.String("topic", event.Topic.String()),
			zap.String("shop_domain", event.ShopDomain),
			zap.Error(err),
		)
	}
}
