package notification

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Notifier dispatches best-effort notifications without waiting for them
type Notifier interface {
	Notify(kind Kind, data Data)
}

// Background runs each notification on its own goroutine. Failures are
// logged and counted, never returned.
type Background struct {
	sender   Sender
	timeout  time.Duration
	wg       sync.WaitGroup
	failures atomic.Int64
}

func NewBackground(sender Sender, timeout time.Duration) *Background {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Background{
		sender:  sender,
		timeout: timeout,
	}
}

// Notify sends in the background, detached from the caller's context
func (b *Background) Notify(kind Kind, data Data) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		if err := b.sender.Send(ctx, kind, data); err != nil {
			b.failures.Add(1)
			event := log.Error().Err(err).Str("kind", string(kind))
			if data.Order != nil {
				event = event.Str("tracking_code", data.Order.TrackingCode)
			}
			event.Msg("notification failed")
		}
	}()
}

// Drain blocks until every in-flight notification has finished
func (b *Background) Drain() {
	b.wg.Wait()
}

// Failures is the number of notifications that failed so far
func (b *Background) Failures() int64 {
	return b.failures.Load()
}
