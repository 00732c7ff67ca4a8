package testsupport

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-pmsform/pkg/notify"
	"github.com/goliatone/go-pmsform/pkg/submission"
)

// ErrGatewayDown is returned by FailingGateway.
var ErrGatewayDown = errors.New("testsupport: gateway down")

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu    sync.Mutex
	notes []notify.Notification
}

// Notify implements notify.Notifier.
func (r *RecordingNotifier) Notify(_ context.Context, n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

// Notifications returns a copy of the received notifications.
func (r *RecordingNotifier) Notifications() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.notes...)
}

// FailingGateway rejects every record.
type FailingGateway struct {
	mu    sync.Mutex
	calls int
}

// Create implements submission.Gateway.
func (g *FailingGateway) Create(context.Context, submission.Record) (submission.StoredRecord, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	return submission.StoredRecord{}, ErrGatewayDown
}

// Calls reports how many records were offered.
func (g *FailingGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// BlockingGateway holds every Create until Release is called. Entered is
// signalled once per call, before blocking.
type BlockingGateway struct {
	Entered chan struct{}

	release chan struct{}
	once    sync.Once
	inner   *submission.MemoryGateway

	mu    sync.Mutex
	calls int
}

// NewBlockingGateway returns a gateway that stores into memory once released.
func NewBlockingGateway() *BlockingGateway {
	return &BlockingGateway{
		Entered: make(chan struct{}, 8),
		release: make(chan struct{}),
		inner:   submission.NewMemoryGateway(),
	}
}

// Create implements submission.Gateway.
func (g *BlockingGateway) Create(ctx context.Context, record submission.Record) (submission.StoredRecord, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	g.Entered <- struct{}{}
	select {
	case <-g.release:
	case <-ctx.Done():
		return submission.StoredRecord{}, ctx.Err()
	}
	return g.inner.Create(ctx, record)
}

// Release unblocks pending and future calls.
func (g *BlockingGateway) Release() {
	g.once.Do(func() { close(g.release) })
}

// Calls reports how many records were offered.
func (g *BlockingGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
