package state

import (
	"context"
	"sync"

	"stellarburgers/internal/types"
)

// OrdersAPI is the gateway surface the order container relies on.
type OrdersAPI interface {
	SubmitOrder(ctx context.Context, ingredientIDs []string) (types.Order, error)
	OrderByNumber(ctx context.Context, number int) (types.Order, error)
	MyOrders(ctx context.Context) ([]types.Order, error)
}

// lifecycle tracks one independent async concern: loading flag, last error
// and the sequence stamp of the newest issued call.
type lifecycle struct {
	loading bool
	err     string
	seq     uint64
}

func (l *lifecycle) begin() uint64 {
	l.loading = true
	l.err = ""
	l.seq++
	return l.seq
}

// Orders tracks order submission, the displayed order (for modals and
// detail pages) and the user's order history. The three concerns have
// independent lifecycles.
type Orders struct {
	mu  sync.RWMutex
	api OrdersAPI

	displayed *types.Order
	history   []types.Order

	submission lifecycle
	lookup     lifecycle
	histState  lifecycle
}

// OrdersSnapshot is a point-in-time copy of the order state.
type OrdersSnapshot struct {
	Displayed *types.Order
	History   []types.Order

	Submitting bool
	SubmitErr  string
	LookingUp  bool
	LookupErr  string
	Listing    bool
	ListErr    string
}

// NewOrders creates an empty order container.
func NewOrders(api OrdersAPI) *Orders {
	return &Orders{api: api}
}

// Submit places the assembled burger as an order. The caller guarantees a
// bun was selected; ids is the full bracketed identifier sequence. On
// success the returned order becomes the displayed order; the view uses
// that transition to open the confirmation modal. The constructor is NOT
// cleared here, that is an explicit view policy.
func (o *Orders) Submit(ctx context.Context, ids []string) {
	o.mu.Lock()
	seq := o.submission.begin()
	o.mu.Unlock()

	order, err := o.api.SubmitOrder(ctx, ids)

	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.submission.seq {
		return
	}
	o.submission.loading = false
	if err != nil {
		o.submission.err = err.Error()
		return
	}
	o.displayed = &order
}

// LookupByNumber fetches one order by its display number and makes it the
// displayed order. Supports direct-link order detail views.
func (o *Orders) LookupByNumber(ctx context.Context, number int) {
	o.mu.Lock()
	seq := o.lookup.begin()
	o.mu.Unlock()

	order, err := o.api.OrderByNumber(ctx, number)

	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.lookup.seq {
		return
	}
	o.lookup.loading = false
	if err != nil {
		o.lookup.err = err.Error()
		return
	}
	o.displayed = &order
}

// ListMine fetches the authenticated user's order history, independent of
// the displayed order.
func (o *Orders) ListMine(ctx context.Context) {
	o.mu.Lock()
	seq := o.histState.begin()
	o.mu.Unlock()

	orders, err := o.api.MyOrders(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.histState.seq {
		return
	}
	o.histState.loading = false
	if err != nil {
		o.histState.err = err.Error()
		return
	}
	o.history = orders
}

// SetDisplayed sets the displayed order without a network call, for modals
// over an order already present in a list.
func (o *Orders) SetDisplayed(order *types.Order) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if order == nil {
		o.displayed = nil
		return
	}
	cp := *order
	o.displayed = &cp
}

// ClearDisplayed drops the displayed order.
func (o *Orders) ClearDisplayed() {
	o.SetDisplayed(nil)
}

// Displayed returns a copy of the displayed order, nil when none.
func (o *Orders) Displayed() *types.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.displayed == nil {
		return nil
	}
	cp := *o.displayed
	return &cp
}

// History returns a copy of the fetched order history.
func (o *Orders) History() []types.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]types.Order, len(o.history))
	copy(out, o.history)
	return out
}

// Submitting reports whether an order submission is in flight.
func (o *Orders) Submitting() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.submission.loading
}

// SubmitErr returns the last submission error message.
func (o *Orders) SubmitErr() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.submission.err
}

// LookupErr returns the last lookup error message.
func (o *Orders) LookupErr() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lookup.err
}

// Loading reports whether any of the three concerns is in flight.
func (o *Orders) Loading() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.submission.loading || o.lookup.loading || o.histState.loading
}

// Snapshot returns the full order state as one copy.
func (o *Orders) Snapshot() OrdersSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	snap := OrdersSnapshot{
		History:    make([]types.Order, len(o.history)),
		Submitting: o.submission.loading,
		SubmitErr:  o.submission.err,
		LookingUp:  o.lookup.loading,
		LookupErr:  o.lookup.err,
		Listing:    o.histState.loading,
		ListErr:    o.histState.err,
	}
	copy(snap.History, o.history)
	if o.displayed != nil {
		cp := *o.displayed
		snap.Displayed = &cp
	}
	return snap
}
