package state

import (
	"context"
	"sync"

	"stellarburgers/internal/api"
	"stellarburgers/internal/types"
)

// FeedAPI is the gateway surface the feed container relies on.
type FeedAPI interface {
	Feed(ctx context.Context) (api.FeedData, error)
}

// Feed holds the public system-wide order list and its aggregate counts.
// Re-fetching is the caller's policy (the shell polls while the feed page
// is visible); the container itself never schedules anything.
type Feed struct {
	mu  sync.RWMutex
	api FeedAPI

	orders     []types.Order
	total      int
	totalToday int
	loading    bool
	err        string
	seq        uint64
}

// FeedSnapshot is a point-in-time copy of the feed state.
type FeedSnapshot struct {
	Orders     []types.Order
	Total      int
	TotalToday int
	Loading    bool
	Err        string
}

// NewFeed creates an empty feed container.
func NewFeed(api FeedAPI) *Feed {
	return &Feed{api: api}
}

// Fetch loads the feed, replacing orders and totals wholesale.
func (f *Feed) Fetch(ctx context.Context) {
	f.mu.Lock()
	f.loading = true
	f.err = ""
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	data, err := f.api.Feed(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		return
	}
	f.loading = false
	if err != nil {
		f.err = err.Error()
		return
	}
	f.orders = data.Orders
	f.total = data.Total
	f.totalToday = data.TotalToday
}

// Orders returns a copy of the feed order list.
func (f *Feed) Orders() []types.Order {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]types.Order, len(f.orders))
	copy(out, f.orders)
	return out
}

// Totals returns the all-time and today aggregate counts.
func (f *Feed) Totals() (total, totalToday int) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.total, f.totalToday
}

// Loading reports whether a fetch is in flight.
func (f *Feed) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

// Err returns the last fetch error message.
func (f *Feed) Err() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

// ByNumber finds a feed order by display number, for opening a detail
// modal without a redundant fetch.
func (f *Feed) ByNumber(number int) (types.Order, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, o := range f.orders {
		if o.Number == number {
			return o, true
		}
	}
	return types.Order{}, false
}

// Snapshot returns the full feed state as one copy.
func (f *Feed) Snapshot() FeedSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	snap := FeedSnapshot{
		Orders:     make([]types.Order, len(f.orders)),
		Total:      f.total,
		TotalToday: f.totalToday,
		Loading:    f.loading,
		Err:        f.err,
	}
	copy(snap.Orders, f.orders)
	return snap
}
