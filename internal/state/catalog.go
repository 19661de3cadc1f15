// Package state holds the process-wide client state containers.
//
// Containers are constructed once at startup and injected into the view
// layer. Every mutation goes through a container method; reads return
// copies, so views can never alias internal state. Each asynchronous
// operation stamps a monotonic sequence number and discards resolutions
// that arrive after a newer call has been issued, so the latest *issued*
// request always wins even when responses land out of order.
package state

import (
	"context"
	"sync"

	"stellarburgers/internal/types"
)

// CatalogAPI is the gateway surface the catalog container relies on.
type CatalogAPI interface {
	Ingredients(ctx context.Context) ([]types.Ingredient, error)
}

// Catalog holds the fetched ingredient list with its request lifecycle.
type Catalog struct {
	mu  sync.RWMutex
	api CatalogAPI

	items   []types.Ingredient
	loading bool
	err     string
	seq     uint64
}

// CatalogSnapshot is a point-in-time copy of the catalog state.
type CatalogSnapshot struct {
	Items   []types.Ingredient
	Loading bool
	Err     string
}

// NewCatalog creates an empty catalog container.
func NewCatalog(api CatalogAPI) *Catalog {
	return &Catalog{api: api}
}

// Fetch loads the ingredient list. The previous error is cleared on entry;
// on failure the message is stored for the view to read. The list is only
// re-fetched on explicit re-invocation.
func (c *Catalog) Fetch(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	items, err := c.api.Ingredients(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return // a newer fetch was issued; this resolution is stale
	}
	c.loading = false
	if err != nil {
		c.err = err.Error()
		return
	}
	c.items = items
}

// Items returns a copy of the fetched ingredient list.
func (c *Catalog) Items() []types.Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.Ingredient, len(c.items))
	copy(out, c.items)
	return out
}

// ByID looks up an ingredient by its catalog identifier.
func (c *Catalog) ByID(id string) (types.Ingredient, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return types.Ingredient{}, false
}

// Loading reports whether a fetch is in flight.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the last fetch error message, empty when the last fetch
// succeeded or none was made.
func (c *Catalog) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Snapshot returns the full catalog state as one copy.
func (c *Catalog) Snapshot() CatalogSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]types.Ingredient, len(c.items))
	copy(items, c.items)
	return CatalogSnapshot{Items: items, Loading: c.loading, Err: c.err}
}
