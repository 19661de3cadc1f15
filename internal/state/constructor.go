package state

import (
	"sync"

	"github.com/google/uuid"

	"stellarburgers/internal/types"
)

// Constructor holds the burger being assembled: at most one bun plus an
// ordered, user-reorderable sequence of fillings. Duplicates are allowed;
// each placement carries its own instance ID so it can be addressed
// independently of the catalog identifier.
type Constructor struct {
	mu       sync.RWMutex
	bun      *types.ConstructorItem
	fillings []types.ConstructorItem
}

// ConstructorSnapshot is a point-in-time copy of the assembled burger.
type ConstructorSnapshot struct {
	Bun      *types.ConstructorItem
	Fillings []types.ConstructorItem
}

// NewConstructor creates an empty constructor.
func NewConstructor() *Constructor {
	return &Constructor{}
}

// Add places an ingredient into the burger. A bun replaces the current bun
// unconditionally; anything else is appended to the fillings. The returned
// item carries the freshly generated instance ID.
func (c *Constructor) Add(ing types.Ingredient) types.ConstructorItem {
	item := types.ConstructorItem{Ingredient: ing, InstanceID: uuid.NewString()}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ing.IsBun() {
		c.bun = &item
	} else {
		c.fillings = append(c.fillings, item)
	}
	return item
}

// RemoveAt deletes the filling at the 0-based position, shifting later
// fillings down. Out-of-range positions are a silent no-op.
func (c *Constructor) RemoveAt(pos int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pos < 0 || pos >= len(c.fillings) {
		return
	}
	c.fillings = append(c.fillings[:pos], c.fillings[pos+1:]...)
}

// Move removes the filling at from and reinserts it at to as one atomic
// update. The bun is not reorderable. Out-of-range indices are rejected.
func (c *Constructor) Move(from, to int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.fillings)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	item := c.fillings[from]
	rest := append(c.fillings[:from], c.fillings[from+1:]...)
	c.fillings = append(rest[:to], append([]types.ConstructorItem{item}, rest[to:]...)...)
}

// Clear resets the constructor to empty.
func (c *Constructor) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bun = nil
	c.fillings = nil
}

// Bun returns a copy of the bun slot, nil when empty.
func (c *Constructor) Bun() *types.ConstructorItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bun == nil {
		return nil
	}
	b := *c.bun
	return &b
}

// Fillings returns a copy of the ordered filling sequence.
func (c *Constructor) Fillings() []types.ConstructorItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.ConstructorItem, len(c.fillings))
	copy(out, c.fillings)
	return out
}

// TotalPrice computes the displayed price on demand: the bun counts twice
// (top and bottom) plus every filling once.
func (c *Constructor) TotalPrice() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	if c.bun != nil {
		total += 2 * c.bun.Price
	}
	for _, f := range c.fillings {
		total += f.Price
	}
	return total
}

// SubmissionIDs returns the catalog ID sequence for order submission: the
// bun ID bracketing the fillings. Nil when no bun is selected, since an
// order needs a bun.
func (c *Constructor) SubmissionIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.bun == nil {
		return nil
	}
	ids := make([]string, 0, len(c.fillings)+2)
	ids = append(ids, c.bun.ID)
	for _, f := range c.fillings {
		ids = append(ids, f.ID)
	}
	return append(ids, c.bun.ID)
}

// Snapshot returns the full constructor state as one copy.
func (c *Constructor) Snapshot() ConstructorSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := ConstructorSnapshot{Fillings: make([]types.ConstructorItem, len(c.fillings))}
	copy(snap.Fillings, c.fillings)
	if c.bun != nil {
		b := *c.bun
		snap.Bun = &b
	}
	return snap
}
