// Package types defines the domain model shared across the client:
// catalog ingredients, assembled-burger entries, orders and users.
// All types mirror the backend's JSON wire shapes.
package types

import "time"

// IngredientType is the catalog category of an ingredient.
type IngredientType string

const (
	TypeBun   IngredientType = "bun"
	TypeMain  IngredientType = "main"
	TypeSauce IngredientType = "sauce"
)

// Ingredient is a single orderable catalog component. Immutable once
// fetched; owned by the catalog container.
type Ingredient struct {
	ID            string         `json:"_id"`
	Name          string         `json:"name"`
	Type          IngredientType `json:"type"`
	Proteins      int            `json:"proteins"`
	Fat           int            `json:"fat"`
	Carbohydrates int            `json:"carbohydrates"`
	Calories      int            `json:"calories"`
	Price         int            `json:"price"`
	Image         string         `json:"image"`
	ImageMobile   string         `json:"image_mobile"`
	ImageLarge    string         `json:"image_large"`
}

// IsBun reports whether the ingredient occupies the bun slot of a burger.
func (i Ingredient) IsBun() bool { return i.Type == TypeBun }

// ConstructorItem is an ingredient placed into the burger constructor.
// InstanceID is client-generated and unique per placement, so the same
// catalog ingredient can appear several times as distinct entries.
type ConstructorItem struct {
	Ingredient
	InstanceID string `json:"id"`
}

// OrderStatus is the backend-assigned lifecycle state of an order.
type OrderStatus string

const (
	OrderCreated OrderStatus = "created"
	OrderPending OrderStatus = "pending"
	OrderDone    OrderStatus = "done"
)

// Label returns the human-readable form used by the order views.
func (s OrderStatus) Label() string {
	switch s {
	case OrderDone:
		return "Done"
	case OrderPending:
		return "Cooking"
	case OrderCreated:
		return "Created"
	default:
		return string(s)
	}
}

// Order is a placed order as returned by the backend. Read-only on the
// client; Ingredients holds catalog IDs in submission order (the bun ID
// bracketing the fillings).
type Order struct {
	ID          string      `json:"_id"`
	Status      OrderStatus `json:"status"`
	Name        string      `json:"name"`
	Ingredients []string    `json:"ingredients"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Number      int         `json:"number"`
}

// User is the authenticated account profile.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
