package domain

import "time"

// Cart item kinds, matching the wizard that produced the item.
const (
	ItemKindRepair = "repair"
	ItemKindBuild  = "build"
	ItemKindPrint  = "print"
	ItemKindOther  = "other"
)

// CartItem is one finalized wizard output. Display fields are resolved
// against the catalog at add time and never re-resolved, so the item keeps
// rendering even if the catalog changes afterwards.
type CartItem struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Price       float64           `json:"price"`
	Meta        map[string]string `json:"meta,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Cart is the ordered list of items for one customer session.
type Cart struct {
	SessionID string     `json:"-"`
	Items     []CartItem `json:"items"`
}
