package entity

// CartItem is a product snapshot held in a visitor's cart. Carts live only in
// the local dual-tier cache, never in the remote store.
type CartItem struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Image         string  `json:"image,omitempty"`
	Quantity      int     `json:"quantity"` // always >= 1
}

// FavoriteItem is a CartItem without a quantity, kept in its own cache
// collection.
type FavoriteItem struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Image         string  `json:"image,omitempty"`
}
