package entity

import (
	"time"
)

// MaxProductPrice is the exclusive upper bound accepted for product prices.
const MaxProductPrice = 100_000_000

type Product struct {
	ID            string    `json:"id" firestore:"id"`
	Name          string    `json:"name" firestore:"name"`
	Price         float64   `json:"price" firestore:"price"`
	OriginalPrice float64   `json:"original_price,omitempty" firestore:"originalPrice,omitempty"`
	Images        []string  `json:"images,omitempty" firestore:"images,omitempty"`
	CategoryID    string    `json:"category_id,omitempty" firestore:"categoryId,omitempty"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}
