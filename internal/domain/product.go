package domain

import "time"

// Product is a catalog item that users can subscribe to.
// ProductID is the business key; the surrogate ID is storage-internal.
type Product struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	InStock   bool      `json:"inStock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
