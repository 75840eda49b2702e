package domain

import "time"

// Subscription records one user's interest in availability updates for one
// product. The natural key is (Email, ProductID); IsActive is a soft-delete
// flag so unsubscribed pairs keep their history and can be reactivated.
type Subscription struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	ProductID        string    `json:"productId"`
	TelegramUsername string    `json:"telegramUsername,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SubscriptionWithProduct is the list-view join of a subscription and the
// product it references.
type SubscriptionWithProduct struct {
	Subscription
	Product Product `json:"product"`
}
