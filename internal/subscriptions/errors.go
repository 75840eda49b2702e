package subscriptions

import "errors"

// Subscription errors.
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed    = errors.New("already subscribed to this product")
)
