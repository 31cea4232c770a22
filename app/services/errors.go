package services

import "errors"

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("services: not found")

	// ErrOrderDelivered blocks cancellation of an already delivered order.
	ErrOrderDelivered = errors.New("services: order already delivered")

	// ErrSellerRequestPending means the user already asked for seller status
	// and the request has not been decided yet.
	ErrSellerRequestPending = errors.New("services: seller request pending")

	// ErrInvalidID covers malformed ObjectID hex coming from URLs.
	ErrInvalidID = errors.New("services: invalid id")
)
