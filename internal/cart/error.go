package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// -- Resource State --
	ErrItemNotFound = errors.New("cart item not found")

	// -- Persistence Failures --
	ErrPersistence = errors.New("cart store write failed")
	ErrFailedLoad  = errors.New("failed to load cart")
)
