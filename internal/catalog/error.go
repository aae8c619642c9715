package catalog

import "errors"

var (
	// -- Resource State --
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("variant not found")

	// -- Database & Operation Failures --
	ErrFailedGetProduct = errors.New("failed to get product")
)
