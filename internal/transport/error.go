package transport

import "errors"

var (
	// -- Selection boundary --
	ErrIncompleteSelection = errors.New("selection does not cover every product option")
	ErrOutOfStock          = errors.New("selected variant is out of stock")
)
