package store

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateOrder  = errors.New("order code already exists")
	ErrOrderIDTaken    = errors.New("order id already in use")
	ErrInvalidRecord   = errors.New("invalid order record")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrUnknownStation  = errors.New("station is not on the order route")
)
