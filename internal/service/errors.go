package service

import (
	"errors"
	"fmt"
)

// Typed failures surfaced to handlers. None of these are retried inside the
// service layer — callers re-issue the whole operation after resolving the
// underlying conflict.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidTransition = errors.New("status change not permitted from current state")
	ErrForbidden         = errors.New("actor lacks rights over the target resource")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrDuplicate         = errors.New("a resource with that unique value already exists")
)

// InsufficientStockError names the offending product and what is actually
// available, so clients can render an actionable message.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d", e.ProductName, e.Available)
}
