package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInsufficientStock  = errors.New("insufficient stock available")
	ErrConflict           = errors.New("concurrent update conflict")
)

// ItemError reports the purchase item that failed validation or commit.
type ItemError struct {
	ProductID int64
	Title     string
	Err       error
}

func (e *ItemError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientStock) && e.Title != "":
		return fmt.Sprintf("insufficient stock for product: %s", e.Title)
	case errors.Is(e.Err, ErrInsufficientStock):
		return fmt.Sprintf("insufficient stock for product: ID %d", e.ProductID)
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("product not found: ID %d", e.ProductID)
	default:
		return fmt.Sprintf("product %d: %v", e.ProductID, e.Err)
	}
}

func (e *ItemError) Unwrap() error { return e.Err }

// NewItemError wraps err with the offending product.
func NewItemError(productID int64, title string, err error) error {
	return &ItemError{ProductID: productID, Title: title, Err: err}
}
