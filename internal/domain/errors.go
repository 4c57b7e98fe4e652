package domain

import "errors"

var (
	// ErrEmptyQuery signals a search request without query text.
	ErrEmptyQuery = errors.New("search query is required")
	// ErrProductNotFound signals a missing catalog product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct signals a product document that fails validation.
	ErrInvalidProduct = errors.New("invalid product")
)
