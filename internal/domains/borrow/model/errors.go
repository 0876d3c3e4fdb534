package model

import "errors"

var (
	ErrBookNotAvailable  = errors.New("book not available")
	ErrInsufficientStock = errors.New("not enough books available")
)
