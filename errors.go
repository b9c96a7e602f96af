package vptree

import "errors"

var (
	// ErrInvalidK is returned when k is negative.
	ErrInvalidK = errors.New("k must not be negative")

	// ErrNoPoints is returned when a tree is built from zero points.
	ErrNoPoints = errors.New("at least one point is required")
)
