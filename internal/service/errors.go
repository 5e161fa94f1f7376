package service

import "errors"

// Validation sentinels. Each is checked before any write, so a failed
// operation leaves the graph untouched.
var (
	// ErrInvalidServingSize reports a serving size that is not one of the
	// food's own portions.
	ErrInvalidServingSize = errors.New("invalid serving size")

	// ErrInvalidQuantity reports a non-positive number of servings.
	ErrInvalidQuantity = errors.New("invalid number of servings")

	// ErrInvalidPermutation reports a reorder whose ids are not exactly the
	// existing set, or a move target position that is out of range.
	ErrInvalidPermutation = errors.New("invalid ordering")
)
