// Package stack provides bounded stack-quantity arithmetic for inventory
// slots. All operations are pure: they take current quantities and return
// new ones without touching shared state.
package stack

import (
	"strconv"

	apperrors "github.com/emberhollow/stockpile/internal/platform/errors"
)

// MaxStackLimit is the largest stack size any item definition may declare.
const MaxStackLimit = 64

var (
	// ErrInvalidSize indicates a stack size outside [1, max].
	ErrInvalidSize = apperrors.New(apperrors.CodeStackInvalidSize, "stack size must be between 1 and the item max")
	// ErrInvalidMaxSize indicates a max stack size outside [1, 64].
	ErrInvalidMaxSize = apperrors.New(apperrors.CodeStackInvalidMaxSize, "max stack size must be between 1 and 64")
	// ErrInvalidOperation indicates a non-positive addition or removal amount.
	ErrInvalidOperation = apperrors.New(apperrors.CodeStackInvalidOperation, "operation amount must be positive")
	// ErrExceedsLimit indicates a single addition larger than the item max.
	ErrExceedsLimit = apperrors.New(apperrors.CodeStackExceedsLimit, "addition exceeds the item max stack size")
	// ErrInvalidRatio indicates a split ratio that produces an empty part.
	ErrInvalidRatio = apperrors.New(apperrors.CodeStackInvalidRatio, "split ratio must leave both parts non-empty")
)

// Quantity is a validated stack size. A Quantity is always at least 1; an
// empty slot is represented by the absence of a stack, never by a zero
// Quantity.
type Quantity int

// New validates size against max and returns it as a Quantity.
func New(size, max int) (Quantity, error) {
	if err := CheckMax(max); err != nil {
		return 0, err
	}
	if size < 1 || size > max {
		return 0, apperrors.WithMetadata(apperrors.CodeStackInvalidSize,
			"stack size must be between 1 and the item max",
			map[string]string{"size": strconv.Itoa(size), "max": strconv.Itoa(max)})
	}
	return Quantity(size), nil
}

// CheckMax validates a max stack size against the global limit.
func CheckMax(max int) error {
	if max < 1 || max > MaxStackLimit {
		return apperrors.WithMetadata(apperrors.CodeStackInvalidMaxSize,
			"max stack size must be between 1 and 64",
			map[string]string{"max": strconv.Itoa(max)})
	}
	return nil
}

// Int returns the quantity as a plain int.
func (q Quantity) Int() int { return int(q) }
