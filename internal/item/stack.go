// Package item models item stacks: an item identity paired with a bounded
// quantity, optional durability, and optional metadata. Stacks are value
// snapshots; every operation returns a new stack and leaves its input
// untouched.
package item

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/emberhollow/stockpile/internal/platform/errors"
	"github.com/emberhollow/stockpile/internal/stack"
)

var (
	// ErrIncompatibleItems indicates a merge across different item types.
	ErrIncompatibleItems = apperrors.New(apperrors.CodeItemIncompatible, "stacks hold different item types")
	// ErrNbtMismatch indicates metadata that blocks a merge.
	ErrNbtMismatch = apperrors.New(apperrors.CodeItemNbtMismatch, "stack metadata is not compatible")
	// ErrStackLimitExceeded indicates a merge total above the item max.
	ErrStackLimitExceeded = apperrors.New(apperrors.CodeItemStackLimitExceeded, "merged quantity exceeds the item max stack size")
	// ErrSplitUnderflow indicates a split quantity outside (0, count).
	ErrSplitUnderflow = apperrors.New(apperrors.CodeItemSplitUnderflow, "split quantity must be between 1 and count-1")
	// ErrInvalidStackSize indicates a non-positive consume quantity.
	ErrInvalidStackSize = apperrors.New(apperrors.CodeItemInvalidStackSize, "quantity must be positive")
	// ErrInvalidDurability indicates a damage/repair call on a stack without
	// durability, or an amount outside [0, 1].
	ErrInvalidDurability = apperrors.New(apperrors.CodeItemInvalidDurability, "durability amount must be within [0, 1] on a damageable stack")
	// ErrInsufficientQuantity indicates a consume larger than the stack.
	ErrInsufficientQuantity = apperrors.New(apperrors.CodeItemInsufficientQuantity, "stack holds fewer items than requested")
)

// Stack is one item stack. The zero value is not a valid stack; use New.
type Stack struct {
	// ID is the opaque unique identity of this stack instance.
	ID string
	// ItemID is the item type identity, resolved against the catalog.
	ItemID string
	// Count is the validated stack quantity.
	Count stack.Quantity
	// Durability is the wear ratio in [0, 1]; nil when the item has none.
	Durability *float64
	// Metadata is the optional NBT-style data; nil when absent.
	Metadata *Metadata
	// Version increments on every mutation for optimistic concurrency.
	Version int
	// CreatedAt is when the stack was minted.
	CreatedAt time.Time
	// LastModified is when the stack last changed.
	LastModified time.Time
}

// NewStackInput describes the data needed to mint a stack.
type NewStackInput struct {
	ItemID       string
	Count        int
	MaxStackSize int
	Durability   *float64
	Metadata     *Metadata
}

// New mints a stack with a generated ID and timestamps.
func New(input NewStackInput, now func() time.Time, newID func() (string, error)) (Stack, error) {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = NewID
	}

	if strings.TrimSpace(input.ItemID) == "" {
		return Stack{}, apperrors.New(apperrors.CodeItemEmptyItemID, "item id is required")
	}
	count, err := stack.New(input.Count, input.MaxStackSize)
	if err != nil {
		return Stack{}, err
	}
	if input.Durability != nil && (*input.Durability < 0 || *input.Durability > 1) {
		return Stack{}, ErrInvalidDurability
	}

	stackID, err := newID()
	if err != nil {
		return Stack{}, fmt.Errorf("generate stack id: %w", err)
	}

	createdAt := now().UTC()
	return Stack{
		ID:           stackID,
		ItemID:       input.ItemID,
		Count:        count,
		Durability:   cloneFloat(input.Durability),
		Metadata:     input.Metadata.Clone(),
		Version:      1,
		CreatedAt:    createdAt,
		LastModified: createdAt,
	}, nil
}

// CanStackWith reports how two stacks combine: item identity and metadata
// compatibility first, then quantity bounds.
func CanStackWith(a, b Stack, stackable bool, max int) (stack.Stackability, error) {
	if !a.Metadata.CompatibleWith(b.Metadata) {
		return stack.Stackability{Kind: stack.NotStackable}, nil
	}
	return stack.CanStack(a.Count, b.Count, a.ItemID, b.ItemID, stackable, max)
}

// MaxStackableQuantity returns how many more items fit onto target under max.
func MaxStackableQuantity(target Stack, max int) int {
	remaining := max - target.Count.Int()
	if remaining < 0 {
		return 0
	}
	return remaining
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
