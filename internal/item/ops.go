package item

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/emberhollow/stockpile/internal/event"
	"github.com/emberhollow/stockpile/internal/stack"
)

// brokenThreshold is the durability ratio at or below which a stack breaks.
const brokenThreshold = 0.0

// Merge combines source into target. Both stacks must hold the same item
// type with compatible metadata, and the combined count must fit under max.
func Merge(source, target Stack, max int, now func() time.Time) (Stack, event.Event, error) {
	if now == nil {
		now = time.Now
	}
	if source.ItemID != target.ItemID {
		return Stack{}, event.Event{}, ErrIncompatibleItems
	}
	if !source.Metadata.CompatibleWith(target.Metadata) {
		return Stack{}, event.Event{}, ErrNbtMismatch
	}
	total := source.Count.Int() + target.Count.Int()
	if total > max {
		return Stack{}, event.Event{}, ErrStackLimitExceeded
	}

	merged := target
	merged.Count = merged.Count + source.Count
	merged.Version++
	merged.LastModified = now().UTC()

	evt, err := stackEvent(event.TypeStackMerged, merged.ID, merged.LastModified, event.StackMergedPayload{
		SourceStackID:  source.ID,
		TargetStackID:  target.ID,
		ItemID:         merged.ItemID,
		MergedQuantity: source.Count.Int(),
		FinalQuantity:  merged.Count.Int(),
	})
	if err != nil {
		return Stack{}, event.Event{}, err
	}
	return merged, evt, nil
}

// Split carves quantity items off source into a freshly identified stack
// with the same item type, durability, and metadata.
func Split(source Stack, quantity int, now func() time.Time, newID func() (string, error)) (Stack, Stack, event.Event, error) {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = NewID
	}
	if quantity <= 0 || quantity >= source.Count.Int() {
		return Stack{}, Stack{}, event.Event{}, ErrSplitUnderflow
	}

	newStackID, err := newID()
	if err != nil {
		return Stack{}, Stack{}, event.Event{}, fmt.Errorf("generate stack id: %w", err)
	}

	at := now().UTC()
	remaining := source
	remaining.Count = remaining.Count - quantityOf(quantity)
	remaining.Version++
	remaining.LastModified = at

	split := Stack{
		ID:           newStackID,
		ItemID:       source.ItemID,
		Count:        quantityOf(quantity),
		Durability:   cloneFloat(source.Durability),
		Metadata:     source.Metadata.Clone(),
		Version:      1,
		CreatedAt:    at,
		LastModified: at,
	}

	evt, err := stackEvent(event.TypeStackSplit, source.ID, at, event.StackSplitPayload{
		SourceStackID:     source.ID,
		NewStackID:        split.ID,
		ItemID:            source.ItemID,
		SplitQuantity:     quantity,
		RemainingQuantity: remaining.Count.Int(),
	})
	if err != nil {
		return Stack{}, Stack{}, event.Event{}, err
	}
	return remaining, split, evt, nil
}

// Consume removes quantity items from the stack. Consuming the whole stack
// returns a nil updated stack; the event records the consumption either way.
func Consume(s Stack, quantity int, reason string, now func() time.Time) (*Stack, event.Event, error) {
	if now == nil {
		now = time.Now
	}
	if quantity <= 0 {
		return nil, event.Event{}, ErrInvalidStackSize
	}
	if quantity > s.Count.Int() {
		return nil, event.Event{}, ErrInsufficientQuantity
	}

	at := now().UTC()
	remaining := s.Count.Int() - quantity

	evt, err := stackEvent(event.TypeStackConsumed, s.ID, at, event.StackConsumedPayload{
		StackID:           s.ID,
		ItemID:            s.ItemID,
		ConsumedQuantity:  quantity,
		RemainingQuantity: remaining,
		Reason:            reason,
	})
	if err != nil {
		return nil, event.Event{}, err
	}

	if remaining == 0 {
		return nil, evt, nil
	}
	updated := s
	updated.Count = quantityOf(remaining)
	updated.Version++
	updated.LastModified = at
	return &updated, evt, nil
}

// Damage reduces durability by amount. A stack that reaches the broken
// threshold is destroyed: the updated stack is nil and the event is marked
// broken.
func Damage(s Stack, amount float64, now func() time.Time) (*Stack, event.Event, error) {
	if now == nil {
		now = time.Now
	}
	if s.Durability == nil || amount < 0 || amount > 1 {
		return nil, event.Event{}, ErrInvalidDurability
	}

	at := now().UTC()
	newDurability := *s.Durability - amount
	if newDurability < 0 {
		newDurability = 0
	}
	broken := newDurability <= brokenThreshold

	evt, err := stackEvent(event.TypeStackDamaged, s.ID, at, event.StackDamagedPayload{
		StackID:       s.ID,
		ItemID:        s.ItemID,
		DamageAmount:  amount,
		NewDurability: newDurability,
		Broken:        broken,
	})
	if err != nil {
		return nil, event.Event{}, err
	}

	if broken {
		return nil, evt, nil
	}
	updated := s
	updated.Durability = &newDurability
	updated.Version++
	updated.LastModified = at
	return &updated, evt, nil
}

// Repair restores durability by amount, capped at 1.
func Repair(s Stack, amount float64, now func() time.Time) (Stack, error) {
	if now == nil {
		now = time.Now
	}
	if s.Durability == nil || amount < 0 || amount > 1 {
		return Stack{}, ErrInvalidDurability
	}

	newDurability := *s.Durability + amount
	if newDurability > 1 {
		newDurability = 1
	}
	updated := s
	updated.Durability = &newDurability
	updated.Version++
	updated.LastModified = now().UTC()
	return updated, nil
}

func quantityOf(n int) stack.Quantity { return stack.Quantity(n) }

func stackEvent(evtType event.Type, stackID string, at time.Time, payload any) (event.Event, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return event.Event{}, fmt.Errorf("marshal %s payload: %w", evtType, err)
	}
	return event.Event{
		AggregateID: stackID,
		Type:        evtType,
		Timestamp:   at,
		EntityType:  event.EntityTypeItemStack,
		EntityID:    stackID,
		PayloadJSON: payloadJSON,
	}, nil
}
