package container

import (
	"encoding/json"
	"fmt"

	"github.com/emberhollow/stockpile/internal/event"
	"github.com/emberhollow/stockpile/internal/item"
	"github.com/emberhollow/stockpile/internal/stack"
)

// Fold applies a single journal event to container state. Replay behavior
// matches request-time behavior: each event type updates exactly one slice
// of the aggregate, and unknown types are skipped so older journals stay
// replayable.
//
// Slots rebuilt from the journal carry only what the payloads record (stack
// id, item id, quantity); durability and metadata live on the snapshot, not
// in the journal.
func Fold(c Container, evt event.Event) (Container, error) {
	switch evt.Type {
	case event.TypeContainerOpened:
		var payload event.ContainerOpenedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return c, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		updated := c.clone()
		if !updated.isViewer(payload.PlayerID) {
			updated.Viewers = append(updated.Viewers, payload.PlayerID)
		}
		updated.IsOpen = true
		at := evt.Timestamp
		updated.LastAccessed = &at
		return updated.stamp(evt), nil

	case event.TypeContainerClosed:
		var payload event.ContainerClosedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return c, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		updated := c.clone()
		remaining := updated.Viewers[:0]
		for _, v := range updated.Viewers {
			if v != payload.PlayerID {
				remaining = append(remaining, v)
			}
		}
		updated.Viewers = remaining
		updated.IsOpen = len(updated.Viewers) > 0
		return updated.stamp(evt), nil

	case event.TypeItemPlaced:
		var payload event.ItemPlacedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return c, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		if payload.SlotIndex < 0 || payload.SlotIndex >= len(c.Slots) {
			return c, fmt.Errorf("replay %s: slot %d out of range", evt.Type, payload.SlotIndex)
		}
		updated := c.clone()
		updated.Slots[payload.SlotIndex] = &item.Stack{
			ID:           payload.ItemStackID,
			ItemID:       payload.ItemID,
			Count:        stack.Quantity(payload.Quantity),
			Version:      1,
			CreatedAt:    evt.Timestamp,
			LastModified: evt.Timestamp,
		}
		return updated.stamp(evt), nil

	case event.TypeItemRemoved:
		var payload event.ItemRemovedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return c, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		if payload.SlotIndex < 0 || payload.SlotIndex >= len(c.Slots) {
			return c, fmt.Errorf("replay %s: slot %d out of range", evt.Type, payload.SlotIndex)
		}
		slot := c.Slots[payload.SlotIndex]
		if slot == nil {
			return c, fmt.Errorf("replay %s: slot %d already empty", evt.Type, payload.SlotIndex)
		}
		updated := c.clone()
		if payload.Quantity >= slot.Count.Int() {
			updated.Slots[payload.SlotIndex] = nil
		} else {
			kept := *slot
			kept.Count = stack.Quantity(slot.Count.Int() - payload.Quantity)
			kept.Version++
			kept.LastModified = evt.Timestamp
			updated.Slots[payload.SlotIndex] = &kept
		}
		return updated.stamp(evt), nil

	case event.TypeContainerSorted:
		var payload event.ContainerSortedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return c, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		updated := c.clone()
		occupied := make([]*item.Stack, 0, len(updated.Slots))
		for _, slot := range updated.Slots {
			if slot != nil {
				occupied = append(occupied, slot)
			}
		}
		sortStacks(occupied, SortKey(payload.SortType))
		for i := range updated.Slots {
			if i < len(occupied) {
				updated.Slots[i] = occupied[i]
			} else {
				updated.Slots[i] = nil
			}
		}
		return updated.stamp(evt), nil

	case event.TypePermissionGranted:
		var payload event.PermissionGrantedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return c, fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		perm := Permission{
			PlayerID:   payload.PlayerID,
			CanView:    payload.CanView,
			CanInsert:  payload.CanInsert,
			CanExtract: payload.CanExtract,
			CanModify:  payload.CanModify,
			ExpiresAt:  payload.ExpiresAt,
		}
		updated := c.clone()
		replaced := false
		for i, existing := range updated.Permissions {
			if existing.PlayerID == perm.PlayerID {
				updated.Permissions[i] = perm
				replaced = true
				break
			}
		}
		if !replaced {
			updated.Permissions = append(updated.Permissions, perm)
		}
		return updated.stamp(evt), nil
	}

	return c, nil
}

// Replay folds an ordered event journal onto a freshly created container
// snapshot.
func Replay(base Container, events []event.Event) (Container, error) {
	current := base
	for _, evt := range events {
		next, err := Fold(current, evt)
		if err != nil {
			return Container{}, err
		}
		current = next
	}
	return current, nil
}

// stamp mirrors commit for replayed events: version advances but the event
// is not re-appended to the pending log.
func (c Container) stamp(evt event.Event) Container {
	c.Version++
	c.LastModified = evt.Timestamp
	return c
}
