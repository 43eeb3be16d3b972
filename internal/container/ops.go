package container

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/emberhollow/stockpile/internal/event"
	"github.com/emberhollow/stockpile/internal/item"
	"github.com/emberhollow/stockpile/internal/stack"
)

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortAlphabetical SortKey = "alphabetical"
	SortQuantity     SortKey = "quantity"
	SortType         SortKey = "type"
	SortCustom       SortKey = "custom"
)

// Open adds playerID to the viewer set and marks the container open.
// Re-opening by a current viewer is idempotent and still records an event.
func Open(c Container, playerID string, now func() time.Time) (Container, error) {
	if now == nil {
		now = time.Now
	}
	at := now().UTC()

	if err := c.accessCheck(playerID, FlagView, at); err != nil {
		return Container{}, err
	}
	viewing := c.isViewer(playerID)
	if !viewing && len(c.Viewers) >= MaxViewers {
		return Container{}, ErrTooManyViewers
	}

	updated := c.clone()
	if !viewing {
		updated.Viewers = append(updated.Viewers, playerID)
	}
	updated.IsOpen = true
	updated.LastAccessed = &at

	evt, err := containerEvent(c, event.TypeContainerOpened, playerID, at, event.ContainerOpenedPayload{
		PlayerID:      playerID,
		ContainerType: string(c.Type),
		PositionX:     c.Position.X,
		PositionY:     c.Position.Y,
		PositionZ:     c.Position.Z,
	})
	if err != nil {
		return Container{}, err
	}
	return updated.commit(evt, at), nil
}

// Close removes playerID from the viewer set. The container stays open
// while other viewers remain.
func Close(c Container, playerID string, sessionStart time.Time, now func() time.Time) (Container, error) {
	if now == nil {
		now = time.Now
	}
	at := now().UTC()

	updated := c.clone()
	remaining := updated.Viewers[:0]
	for _, v := range updated.Viewers {
		if v != playerID {
			remaining = append(remaining, v)
		}
	}
	updated.Viewers = remaining
	updated.IsOpen = len(updated.Viewers) > 0

	evt, err := containerEvent(c, event.TypeContainerClosed, playerID, at, event.ContainerClosedPayload{
		PlayerID:        playerID,
		SessionDuration: at.Sub(sessionStart),
	})
	if err != nil {
		return Container{}, err
	}
	return updated.commit(evt, at), nil
}

// PlaceItem puts stack into the empty slot at slotIndex.
func PlaceItem(c Container, playerID string, slotIndex int, s item.Stack, now func() time.Time) (Container, error) {
	if now == nil {
		now = time.Now
	}
	at := now().UTC()

	if err := c.accessCheck(playerID, FlagInsert, at); err != nil {
		return Container{}, err
	}
	if c.machineLocked(playerID) {
		return Container{}, ErrContainerLocked
	}
	if slotIndex < 0 || slotIndex >= len(c.Slots) {
		return Container{}, ErrInvalidSlotIndex
	}
	if c.Slots[slotIndex] != nil {
		return Container{}, ErrSlotOccupied
	}
	if !c.slotAccepts(slotIndex, s.ItemID) {
		return Container{}, ErrInvalidItemType
	}

	updated := c.clone()
	placed := s
	updated.Slots[slotIndex] = &placed

	evt, err := containerEvent(c, event.TypeItemPlaced, playerID, at, event.ItemPlacedPayload{
		PlayerID:    playerID,
		SlotIndex:   slotIndex,
		ItemID:      s.ItemID,
		Quantity:    s.Count.Int(),
		ItemStackID: s.ID,
	})
	if err != nil {
		return Container{}, err
	}
	return updated.commit(evt, at), nil
}

// AddItem puts stack into the first empty slot whose filter accepts the
// item, scanning in slot order.
func AddItem(c Container, playerID string, s item.Stack, now func() time.Time) (Container, int, error) {
	if now == nil {
		now = time.Now
	}
	at := now().UTC()

	if err := c.accessCheck(playerID, FlagInsert, at); err != nil {
		return Container{}, 0, err
	}
	if c.machineLocked(playerID) {
		return Container{}, 0, ErrContainerLocked
	}
	for slotIndex, slot := range c.Slots {
		if slot != nil || !c.slotAccepts(slotIndex, s.ItemID) {
			continue
		}
		updated, err := PlaceItem(c, playerID, slotIndex, s, now)
		if err != nil {
			return Container{}, 0, err
		}
		return updated, slotIndex, nil
	}
	return Container{}, 0, ErrContainerFull
}

// RemoveItem takes quantity items from the slot at slotIndex and returns
// the removed stack. A zero quantity takes the whole slot; removing the
// full count empties the slot.
func RemoveItem(c Container, playerID string, slotIndex, quantity int, reason string, now func() time.Time, newID func() (string, error)) (Container, item.Stack, error) {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = item.NewID
	}
	at := now().UTC()

	if err := c.accessCheck(playerID, FlagExtract, at); err != nil {
		return Container{}, item.Stack{}, err
	}
	if c.machineLocked(playerID) {
		return Container{}, item.Stack{}, ErrContainerLocked
	}
	if slotIndex < 0 || slotIndex >= len(c.Slots) {
		return Container{}, item.Stack{}, ErrInvalidSlotIndex
	}
	slot := c.Slots[slotIndex]
	if slot == nil {
		return Container{}, item.Stack{}, ErrSlotEmpty
	}
	if quantity == 0 {
		quantity = slot.Count.Int()
	}
	if quantity < 0 {
		return Container{}, item.Stack{}, item.ErrInvalidStackSize
	}
	if quantity > slot.Count.Int() {
		return Container{}, item.Stack{}, item.ErrInsufficientQuantity
	}

	updated := c.clone()
	var removed item.Stack
	if quantity == slot.Count.Int() {
		removed = *slot
		updated.Slots[slotIndex] = nil
	} else {
		removedID, err := newID()
		if err != nil {
			return Container{}, item.Stack{}, fmt.Errorf("generate stack id: %w", err)
		}
		kept := *slot
		kept.Count = stack.Quantity(slot.Count.Int() - quantity)
		kept.Version++
		kept.LastModified = at
		updated.Slots[slotIndex] = &kept

		removed = item.Stack{
			ID:           removedID,
			ItemID:       slot.ItemID,
			Count:        stack.Quantity(quantity),
			Durability:   copyDurability(slot.Durability),
			Metadata:     slot.Metadata.Clone(),
			Version:      1,
			CreatedAt:    at,
			LastModified: at,
		}
	}

	evt, err := containerEvent(c, event.TypeItemRemoved, playerID, at, event.ItemRemovedPayload{
		PlayerID:    playerID,
		SlotIndex:   slotIndex,
		ItemID:      slot.ItemID,
		Quantity:    quantity,
		ItemStackID: removed.ID,
		Reason:      reason,
	})
	if err != nil {
		return Container{}, item.Stack{}, err
	}
	return updated.commit(evt, at), removed, nil
}

// GrantPermission upserts a permission entry for targetPlayerID. Only the
// owner may grant permissions.
func GrantPermission(c Container, requesterID, targetPlayerID string, perm Permission, now func() time.Time) (Container, error) {
	if now == nil {
		now = time.Now
	}
	at := now().UTC()

	if requesterID != c.OwnerID {
		return Container{}, ErrAccessDenied
	}

	perm.PlayerID = targetPlayerID
	updated := c.clone()
	replaced := false
	for i, existing := range updated.Permissions {
		if existing.PlayerID == targetPlayerID {
			updated.Permissions[i] = perm
			replaced = true
			break
		}
	}
	if !replaced {
		updated.Permissions = append(updated.Permissions, perm)
	}

	evt, err := containerEvent(c, event.TypePermissionGranted, requesterID, at, event.PermissionGrantedPayload{
		GrantedBy:  requesterID,
		PlayerID:   targetPlayerID,
		CanView:    perm.CanView,
		CanInsert:  perm.CanInsert,
		CanExtract: perm.CanExtract,
		CanModify:  perm.CanModify,
		ExpiresAt:  perm.ExpiresAt,
	})
	if err != nil {
		return Container{}, err
	}
	return updated.commit(evt, at), nil
}

// Sort stable-sorts the occupied slots by key and pushes empty slots to the
// tail. The container must be configured with auto sort enabled.
func Sort(c Container, playerID string, key SortKey, now func() time.Time) (Container, error) {
	if now == nil {
		now = time.Now
	}
	at := now().UTC()

	if err := c.accessCheck(playerID, FlagModify, at); err != nil {
		return Container{}, err
	}
	if !c.Configuration.AutoSort {
		return Container{}, ErrInvalidConfiguration
	}

	updated := c.clone()
	occupied := make([]*item.Stack, 0, len(updated.Slots))
	for _, slot := range updated.Slots {
		if slot != nil {
			occupied = append(occupied, slot)
		}
	}
	sortStacks(occupied, key)
	for i := range updated.Slots {
		if i < len(occupied) {
			updated.Slots[i] = occupied[i]
		} else {
			updated.Slots[i] = nil
		}
	}

	evt, err := containerEvent(c, event.TypeContainerSorted, playerID, at, event.ContainerSortedPayload{
		PlayerID:      playerID,
		SortType:      string(key),
		AffectedSlots: len(occupied),
	})
	if err != nil {
		return Container{}, err
	}
	return updated.commit(evt, at), nil
}

// sortStacks orders stacks by the key. Quantity sorts largest first;
// every other key realizes the alphabetical-by-item-id ordering.
func sortStacks(stacks []*item.Stack, key SortKey) {
	switch key {
	case SortQuantity:
		sort.SliceStable(stacks, func(i, j int) bool {
			if stacks[i].Count != stacks[j].Count {
				return stacks[i].Count > stacks[j].Count
			}
			return stacks[i].ItemID < stacks[j].ItemID
		})
	default:
		sort.SliceStable(stacks, func(i, j int) bool {
			return stacks[i].ItemID < stacks[j].ItemID
		})
	}
}

func copyDurability(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// slotAccepts applies the configured slot filter, if any.
func (c Container) slotAccepts(slotIndex int, itemID string) bool {
	filter, ok := c.Configuration.SlotFilters[slotIndex]
	if !ok || len(filter) == 0 {
		return true
	}
	for _, allowed := range filter {
		if allowed == itemID {
			return true
		}
	}
	return false
}

// commit stamps the mutation: one event appended, version incremented.
func (c Container) commit(evt event.Event, at time.Time) Container {
	c.Uncommitted = append(c.Uncommitted, evt)
	c.Version++
	c.LastModified = at
	return c
}

func containerEvent(c Container, evtType event.Type, playerID string, at time.Time, payload any) (event.Event, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return event.Event{}, fmt.Errorf("marshal %s payload: %w", evtType, err)
	}
	return event.Event{
		AggregateID: c.ID,
		Type:        evtType,
		Timestamp:   at,
		PlayerID:    playerID,
		EntityType:  event.EntityTypeContainer,
		EntityID:    c.ID,
		PayloadJSON: payloadJSON,
	}, nil
}
