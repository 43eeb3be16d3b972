package event

import (
	"strings"
	"time"
)

// Type identifies the type of an inventory domain event.
type Type string

// Container lifecycle events.
const (
	// TypeContainerOpened records a viewer opening a container.
	TypeContainerOpened Type = "container.opened"
	// TypeContainerClosed records a viewer closing a container.
	TypeContainerClosed Type = "container.closed"
	// TypeItemPlaced records an item stack being placed into a slot.
	TypeItemPlaced Type = "container.item_placed"
	// TypeItemRemoved records an item stack being removed from a slot.
	TypeItemRemoved Type = "container.item_removed"
	// TypeContainerSorted records a logical reordering of occupied slots.
	TypeContainerSorted Type = "container.sorted"
	// TypePermissionGranted records a permission upsert by the owner.
	TypePermissionGranted Type = "container.permission_granted"
)

// Item stack events.
const (
	// TypeStackMerged records two compatible stacks merging into one.
	TypeStackMerged Type = "stack.merged"
	// TypeStackSplit records a stack splitting into two.
	TypeStackSplit Type = "stack.split"
	// TypeStackConsumed records quantity being consumed from a stack.
	TypeStackConsumed Type = "stack.consumed"
	// TypeStackDamaged records durability loss on a stack.
	TypeStackDamaged Type = "stack.damaged"
)

// EntityType values used in the event envelope.
const (
	EntityTypeContainer = "container"
	EntityTypeSlot      = "slot"
	EntityTypeItemStack = "item_stack"
)

// Event represents an immutable record in the inventory event journal.
type Event struct {
	// AggregateID is the container or item stack this event belongs to.
	AggregateID string
	// Seq is the event sequence number within the aggregate (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Hash is the content-addressed identity (SHA-256 truncated to 128-bit).
	// Assigned by storage on append.
	Hash string
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// PlayerID is the player whose action produced the event, if any.
	PlayerID string
	// EntityType is the type of entity affected (container, slot, item_stack).
	EntityType string
	// EntityID is the ID of the entity affected.
	EntityID string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Domain returns the domain prefix of the event type (e.g., "container", "stack").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}
