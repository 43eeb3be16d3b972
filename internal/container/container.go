// Package container models the slot-indexed storage aggregate: fixed slots
// of optional item stacks, access control, concurrent-viewer tracking, and
// an append-only domain-event log. Operations never mutate a container in
// place; each returns a new value with exactly one event appended.
package container

import (
	"fmt"
	"strings"
	"time"

	"github.com/emberhollow/stockpile/internal/event"
	"github.com/emberhollow/stockpile/internal/item"
)

// Type identifies the kind of container and fixes its slot count.
type Type string

const (
	TypeChest           Type = "chest"
	TypeDoubleChest     Type = "double_chest"
	TypeFurnace         Type = "furnace"
	TypeBlastFurnace    Type = "blast_furnace"
	TypeSmoker          Type = "smoker"
	TypeBrewingStand    Type = "brewing_stand"
	TypeHopper          Type = "hopper"
	TypeShulkerBox      Type = "shulker_box"
	TypeDispenser       Type = "dispenser"
	TypeDropper         Type = "dropper"
	TypeCraftingTable   Type = "crafting_table"
	TypeAnvil           Type = "anvil"
	TypeEnchantingTable Type = "enchanting_table"
)

// SlotCount returns the fixed slot count for the container type, or 0 for
// an unknown type.
func (t Type) SlotCount() int {
	switch t {
	case TypeChest, TypeShulkerBox:
		return 27
	case TypeDoubleChest:
		return 54
	case TypeFurnace, TypeBlastFurnace, TypeSmoker, TypeAnvil:
		return 3
	case TypeBrewingStand, TypeHopper:
		return 5
	case TypeDispenser, TypeDropper:
		return 9
	case TypeCraftingTable:
		return 10
	case TypeEnchantingTable:
		return 2
	default:
		return 0
	}
}

// IsValid reports whether the type is one of the known container kinds.
func (t Type) IsValid() bool { return t.SlotCount() > 0 }

// AccessLevel gates what non-owners may do without an explicit permission.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "public"
	AccessPrivate    AccessLevel = "private"
	AccessRestricted AccessLevel = "restricted"
	AccessAdminOnly  AccessLevel = "admin_only"
)

// IsValid reports whether the access level is a known value.
func (a AccessLevel) IsValid() bool {
	switch a {
	case AccessPublic, AccessPrivate, AccessRestricted, AccessAdminOnly:
		return true
	}
	return false
}

// Position locates a container in the world.
type Position struct {
	X, Y, Z int
}

// Configuration carries per-container behavior toggles.
type Configuration struct {
	// MaxSlots is the slot count; it must match the container type.
	MaxSlots int
	// SlotFilters restricts which item types each slot accepts. A slot
	// without an entry accepts anything.
	SlotFilters map[int][]string
	// AutoSort enables the Sort operation.
	AutoSort bool
	// HopperInteraction allows hoppers to push into and pull from this
	// container.
	HopperInteraction bool
	// RedstoneControlled marks containers driven by redstone signals.
	RedstoneControlled bool
}

// Permission is one player's grant on a container.
type Permission struct {
	PlayerID   string
	CanView    bool
	CanInsert  bool
	CanExtract bool
	CanModify  bool
	ExpiresAt  *time.Time
}

// MaxViewers bounds the concurrent viewer set.
const MaxViewers = 10

// Container is the storage aggregate. The zero value is not valid; use New.
type Container struct {
	ID            string
	Type          Type
	OwnerID       string
	Position      Position
	Configuration Configuration
	AccessLevel   AccessLevel
	// Slots is the fixed-length slot array; nil entries are empty slots.
	Slots []*item.Stack
	Permissions   []Permission
	IsOpen        bool
	Viewers       []string
	Version       int
	CreatedAt     time.Time
	LastModified  time.Time
	LastAccessed  *time.Time
	// Uncommitted is the append-only list of events not yet persisted.
	// Callers thread it to storage and then call ClearUncommitted.
	Uncommitted []event.Event
}

// NewContainerInput describes the data needed to create a container.
type NewContainerInput struct {
	Type        Type
	OwnerID     string
	Position    Position
	AccessLevel AccessLevel
	// Configuration is optional; a zero MaxSlots resolves to the type's
	// fixed count.
	Configuration Configuration
}

// New creates a closed, empty container after validating that the
// configuration is consistent with the container type.
func New(input NewContainerInput, now func() time.Time, newID func() (string, error)) (Container, error) {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = item.NewID
	}

	if !input.Type.IsValid() {
		return Container{}, ErrInvalidType
	}
	if strings.TrimSpace(input.OwnerID) == "" {
		return Container{}, ErrInvalidConfiguration
	}
	if !input.AccessLevel.IsValid() {
		return Container{}, ErrInvalidConfiguration
	}

	slotCount := input.Type.SlotCount()
	cfg := input.Configuration
	if cfg.MaxSlots == 0 {
		cfg.MaxSlots = slotCount
	}
	if cfg.MaxSlots != slotCount {
		return Container{}, ErrInvalidConfiguration
	}
	for slot := range cfg.SlotFilters {
		if slot < 0 || slot >= slotCount {
			return Container{}, ErrInvalidConfiguration
		}
	}

	containerID, err := newID()
	if err != nil {
		return Container{}, fmt.Errorf("generate container id: %w", err)
	}

	createdAt := now().UTC()
	return Container{
		ID:            containerID,
		Type:          input.Type,
		OwnerID:       input.OwnerID,
		Position:      input.Position,
		Configuration: cfg,
		AccessLevel:   input.AccessLevel,
		Slots:         make([]*item.Stack, slotCount),
		Version:       1,
		CreatedAt:     createdAt,
		LastModified:  createdAt,
	}, nil
}

// UncommittedEvents returns a copy of the pending event log.
func (c Container) UncommittedEvents() []event.Event {
	return append([]event.Event(nil), c.Uncommitted...)
}

// ClearUncommitted returns the container with an empty pending event log,
// for use after the events have been persisted.
func (c Container) ClearUncommitted() Container {
	c.Uncommitted = nil
	return c
}

// clone copies the mutable slices so operations never alias their input.
// Slot stacks themselves are immutable values and may be shared.
func (c Container) clone() Container {
	c.Slots = append([]*item.Stack(nil), c.Slots...)
	c.Viewers = append([]string(nil), c.Viewers...)
	c.Permissions = append([]Permission(nil), c.Permissions...)
	c.Uncommitted = append([]event.Event(nil), c.Uncommitted...)
	return c
}
