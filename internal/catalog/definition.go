// Package catalog resolves item definitions: stack size limits, categories,
// stackability, and durability flags.
package catalog

import (
	"strings"

	apperrors "github.com/emberhollow/stockpile/internal/platform/errors"
)

// Category groups items with shared stacking defaults.
type Category string

const (
	CategoryTool     Category = "tool"
	CategoryWeapon   Category = "weapon"
	CategoryArmor    Category = "armor"
	CategoryBlock    Category = "block"
	CategoryMaterial Category = "material"
	CategoryFood     Category = "food"
	CategoryMisc     Category = "misc"
)

// DefaultMaxStackSize returns the stack limit implied by the category alone.
// Tools, weapons, and armor never stack; everything else defaults to 64.
func (c Category) DefaultMaxStackSize() int {
	switch c {
	case CategoryTool, CategoryWeapon, CategoryArmor:
		return 1
	default:
		return 64
	}
}

// IsValid reports whether the category is one of the known values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTool, CategoryWeapon, CategoryArmor, CategoryBlock,
		CategoryMaterial, CategoryFood, CategoryMisc:
		return true
	}
	return false
}

// stackSizeExceptions overrides category defaults for specific items.
// Thrown projectiles cap at 16; bowl and bottle foods occupy a whole slot.
var stackSizeExceptions = map[string]int{
	"ender_pearl":     16,
	"snowball":        16,
	"egg":             16,
	"honey_bottle":    16,
	"mushroom_stew":   1,
	"rabbit_stew":     1,
	"beetroot_soup":   1,
	"suspicious_stew": 1,
}

// Definition describes one item type.
type Definition struct {
	// ID is the item type identity, e.g. "stone" or "diamond_sword".
	ID string
	// Name is the display name.
	Name string
	// Category groups the item for stacking defaults.
	Category Category
	// MaxStackSize overrides the resolved stack limit when positive.
	MaxStackSize int
	// Stackable marks whether two stacks of this item may ever combine.
	Stackable bool
	// HasDurability marks tools, weapons, and armor that wear out.
	HasDurability bool
	// Tags carries free-form item labels.
	Tags []string
}

// ResolvedMaxStackSize returns the effective stack limit for the item:
// an explicit override wins, then the per-item exception table, then the
// category default.
func (d Definition) ResolvedMaxStackSize() int {
	if d.MaxStackSize > 0 {
		return d.MaxStackSize
	}
	if size, ok := stackSizeExceptions[d.ID]; ok {
		return size
	}
	return d.Category.DefaultMaxStackSize()
}

// Validate checks the definition invariants.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return apperrors.New(apperrors.CodeCatalogInvalidDefinition, "item id is required")
	}
	if !d.Category.IsValid() {
		return apperrors.WithMetadata(apperrors.CodeCatalogInvalidDefinition,
			"item category is not recognized",
			map[string]string{"item_id": d.ID, "category": string(d.Category)})
	}
	if d.MaxStackSize < 0 || d.MaxStackSize > 64 {
		return apperrors.WithMetadata(apperrors.CodeCatalogInvalidDefinition,
			"max stack size override must be between 1 and 64",
			map[string]string{"item_id": d.ID})
	}
	if !d.Stackable && d.ResolvedMaxStackSize() != 1 {
		return apperrors.WithMetadata(apperrors.CodeCatalogInvalidDefinition,
			"non-stackable items must resolve to a max stack size of 1",
			map[string]string{"item_id": d.ID})
	}
	return nil
}
