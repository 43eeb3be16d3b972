package catalog

import (
	"sort"

	apperrors "github.com/emberhollow/stockpile/internal/platform/errors"
)

// Registry is an immutable lookup of item definitions.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry builds a registry from defs, validating each definition and
// rejecting duplicates.
func NewRegistry(defs ...Definition) (*Registry, error) {
	registry := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, exists := registry.defs[def.ID]; exists {
			return nil, apperrors.WithMetadata(apperrors.CodeCatalogDuplicateItem,
				"item is defined more than once",
				map[string]string{"item_id": def.ID})
		}
		registry.defs[def.ID] = def
	}
	return registry, nil
}

// Get returns the definition for the item id.
func (r *Registry) Get(itemID string) (Definition, error) {
	def, ok := r.defs[itemID]
	if !ok {
		return Definition{}, apperrors.WithMetadata(apperrors.CodeCatalogUnknownItem,
			"item is not in the catalog",
			map[string]string{"item_id": itemID})
	}
	return def, nil
}

// MaxStackSize resolves the effective stack limit for the item id.
func (r *Registry) MaxStackSize(itemID string) (int, error) {
	def, err := r.Get(itemID)
	if err != nil {
		return 0, err
	}
	return def.ResolvedMaxStackSize(), nil
}

// Stackable reports whether two stacks of the item may combine.
func (r *Registry) Stackable(itemID string) (bool, error) {
	def, err := r.Get(itemID)
	if err != nil {
		return false, err
	}
	return def.Stackable, nil
}

// All returns every definition ordered by item id.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of definitions in the registry.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Default returns the built-in item catalog used when no catalog file is
// configured.
func Default() *Registry {
	registry, err := NewRegistry(
		Definition{ID: "stone", Name: "Stone", Category: CategoryBlock, Stackable: true},
		Definition{ID: "dirt", Name: "Dirt", Category: CategoryBlock, Stackable: true},
		Definition{ID: "cobblestone", Name: "Cobblestone", Category: CategoryBlock, Stackable: true},
		Definition{ID: "oak_planks", Name: "Oak Planks", Category: CategoryBlock, Stackable: true},
		Definition{ID: "iron_ingot", Name: "Iron Ingot", Category: CategoryMaterial, Stackable: true},
		Definition{ID: "gold_ingot", Name: "Gold Ingot", Category: CategoryMaterial, Stackable: true},
		Definition{ID: "diamond", Name: "Diamond", Category: CategoryMaterial, Stackable: true},
		Definition{ID: "stick", Name: "Stick", Category: CategoryMaterial, Stackable: true},
		Definition{ID: "coal", Name: "Coal", Category: CategoryMaterial, Stackable: true},
		Definition{ID: "bread", Name: "Bread", Category: CategoryFood, Stackable: true},
		Definition{ID: "apple", Name: "Apple", Category: CategoryFood, Stackable: true},
		Definition{ID: "cooked_beef", Name: "Steak", Category: CategoryFood, Stackable: true},
		Definition{ID: "mushroom_stew", Name: "Mushroom Stew", Category: CategoryFood, Stackable: false},
		Definition{ID: "ender_pearl", Name: "Ender Pearl", Category: CategoryMisc, Stackable: true},
		Definition{ID: "snowball", Name: "Snowball", Category: CategoryMisc, Stackable: true},
		Definition{ID: "egg", Name: "Egg", Category: CategoryMisc, Stackable: true},
		Definition{ID: "diamond_sword", Name: "Diamond Sword", Category: CategoryWeapon, Stackable: false, HasDurability: true},
		Definition{ID: "iron_pickaxe", Name: "Iron Pickaxe", Category: CategoryTool, Stackable: false, HasDurability: true},
		Definition{ID: "iron_shovel", Name: "Iron Shovel", Category: CategoryTool, Stackable: false, HasDurability: true},
		Definition{ID: "diamond_chestplate", Name: "Diamond Chestplate", Category: CategoryArmor, Stackable: false, HasDurability: true},
	)
	if err != nil {
		// The built-in catalog is fixed at compile time; a validation
		// failure here is a programming error.
		panic(err)
	}
	return registry
}
