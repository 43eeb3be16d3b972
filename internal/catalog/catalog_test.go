package catalog

import (
	"testing"

	apperrors "github.com/emberhollow/stockpile/internal/platform/errors"
)

func TestCategoryDefaults(t *testing.T) {
	if got := CategoryTool.DefaultMaxStackSize(); got != 1 {
		t.Fatalf("tool default = %d, want 1", got)
	}
	if got := CategoryWeapon.DefaultMaxStackSize(); got != 1 {
		t.Fatalf("weapon default = %d, want 1", got)
	}
	if got := CategoryArmor.DefaultMaxStackSize(); got != 1 {
		t.Fatalf("armor default = %d, want 1", got)
	}
	if got := CategoryBlock.DefaultMaxStackSize(); got != 64 {
		t.Fatalf("block default = %d, want 64", got)
	}
	if got := CategoryFood.DefaultMaxStackSize(); got != 64 {
		t.Fatalf("food default = %d, want 64", got)
	}
}

func TestExceptionTableOverridesCategory(t *testing.T) {
	registry := Default()

	size, err := registry.MaxStackSize("ender_pearl")
	if err != nil {
		t.Fatalf("max stack size: %v", err)
	}
	if size != 16 {
		t.Fatalf("ender pearl max = %d, want 16", size)
	}

	size, err = registry.MaxStackSize("mushroom_stew")
	if err != nil {
		t.Fatalf("max stack size: %v", err)
	}
	if size != 1 {
		t.Fatalf("mushroom stew max = %d, want 1", size)
	}
}

func TestExplicitOverrideWinsOverException(t *testing.T) {
	def := Definition{ID: "ender_pearl", Category: CategoryMisc, MaxStackSize: 8, Stackable: true}
	if got := def.ResolvedMaxStackSize(); got != 8 {
		t.Fatalf("resolved max = %d, want 8", got)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(
		Definition{ID: "stone", Category: CategoryBlock, Stackable: true},
		Definition{ID: "stone", Category: CategoryBlock, Stackable: true},
	)
	if apperrors.CodeOf(err) != apperrors.CodeCatalogDuplicateItem {
		t.Fatalf("expected duplicate item error, got %v", err)
	}
}

func TestRegistryRejectsNonStackableWithLargeMax(t *testing.T) {
	_, err := NewRegistry(Definition{ID: "cursed_block", Category: CategoryBlock, Stackable: false})
	if apperrors.CodeOf(err) != apperrors.CodeCatalogInvalidDefinition {
		t.Fatalf("expected invalid definition error, got %v", err)
	}
}

func TestRegistryUnknownItem(t *testing.T) {
	registry := Default()
	_, err := registry.Get("unobtainium")
	if apperrors.CodeOf(err) != apperrors.CodeCatalogUnknownItem {
		t.Fatalf("expected unknown item error, got %v", err)
	}
}

func TestParseTOMLCatalog(t *testing.T) {
	raw := []byte(`
[[item]]
id = "stone"
name = "Stone"
category = "block"

[[item]]
id = "wooden_sword"
name = "Wooden Sword"
category = "weapon"
has_durability = true

[[item]]
id = "ender_pearl"
name = "Ender Pearl"
category = "misc"
`)
	registry, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if registry.Len() != 3 {
		t.Fatalf("definitions = %d, want 3", registry.Len())
	}

	stone, err := registry.Get("stone")
	if err != nil {
		t.Fatalf("get stone: %v", err)
	}
	if !stone.Stackable {
		t.Fatal("expected stone to inherit stackable from category")
	}
	if stone.ResolvedMaxStackSize() != 64 {
		t.Fatalf("stone max = %d, want 64", stone.ResolvedMaxStackSize())
	}

	sword, err := registry.Get("wooden_sword")
	if err != nil {
		t.Fatalf("get sword: %v", err)
	}
	if sword.Stackable {
		t.Fatal("expected weapon to inherit non-stackable from category")
	}
	if !sword.HasDurability {
		t.Fatal("expected durability flag to load")
	}

	pearl, err := registry.Get("ender_pearl")
	if err != nil {
		t.Fatalf("get pearl: %v", err)
	}
	if pearl.ResolvedMaxStackSize() != 16 {
		t.Fatalf("pearl max = %d, want 16", pearl.ResolvedMaxStackSize())
	}
}

func TestParseRejectsBadTOML(t *testing.T) {
	if _, err := Parse([]byte("[[item\n")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAllReturnsSortedDefinitions(t *testing.T) {
	registry, err := NewRegistry(
		Definition{ID: "zinc", Category: CategoryMaterial, Stackable: true},
		Definition{ID: "apple", Category: CategoryFood, Stackable: true},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	all := registry.All()
	if len(all) != 2 || all[0].ID != "apple" || all[1].ID != "zinc" {
		t.Fatalf("all = %v, want sorted by id", all)
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	registry := Default()
	if registry.Len() == 0 {
		t.Fatal("expected built-in definitions")
	}
	for _, def := range registry.All() {
		if err := def.Validate(); err != nil {
			t.Fatalf("definition %s: %v", def.ID, err)
		}
	}
}

func TestValidateRejectsUnknownCategory(t *testing.T) {
	err := Definition{ID: "gadget", Category: "gadget", Stackable: true}.Validate()
	if apperrors.CodeOf(err) != apperrors.CodeCatalogInvalidDefinition {
		t.Fatalf("expected invalid definition error, got %v", err)
	}
}
