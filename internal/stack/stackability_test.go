package stack

import "testing"

func TestCanStackDifferentItems(t *testing.T) {
	result, err := CanStack(Quantity(10), Quantity(10), "stone", "dirt", true, 64)
	if err != nil {
		t.Fatalf("can stack: %v", err)
	}
	if result.Kind != NotStackable {
		t.Fatalf("kind = %s, want not_stackable", result.Kind)
	}
}

func TestCanStackNonStackableItem(t *testing.T) {
	result, err := CanStack(Quantity(1), Quantity(1), "diamond_sword", "diamond_sword", false, 1)
	if err != nil {
		t.Fatalf("can stack: %v", err)
	}
	if result.Kind != NotStackable {
		t.Fatalf("kind = %s, want not_stackable", result.Kind)
	}
}

func TestCanStackFully(t *testing.T) {
	result, err := CanStack(Quantity(20), Quantity(30), "stone", "stone", true, 64)
	if err != nil {
		t.Fatalf("can stack: %v", err)
	}
	if result.Kind != FullyStackable {
		t.Fatalf("kind = %s, want fully_stackable", result.Kind)
	}
	if result.Combined != 50 {
		t.Fatalf("combined = %d, want 50", result.Combined)
	}
}

func TestCanStackPartially(t *testing.T) {
	result, err := CanStack(Quantity(60), Quantity(10), "stone", "stone", true, 64)
	if err != nil {
		t.Fatalf("can stack: %v", err)
	}
	if result.Kind != PartiallyStackable {
		t.Fatalf("kind = %s, want partially_stackable", result.Kind)
	}
	if result.Stacked != 64 {
		t.Fatalf("stacked = %d, want 64", result.Stacked)
	}
	if result.Remainder != 6 {
		t.Fatalf("remainder = %d, want 6", result.Remainder)
	}
}
