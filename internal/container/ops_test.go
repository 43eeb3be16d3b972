package container

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/emberhollow/stockpile/internal/event"
	"github.com/emberhollow/stockpile/internal/item"
)

func TestOpenAddsViewerAndRecordsEvent(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})

	opened, err := Open(c, "owner-1", fixedNow)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !opened.IsOpen {
		t.Fatal("container should be open")
	}
	if !opened.IsViewing("owner-1") {
		t.Fatal("owner should be in the viewer set")
	}
	if opened.Version != c.Version+1 {
		t.Fatalf("version = %d, want %d", opened.Version, c.Version+1)
	}
	if opened.LastAccessed == nil || !opened.LastAccessed.Equal(fixedNow()) {
		t.Fatalf("last accessed = %v, want %v", opened.LastAccessed, fixedNow())
	}
	if len(opened.Uncommitted) != 1 {
		t.Fatalf("uncommitted events = %d, want 1", len(opened.Uncommitted))
	}

	evt := opened.Uncommitted[0]
	if evt.Type != event.TypeContainerOpened {
		t.Fatalf("event type = %s, want %s", evt.Type, event.TypeContainerOpened)
	}
	var payload event.ContainerOpenedPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.PlayerID != "owner-1" {
		t.Fatalf("payload player = %s, want owner-1", payload.PlayerID)
	}
	if payload.ContainerType != "chest" {
		t.Fatalf("payload type = %s, want chest", payload.ContainerType)
	}
}

func TestOpenIsIdempotentForCurrentViewer(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	opened, err := Open(c, "owner-1", fixedNow)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	again, err := Open(opened, "owner-1", fixedNow)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if len(again.Viewers) != 1 {
		t.Fatalf("viewers = %d, want 1", len(again.Viewers))
	}
	if len(again.Uncommitted) != 2 {
		t.Fatalf("uncommitted events = %d, want 2", len(again.Uncommitted))
	}
}

func TestOpenEnforcesViewerBound(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{AccessLevel: AccessPublic})
	for i := 0; i < MaxViewers; i++ {
		var err error
		c, err = Open(c, fmt.Sprintf("player-%d", i), fixedNow)
		if err != nil {
			t.Fatalf("open viewer %d: %v", i, err)
		}
	}

	if _, err := Open(c, "player-late", fixedNow); !errors.Is(err, ErrTooManyViewers) {
		t.Fatalf("err = %v, want ErrTooManyViewers", err)
	}

	// A current viewer re-opening does not grow the set and stays allowed.
	if _, err := Open(c, "player-0", fixedNow); err != nil {
		t.Fatalf("re-open by current viewer: %v", err)
	}
}

func TestOpenDeniedWithoutViewAccess(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{AccessLevel: AccessPrivate})
	if _, err := Open(c, "player-2", fixedNow); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestCloseRemovesViewerAndRecordsSessionDuration(t *testing.T) {
	sessionStart := fixedNow()
	later := func() time.Time { return sessionStart.Add(90 * time.Second) }

	c := newTestContainer(t, NewContainerInput{})
	opened, err := Open(c, "owner-1", fixedNow)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	closed, err := Close(opened, "owner-1", sessionStart, later)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.IsOpen {
		t.Fatal("container should be closed with no viewers left")
	}
	if closed.IsViewing("owner-1") {
		t.Fatal("viewer should be removed")
	}

	evt := closed.Uncommitted[len(closed.Uncommitted)-1]
	if evt.Type != event.TypeContainerClosed {
		t.Fatalf("event type = %s, want %s", evt.Type, event.TypeContainerClosed)
	}
	var payload event.ContainerClosedPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.SessionDuration != 90*time.Second {
		t.Fatalf("session duration = %s, want 90s", payload.SessionDuration)
	}
}

func TestCloseKeepsContainerOpenWhileOthersView(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{AccessLevel: AccessPublic})
	c, err := Open(c, "player-1", fixedNow)
	if err != nil {
		t.Fatalf("open player-1: %v", err)
	}
	c, err = Open(c, "player-2", fixedNow)
	if err != nil {
		t.Fatalf("open player-2: %v", err)
	}

	closed, err := Close(c, "player-1", fixedNow(), fixedNow)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !closed.IsOpen {
		t.Fatal("container should stay open while player-2 views it")
	}
	if !closed.IsViewing("player-2") {
		t.Fatal("player-2 should still be viewing")
	}
}

func TestPlaceItemFillsEmptySlot(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	opened, err := Open(c, "owner-1", fixedNow)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	placed, err := PlaceItem(opened, "owner-1", 0, newTestStack(t, "cobblestone", 32), fixedNow)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if placed.Slots[0] == nil || placed.Slots[0].ItemID != "cobblestone" {
		t.Fatalf("slot 0 = %+v, want cobblestone stack", placed.Slots[0])
	}
	if placed.ItemCount("cobblestone") != 32 {
		t.Fatalf("item count = %d, want 32", placed.ItemCount("cobblestone"))
	}
	if len(placed.Uncommitted) != 2 {
		t.Fatalf("uncommitted events = %d, want 2", len(placed.Uncommitted))
	}
	if placed.Uncommitted[1].Type != event.TypeItemPlaced {
		t.Fatalf("event type = %s, want %s", placed.Uncommitted[1].Type, event.TypeItemPlaced)
	}
	if opened.Slots[0] != nil {
		t.Fatal("input container should be unchanged")
	}
}

func TestPlaceItemRejectsOccupiedSlot(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	c, err := PlaceItem(c, "owner-1", 0, newTestStack(t, "stone", 1), fixedNow)
	if err != nil {
		t.Fatalf("first place: %v", err)
	}
	if _, err := PlaceItem(c, "owner-1", 0, newTestStack(t, "dirt", 1), fixedNow); !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("err = %v, want ErrSlotOccupied", err)
	}
}

func TestPlaceItemRejectsBadSlotIndex(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	if _, err := PlaceItem(c, "owner-1", 27, newTestStack(t, "stone", 1), fixedNow); !errors.Is(err, ErrInvalidSlotIndex) {
		t.Fatalf("err = %v, want ErrInvalidSlotIndex", err)
	}
	if _, err := PlaceItem(c, "owner-1", -1, newTestStack(t, "stone", 1), fixedNow); !errors.Is(err, ErrInvalidSlotIndex) {
		t.Fatalf("err = %v, want ErrInvalidSlotIndex", err)
	}
}

func TestPlaceItemRespectsSlotFilter(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{
		Type: TypeFurnace,
		Configuration: Configuration{
			SlotFilters: map[int][]string{1: {"coal", "charcoal"}},
		},
	})

	if _, err := PlaceItem(c, "owner-1", 1, newTestStack(t, "stone", 1), fixedNow); !errors.Is(err, ErrInvalidItemType) {
		t.Fatalf("err = %v, want ErrInvalidItemType", err)
	}
	if _, err := PlaceItem(c, "owner-1", 1, newTestStack(t, "coal", 8), fixedNow); err != nil {
		t.Fatalf("place coal: %v", err)
	}
	// Unfiltered slots accept anything.
	if _, err := PlaceItem(c, "owner-1", 0, newTestStack(t, "stone", 1), fixedNow); err != nil {
		t.Fatalf("place into unfiltered slot: %v", err)
	}
}

func TestPlaceItemBlockedByRedstoneLock(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{
		Type:          TypeHopper,
		AccessLevel:   AccessPublic,
		Configuration: Configuration{RedstoneControlled: true},
	})
	if _, err := PlaceItem(c, "player-2", 0, newTestStack(t, "stone", 1), fixedNow); !errors.Is(err, ErrContainerLocked) {
		t.Fatalf("err = %v, want ErrContainerLocked", err)
	}
	if _, err := PlaceItem(c, "owner-1", 0, newTestStack(t, "stone", 1), fixedNow); err != nil {
		t.Fatalf("owner place: %v", err)
	}
}

func TestAddItemUsesFirstAcceptingSlot(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{
		Type: TypeFurnace,
		Configuration: Configuration{
			SlotFilters: map[int][]string{0: {"iron_ore"}},
		},
	})

	updated, slotIndex, err := AddItem(c, "owner-1", newTestStack(t, "coal", 8), fixedNow)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if slotIndex != 1 {
		t.Fatalf("slot = %d, want 1", slotIndex)
	}
	if updated.Slots[1] == nil || updated.Slots[1].ItemID != "coal" {
		t.Fatalf("slot 1 = %+v, want coal stack", updated.Slots[1])
	}
}

func TestAddItemFailsWhenNoSlotAccepts(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{Type: TypeEnchantingTable})
	var err error
	c, _, err = AddItem(c, "owner-1", newTestStack(t, "book", 1), fixedNow)
	if err != nil {
		t.Fatalf("add 1: %v", err)
	}
	c, _, err = AddItem(c, "owner-1", newTestStack(t, "lapis_lazuli", 3), fixedNow)
	if err != nil {
		t.Fatalf("add 2: %v", err)
	}
	if _, _, err := AddItem(c, "owner-1", newTestStack(t, "diamond", 1), fixedNow); !errors.Is(err, ErrContainerFull) {
		t.Fatalf("err = %v, want ErrContainerFull", err)
	}
}

func TestRemoveItemPartialQuantity(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	c, err := PlaceItem(c, "owner-1", 5, newTestStack(t, "iron_ingot", 10), fixedNow)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	updated, removed, err := RemoveItem(c, "owner-1", 5, 5, "crafting", fixedNow, fixedID("stack-removed"))
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.ID != "stack-removed" {
		t.Fatalf("removed id = %s, want stack-removed", removed.ID)
	}
	if removed.Count.Int() != 5 {
		t.Fatalf("removed count = %d, want 5", removed.Count.Int())
	}
	kept := updated.Slots[5]
	if kept == nil || kept.Count.Int() != 5 {
		t.Fatalf("slot 5 = %+v, want 5 remaining", kept)
	}
	if kept.Version != c.Slots[5].Version+1 {
		t.Fatalf("kept stack version = %d, want %d", kept.Version, c.Slots[5].Version+1)
	}

	evt := updated.Uncommitted[len(updated.Uncommitted)-1]
	var payload event.ItemRemovedPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.SlotIndex != 5 || payload.Quantity != 5 || payload.Reason != "crafting" {
		t.Fatalf("payload = %+v, want slot 5 quantity 5 reason crafting", payload)
	}
}

func TestRemoveItemFullCountEmptiesSlot(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	s := newTestStack(t, "iron_ingot", 10)
	c, err := PlaceItem(c, "owner-1", 0, s, fixedNow)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	updated, removed, err := RemoveItem(c, "owner-1", 0, 10, "", fixedNow, nil)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if updated.Slots[0] != nil {
		t.Fatal("slot should be empty after full removal")
	}
	if removed.ID != s.ID {
		t.Fatalf("removed id = %s, want the original stack id %s", removed.ID, s.ID)
	}
}

func TestRemoveItemZeroQuantityTakesWholeSlot(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	c, err := PlaceItem(c, "owner-1", 0, newTestStack(t, "gold_ingot", 7), fixedNow)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	updated, removed, err := RemoveItem(c, "owner-1", 0, 0, "", fixedNow, nil)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.Count.Int() != 7 {
		t.Fatalf("removed count = %d, want 7", removed.Count.Int())
	}
	if updated.Slots[0] != nil {
		t.Fatal("slot should be empty")
	}
}

func TestRemoveItemErrors(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	c, err := PlaceItem(c, "owner-1", 0, newTestStack(t, "stone", 4), fixedNow)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if _, _, err := RemoveItem(c, "owner-1", 1, 1, "", fixedNow, nil); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("empty slot err = %v, want ErrSlotEmpty", err)
	}
	if _, _, err := RemoveItem(c, "owner-1", 99, 1, "", fixedNow, nil); !errors.Is(err, ErrInvalidSlotIndex) {
		t.Fatalf("bad index err = %v, want ErrInvalidSlotIndex", err)
	}
	if _, _, err := RemoveItem(c, "owner-1", 0, 5, "", fixedNow, nil); !errors.Is(err, item.ErrInsufficientQuantity) {
		t.Fatalf("overdraw err = %v, want ErrInsufficientQuantity", err)
	}
	if _, _, err := RemoveItem(c, "player-2", 0, 1, "", fixedNow, nil); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("stranger err = %v, want ErrAccessDenied", err)
	}
}

func TestGrantPermissionOwnerOnly(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	if _, err := GrantPermission(c, "player-2", "player-3", Permission{CanView: true}, fixedNow); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestGrantPermissionUpserts(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})

	granted, err := GrantPermission(c, "owner-1", "player-2", Permission{CanView: true}, fixedNow)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if len(granted.Permissions) != 1 || !granted.Permissions[0].CanView {
		t.Fatalf("permissions = %+v, want one view grant", granted.Permissions)
	}

	widened, err := GrantPermission(granted, "owner-1", "player-2", Permission{CanView: true, CanInsert: true}, fixedNow)
	if err != nil {
		t.Fatalf("regrant: %v", err)
	}
	if len(widened.Permissions) != 1 {
		t.Fatalf("permissions = %d entries, want 1", len(widened.Permissions))
	}
	if !widened.Permissions[0].CanInsert {
		t.Fatal("regrant should replace the entry")
	}
	if widened.Uncommitted[len(widened.Uncommitted)-1].Type != event.TypePermissionGranted {
		t.Fatal("grant should append a permission_granted event")
	}
}

func TestSortAlphabetical(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{Configuration: Configuration{AutoSort: true}})
	var err error
	for i, itemID := range []string{"stone", "apple", "coal"} {
		c, err = PlaceItem(c, "owner-1", i*3, newTestStack(t, itemID, 1), fixedNow)
		if err != nil {
			t.Fatalf("place %s: %v", itemID, err)
		}
	}

	sorted, err := Sort(c, "owner-1", SortAlphabetical, fixedNow)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	want := []string{"apple", "coal", "stone"}
	for i, itemID := range want {
		if sorted.Slots[i] == nil || sorted.Slots[i].ItemID != itemID {
			t.Fatalf("slot %d = %+v, want %s", i, sorted.Slots[i], itemID)
		}
	}
	for i := len(want); i < len(sorted.Slots); i++ {
		if sorted.Slots[i] != nil {
			t.Fatalf("slot %d should be empty after compaction", i)
		}
	}
}

func TestSortByQuantityDescending(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{Configuration: Configuration{AutoSort: true}})
	var err error
	for i, tc := range []struct {
		itemID string
		count  int
	}{
		{"stone", 3},
		{"dirt", 40},
		{"coal", 12},
	} {
		c, err = PlaceItem(c, "owner-1", i, newTestStack(t, tc.itemID, tc.count), fixedNow)
		if err != nil {
			t.Fatalf("place %s: %v", tc.itemID, err)
		}
	}

	sorted, err := Sort(c, "owner-1", SortQuantity, fixedNow)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	counts := []int{40, 12, 3}
	for i, want := range counts {
		if sorted.Slots[i].Count.Int() != want {
			t.Fatalf("slot %d count = %d, want %d", i, sorted.Slots[i].Count.Int(), want)
		}
	}
}

func TestSortRequiresAutoSort(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{})
	if _, err := Sort(c, "owner-1", SortAlphabetical, fixedNow); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
}

func TestSortRequiresModifyAccess(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{
		AccessLevel:   AccessPublic,
		Configuration: Configuration{AutoSort: true},
	})
	if _, err := Sort(c, "player-2", SortAlphabetical, fixedNow); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestOperationsAppendExactlyOneEventAndBumpVersion(t *testing.T) {
	c := newTestContainer(t, NewContainerInput{Configuration: Configuration{AutoSort: true}})
	startVersion := c.Version

	c, err := Open(c, "owner-1", fixedNow)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	c, err = PlaceItem(c, "owner-1", 0, newTestStack(t, "stone", 10), fixedNow)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	c, _, err = RemoveItem(c, "owner-1", 0, 4, "", fixedNow, nil)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	c, err = Sort(c, "owner-1", SortAlphabetical, fixedNow)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}

	if len(c.Uncommitted) != 4 {
		t.Fatalf("uncommitted events = %d, want 4", len(c.Uncommitted))
	}
	if c.Version != startVersion+4 {
		t.Fatalf("version = %d, want %d", c.Version, startVersion+4)
	}
}
