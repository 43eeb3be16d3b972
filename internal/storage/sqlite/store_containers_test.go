package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emberhollow/stockpile/internal/container"
	"github.com/emberhollow/stockpile/internal/storage"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }

func fixedID(id string) func() (string, error) {
	return func() (string, error) { return id, nil }
}

func testContainer(t *testing.T, id string) container.Container {
	t.Helper()
	c, err := container.New(container.NewContainerInput{
		Type:        container.TypeChest,
		OwnerID:     "owner-1",
		AccessLevel: container.AccessPrivate,
	}, fixedNow, fixedID(id))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return c
}

func TestPutAndGetContainer(t *testing.T) {
	store := openTestStore(t)
	c := testContainer(t, "container-1")

	if err := store.PutContainer(context.Background(), c, 0); err != nil {
		t.Fatalf("put: %v", err)
	}

	loaded, err := store.GetContainer(context.Background(), "container-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ID != c.ID || loaded.OwnerID != c.OwnerID || loaded.Type != c.Type {
		t.Fatalf("loaded = %+v, want identity of stored container", loaded)
	}
	if len(loaded.Slots) != 27 {
		t.Fatalf("slots = %d, want 27", len(loaded.Slots))
	}
	if loaded.Version != c.Version {
		t.Fatalf("version = %d, want %d", loaded.Version, c.Version)
	}
}

func TestGetContainerNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetContainer(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPutContainerDetectsVersionConflict(t *testing.T) {
	store := openTestStore(t)
	c := testContainer(t, "container-1")

	if err := store.PutContainer(context.Background(), c, 0); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Two writers load version 1. The first update wins.
	first, err := container.Open(c, "owner-1", fixedNow)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.PutContainer(context.Background(), first, c.Version); err != nil {
		t.Fatalf("first update: %v", err)
	}

	second, err := container.Open(c, "owner-1", fixedNow)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.PutContainer(context.Background(), second, c.Version); !errors.Is(err, storage.ErrVersionConflict) {
		t.Fatalf("stale update err = %v, want ErrVersionConflict", err)
	}
}

func TestPutContainerRejectsDuplicateInsert(t *testing.T) {
	store := openTestStore(t)
	c := testContainer(t, "container-1")

	if err := store.PutContainer(context.Background(), c, 0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.PutContainer(context.Background(), c, 0); !errors.Is(err, storage.ErrVersionConflict) {
		t.Fatalf("duplicate insert err = %v, want ErrVersionConflict", err)
	}
}

func TestPutContainerUpdateMissingRow(t *testing.T) {
	store := openTestStore(t)
	c := testContainer(t, "container-1")

	if err := store.PutContainer(context.Background(), c, 1); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListContainersByOwner(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"container-b", "container-a"} {
		if err := store.PutContainer(context.Background(), testContainer(t, id), 0); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	containers, err := store.ListContainersByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(containers) != 2 {
		t.Fatalf("containers = %d, want 2", len(containers))
	}
	if containers[0].ID != "container-a" || containers[1].ID != "container-b" {
		t.Fatalf("order = %s,%s, want container-a,container-b", containers[0].ID, containers[1].ID)
	}

	none, err := store.ListContainersByOwner(context.Background(), "owner-2")
	if err != nil {
		t.Fatalf("list other owner: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("containers = %d, want 0", len(none))
	}
}

func TestDeleteContainer(t *testing.T) {
	store := openTestStore(t)
	c := testContainer(t, "container-1")

	if err := store.PutContainer(context.Background(), c, 0); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.DeleteContainer(context.Background(), "container-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetContainer(context.Background(), "container-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteContainer(context.Background(), "container-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSnapshotPersistsSlotsAndPermissions(t *testing.T) {
	store := openTestStore(t)
	c := testContainer(t, "container-1")

	expiry := fixedNow().Add(time.Hour)
	granted, err := container.GrantPermission(c, "owner-1", "player-2",
		container.Permission{CanView: true, ExpiresAt: &expiry}, fixedNow)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}

	if err := store.PutContainer(context.Background(), granted, 0); err != nil {
		t.Fatalf("put: %v", err)
	}
	loaded, err := store.GetContainer(context.Background(), "container-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Permissions) != 1 || loaded.Permissions[0].PlayerID != "player-2" {
		t.Fatalf("permissions = %+v, want player-2 grant", loaded.Permissions)
	}
	if loaded.Permissions[0].ExpiresAt == nil || !loaded.Permissions[0].ExpiresAt.Equal(expiry) {
		t.Fatalf("expiry = %v, want %v", loaded.Permissions[0].ExpiresAt, expiry)
	}
	if len(loaded.Uncommitted) != 0 {
		t.Fatal("snapshot should not persist the pending event log")
	}
}
