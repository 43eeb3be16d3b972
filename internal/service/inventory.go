// Package service coordinates domain operations with persistence: each
// operation loads a snapshot, runs the pure domain function, appends the
// resulting events to the journal, and writes the snapshot back under an
// optimistic concurrency guard.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/emberhollow/stockpile/internal/catalog"
	"github.com/emberhollow/stockpile/internal/container"
	"github.com/emberhollow/stockpile/internal/item"
	"github.com/emberhollow/stockpile/internal/storage"
)

// InventoryService exposes the engine's operations over persisted state.
type InventoryService struct {
	containers  storage.ContainerStore
	definitions storage.DefinitionStore
	events      storage.EventStore
	registry    *catalog.Registry
	clock       func() time.Time
	idGenerator func() (string, error)
	log         zerolog.Logger
	tracer      trace.Tracer
}

// NewInventoryService creates an InventoryService with default dependencies.
// The registry falls back to the built-in catalog when nil.
func NewInventoryService(store storage.Store, registry *catalog.Registry, log zerolog.Logger) *InventoryService {
	if registry == nil {
		registry = catalog.Default()
	}
	return &InventoryService{
		containers:  store,
		definitions: store,
		events:      store,
		registry:    registry,
		clock:       time.Now,
		idGenerator: item.NewID,
		log:         log,
		tracer:      otel.Tracer("stockpile/service"),
	}
}

// CreateContainer creates and persists a new container.
func (s *InventoryService) CreateContainer(ctx context.Context, input container.NewContainerInput) (container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.CreateContainer")
	defer span.End()

	c, err := container.New(input, s.clock, s.idGenerator)
	if err != nil {
		return container.Container{}, err
	}
	if err := s.containers.PutContainer(ctx, c, 0); err != nil {
		return container.Container{}, fmt.Errorf("persist container: %w", err)
	}

	span.SetAttributes(attribute.String("container.id", c.ID))
	s.log.Info().
		Str("container_id", c.ID).
		Str("container_type", string(c.Type)).
		Str("owner_id", c.OwnerID).
		Msg("container created")
	return c, nil
}

// GetContainer loads a container snapshot.
func (s *InventoryService) GetContainer(ctx context.Context, id string) (container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.GetContainer")
	defer span.End()
	return s.containers.GetContainer(ctx, id)
}

// ListContainersByOwner returns the owner's containers.
func (s *InventoryService) ListContainersByOwner(ctx context.Context, ownerID string) ([]container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.ListContainersByOwner")
	defer span.End()
	return s.containers.ListContainersByOwner(ctx, ownerID)
}

// DeleteContainer removes a container snapshot. The journal is retained.
func (s *InventoryService) DeleteContainer(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "inventory.DeleteContainer")
	defer span.End()

	if err := s.containers.DeleteContainer(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("container_id", id).Msg("container deleted")
	return nil
}

// OpenContainer adds the player to the container's viewer set.
func (s *InventoryService) OpenContainer(ctx context.Context, containerID, playerID string) (container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.OpenContainer")
	defer span.End()

	loaded, err := s.containers.GetContainer(ctx, containerID)
	if err != nil {
		return container.Container{}, err
	}
	updated, err := container.Open(loaded, playerID, s.clock)
	if err != nil {
		return container.Container{}, err
	}
	return s.commit(ctx, loaded.Version, updated)
}

// CloseContainer removes the player from the container's viewer set.
func (s *InventoryService) CloseContainer(ctx context.Context, containerID, playerID string, sessionStart time.Time) (container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.CloseContainer")
	defer span.End()

	loaded, err := s.containers.GetContainer(ctx, containerID)
	if err != nil {
		return container.Container{}, err
	}
	updated, err := container.Close(loaded, playerID, sessionStart, s.clock)
	if err != nil {
		return container.Container{}, err
	}
	return s.commit(ctx, loaded.Version, updated)
}

// PlaceItem puts a stack into a specific slot.
func (s *InventoryService) PlaceItem(ctx context.Context, containerID, playerID string, slotIndex int, stack item.Stack) (container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.PlaceItem")
	defer span.End()

	loaded, err := s.containers.GetContainer(ctx, containerID)
	if err != nil {
		return container.Container{}, err
	}
	updated, err := container.PlaceItem(loaded, playerID, slotIndex, stack, s.clock)
	if err != nil {
		return container.Container{}, err
	}
	return s.commit(ctx, loaded.Version, updated)
}

// AddItem puts a stack into the first accepting empty slot.
func (s *InventoryService) AddItem(ctx context.Context, containerID, playerID string, stack item.Stack) (container.Container, int, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.AddItem")
	defer span.End()

	loaded, err := s.containers.GetContainer(ctx, containerID)
	if err != nil {
		return container.Container{}, 0, err
	}
	updated, slotIndex, err := container.AddItem(loaded, playerID, stack, s.clock)
	if err != nil {
		return container.Container{}, 0, err
	}
	committed, err := s.commit(ctx, loaded.Version, updated)
	if err != nil {
		return container.Container{}, 0, err
	}
	return committed, slotIndex, nil
}

// RemoveItem takes quantity items out of a slot and returns the removed stack.
func (s *InventoryService) RemoveItem(ctx context.Context, containerID, playerID string, slotIndex, quantity int, reason string) (container.Container, item.Stack, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.RemoveItem")
	defer span.End()

	loaded, err := s.containers.GetContainer(ctx, containerID)
	if err != nil {
		return container.Container{}, item.Stack{}, err
	}
	updated, removed, err := container.RemoveItem(loaded, playerID, slotIndex, quantity, reason, s.clock, s.idGenerator)
	if err != nil {
		return container.Container{}, item.Stack{}, err
	}
	committed, err := s.commit(ctx, loaded.Version, updated)
	if err != nil {
		return container.Container{}, item.Stack{}, err
	}
	return committed, removed, nil
}

// GrantPermission upserts a player's permission entry.
func (s *InventoryService) GrantPermission(ctx context.Context, containerID, requesterID, targetPlayerID string, perm container.Permission) (container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.GrantPermission")
	defer span.End()

	loaded, err := s.containers.GetContainer(ctx, containerID)
	if err != nil {
		return container.Container{}, err
	}
	updated, err := container.GrantPermission(loaded, requesterID, targetPlayerID, perm, s.clock)
	if err != nil {
		return container.Container{}, err
	}
	return s.commit(ctx, loaded.Version, updated)
}

// SortContainer reorders the container's occupied slots.
func (s *InventoryService) SortContainer(ctx context.Context, containerID, playerID string, key container.SortKey) (container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.SortContainer")
	defer span.End()

	loaded, err := s.containers.GetContainer(ctx, containerID)
	if err != nil {
		return container.Container{}, err
	}
	updated, err := container.Sort(loaded, playerID, key, s.clock)
	if err != nil {
		return container.Container{}, err
	}
	return s.commit(ctx, loaded.Version, updated)
}

// commit writes the snapshot under the version it was loaded at, then
// appends the operation's events to the journal. The snapshot write is the
// concurrency gate: a stale writer fails before any event is recorded.
func (s *InventoryService) commit(ctx context.Context, loadedVersion int, c container.Container) (container.Container, error) {
	if err := s.containers.PutContainer(ctx, c, loadedVersion); err != nil {
		return container.Container{}, err
	}
	for _, evt := range c.UncommittedEvents() {
		stored, err := s.events.AppendEvent(ctx, evt)
		if err != nil {
			return container.Container{}, fmt.Errorf("append event %s: %w", evt.Type, err)
		}
		s.log.Debug().
			Str("container_id", c.ID).
			Str("event_type", string(stored.Type)).
			Uint64("seq", stored.Seq).
			Msg("event appended")
	}
	return c.ClearUncommitted(), nil
}
