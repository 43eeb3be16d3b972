package storage

import (
	"context"

	"github.com/emberhollow/stockpile/internal/catalog"
	"github.com/emberhollow/stockpile/internal/container"
	"github.com/emberhollow/stockpile/internal/event"
	apperrors "github.com/emberhollow/stockpile/internal/platform/errors"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrVersionConflict indicates a snapshot write raced a concurrent writer
// and lost. Callers reload the snapshot and retry the operation.
var ErrVersionConflict = apperrors.New(apperrors.CodeVersionConflict, "snapshot version does not match the stored version")

// ContainerStore persists container snapshots.
type ContainerStore interface {
	// PutContainer inserts a new snapshot or replaces an existing one.
	// Updates are guarded by optimistic concurrency: the write succeeds
	// only when the stored version equals the snapshot version minus the
	// events applied since load; otherwise ErrVersionConflict is returned.
	PutContainer(ctx context.Context, c container.Container, expectedVersion int) error
	// GetContainer loads a snapshot by id.
	GetContainer(ctx context.Context, id string) (container.Container, error)
	// ListContainersByOwner returns the owner's containers ordered by id.
	ListContainersByOwner(ctx context.Context, ownerID string) ([]container.Container, error)
	// DeleteContainer removes a snapshot and leaves its journal intact.
	DeleteContainer(ctx context.Context, id string) error
}

// DefinitionStore persists item definitions.
type DefinitionStore interface {
	// PutDefinition inserts or replaces a definition.
	PutDefinition(ctx context.Context, def catalog.Definition) error
	// GetDefinition loads a definition by item id.
	GetDefinition(ctx context.Context, itemID string) (catalog.Definition, error)
	// ListDefinitions returns all definitions ordered by item id.
	ListDefinitions(ctx context.Context) ([]catalog.Definition, error)
}

// EventStore persists the append-only event journal.
type EventStore interface {
	// AppendEvent atomically appends an event and returns it with the
	// per-aggregate sequence number and content hash assigned.
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	// ListEvents returns an aggregate's journal in sequence order,
	// starting after afterSeq, up to limit events. A limit of zero means
	// no bound.
	ListEvents(ctx context.Context, aggregateID string, afterSeq uint64, limit int) ([]event.Event, error)
	// CountEvents returns the journal length for an aggregate.
	CountEvents(ctx context.Context, aggregateID string) (uint64, error)
}

// Store bundles the interfaces a full engine deployment needs.
type Store interface {
	ContainerStore
	DefinitionStore
	EventStore
}
