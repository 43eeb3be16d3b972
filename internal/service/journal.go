package service

import (
	"context"
	"fmt"

	"github.com/emberhollow/stockpile/internal/container"
	"github.com/emberhollow/stockpile/internal/event"
	"github.com/emberhollow/stockpile/internal/item"
	"github.com/emberhollow/stockpile/internal/storage/cursor"
	"github.com/emberhollow/stockpile/internal/storage/integrity"
)

const (
	defaultJournalPageSize = 50
	maxJournalPageSize     = 200
)

// JournalPage is one page of an aggregate's event journal.
type JournalPage struct {
	Events        []event.Event
	NextPageToken string
}

// GetJournal returns a page of an aggregate's journal in sequence order.
// The returned token fetches the next page; an empty token means the end.
func (s *InventoryService) GetJournal(ctx context.Context, aggregateID string, pageSize int, pageToken string) (JournalPage, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.GetJournal")
	defer span.End()

	if pageSize <= 0 {
		pageSize = defaultJournalPageSize
	}
	if pageSize > maxJournalPageSize {
		pageSize = maxJournalPageSize
	}

	var afterSeq uint64
	if pageToken != "" {
		c, err := cursor.Decode(pageToken)
		if err != nil {
			return JournalPage{}, fmt.Errorf("decode page token: %w", err)
		}
		if err := cursor.ValidateAggregate(c, aggregateID); err != nil {
			return JournalPage{}, fmt.Errorf("validate page token: %w", err)
		}
		afterSeq = c.Seq
	}

	events, err := s.events.ListEvents(ctx, aggregateID, afterSeq, pageSize)
	if err != nil {
		return JournalPage{}, err
	}

	page := JournalPage{Events: events}
	if len(events) == pageSize {
		token, err := cursor.Encode(cursor.NewForward(events[len(events)-1].Seq, aggregateID))
		if err != nil {
			return JournalPage{}, fmt.Errorf("encode page token: %w", err)
		}
		page.NextPageToken = token
	}
	return page, nil
}

// ReplayContainer rebuilds a container's state by folding its complete
// journal onto an empty shell with the snapshot's identity. The result can
// be compared against the stored snapshot to detect drift.
func (s *InventoryService) ReplayContainer(ctx context.Context, containerID string) (container.Container, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.ReplayContainer")
	defer span.End()

	snapshot, err := s.containers.GetContainer(ctx, containerID)
	if err != nil {
		return container.Container{}, err
	}
	events, err := s.events.ListEvents(ctx, containerID, 0, 0)
	if err != nil {
		return container.Container{}, err
	}

	base := emptyShell(snapshot)
	replayed, err := container.Replay(base, events)
	if err != nil {
		return container.Container{}, fmt.Errorf("replay container %s: %w", containerID, err)
	}
	return replayed, nil
}

// VerifyJournal recomputes every event hash in an aggregate's journal and
// returns the number of events checked.
func (s *InventoryService) VerifyJournal(ctx context.Context, aggregateID string) (uint64, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.VerifyJournal")
	defer span.End()

	var (
		afterSeq uint64
		checked  uint64
	)
	for {
		events, err := s.events.ListEvents(ctx, aggregateID, afterSeq, maxJournalPageSize)
		if err != nil {
			return checked, err
		}
		if len(events) == 0 {
			return checked, nil
		}
		for _, evt := range events {
			if err := integrity.Verify(evt); err != nil {
				return checked, err
			}
			checked++
			afterSeq = evt.Seq
		}
	}
}

// emptyShell strips a snapshot back to its creation-time state so the
// journal can be folded from the beginning.
func emptyShell(snapshot container.Container) container.Container {
	shell := snapshot
	shell.Slots = make([]*item.Stack, len(snapshot.Slots))
	shell.Permissions = nil
	shell.Viewers = nil
	shell.IsOpen = false
	shell.Version = 1
	shell.LastAccessed = nil
	shell.LastModified = snapshot.CreatedAt
	shell.Uncommitted = nil
	return shell
}
