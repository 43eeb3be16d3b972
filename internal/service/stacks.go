package service

import (
	"context"
	"fmt"

	"github.com/emberhollow/stockpile/internal/event"
	"github.com/emberhollow/stockpile/internal/item"
)

// CreateStack mints a new item stack, resolving the stack limit from the
// catalog registry.
func (s *InventoryService) CreateStack(ctx context.Context, itemID string, count int) (item.Stack, error) {
	_, span := s.tracer.Start(ctx, "inventory.CreateStack")
	defer span.End()

	def, err := s.registry.Get(itemID)
	if err != nil {
		return item.Stack{}, err
	}
	return item.New(item.NewStackInput{
		ItemID:       itemID,
		Count:        count,
		MaxStackSize: def.ResolvedMaxStackSize(),
	}, s.clock, s.idGenerator)
}

// MergeStacks merges source into target and journals the result under the
// target stack's id.
func (s *InventoryService) MergeStacks(ctx context.Context, source, target item.Stack) (item.Stack, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.MergeStacks")
	defer span.End()

	maxSize, err := s.registry.MaxStackSize(target.ItemID)
	if err != nil {
		return item.Stack{}, err
	}
	merged, evt, err := item.Merge(source, target, maxSize, s.clock)
	if err != nil {
		return item.Stack{}, err
	}
	if err := s.appendStackEvent(ctx, evt); err != nil {
		return item.Stack{}, err
	}
	return merged, nil
}

// SplitStack splits quantity items off a stack into a new one.
func (s *InventoryService) SplitStack(ctx context.Context, source item.Stack, quantity int) (item.Stack, item.Stack, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.SplitStack")
	defer span.End()

	remaining, split, evt, err := item.Split(source, quantity, s.clock, s.idGenerator)
	if err != nil {
		return item.Stack{}, item.Stack{}, err
	}
	if err := s.appendStackEvent(ctx, evt); err != nil {
		return item.Stack{}, item.Stack{}, err
	}
	return remaining, split, nil
}

// ConsumeStack uses up quantity items. A nil result means the stack was
// fully consumed.
func (s *InventoryService) ConsumeStack(ctx context.Context, stack item.Stack, quantity int, reason string) (*item.Stack, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.ConsumeStack")
	defer span.End()

	remaining, evt, err := item.Consume(stack, quantity, reason, s.clock)
	if err != nil {
		return nil, err
	}
	if err := s.appendStackEvent(ctx, evt); err != nil {
		return nil, err
	}
	return remaining, nil
}

// DamageStack applies durability loss. A nil result means the stack broke.
func (s *InventoryService) DamageStack(ctx context.Context, stack item.Stack, amount float64) (*item.Stack, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.DamageStack")
	defer span.End()

	remaining, evt, err := item.Damage(stack, amount, s.clock)
	if err != nil {
		return nil, err
	}
	if err := s.appendStackEvent(ctx, evt); err != nil {
		return nil, err
	}
	return remaining, nil
}

// RepairStack restores durability. Repairs are not journaled; they do not
// change the stack's identity or quantity.
func (s *InventoryService) RepairStack(ctx context.Context, stack item.Stack, amount float64) (item.Stack, error) {
	_, span := s.tracer.Start(ctx, "inventory.RepairStack")
	defer span.End()

	return item.Repair(stack, amount, s.clock)
}

func (s *InventoryService) appendStackEvent(ctx context.Context, evt event.Event) error {
	stored, err := s.events.AppendEvent(ctx, evt)
	if err != nil {
		return fmt.Errorf("append event %s: %w", evt.Type, err)
	}
	s.log.Debug().
		Str("stack_id", stored.AggregateID).
		Str("event_type", string(stored.Type)).
		Uint64("seq", stored.Seq).
		Msg("event appended")
	return nil
}
