// Package integrity provides the content hash assigned to journal events
// on append.
//
// Why this package exists:
// - It ensures each stored event carries a deterministic hash input.
// - It keeps the envelope field ordering defined in one place so replay
//   and verification cannot drift between layers.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/emberhollow/stockpile/internal/event"
)

// EventHash computes the content hash for a single event.
//
// The hash covers the envelope fields that identify the event plus the raw
// payload bytes. Sequence is included so the same payload appended twice
// hashes differently.
func EventHash(evt event.Event) (string, error) {
	if strings.TrimSpace(evt.AggregateID) == "" {
		return "", fmt.Errorf("aggregate id is required")
	}
	if evt.Type == "" {
		return "", fmt.Errorf("event type is required")
	}

	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%s|%d|%s|%s|%s|",
		evt.AggregateID,
		evt.Seq,
		evt.Type,
		evt.Timestamp.UTC().UnixMilli(),
		evt.PlayerID,
		evt.EntityType,
		evt.EntityID,
	)
	h.Write(evt.PayloadJSON)

	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16]), nil
}

// Verify recomputes an event's hash and reports whether it matches the
// stored value.
func Verify(evt event.Event) error {
	want, err := EventHash(evt)
	if err != nil {
		return err
	}
	if evt.Hash != want {
		return fmt.Errorf("event %s seq %d: hash mismatch", evt.AggregateID, evt.Seq)
	}
	return nil
}
