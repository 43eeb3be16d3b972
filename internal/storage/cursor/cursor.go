// Package cursor provides opaque pagination token encoding/decoding for
// walking an aggregate's event journal.
package cursor

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Direction indicates the pagination direction.
type Direction string

const (
	// DirectionForward paginates forward (seq > cursor).
	DirectionForward Direction = "fwd"
	// DirectionBackward paginates backward (seq < cursor).
	DirectionBackward Direction = "bwd"
)

// Cursor represents the internal state of a pagination cursor.
type Cursor struct {
	// Seq is the journal sequence number to paginate from.
	Seq uint64 `json:"seq"`
	// Dir is the pagination direction (fwd = seq > cursor, bwd = seq < cursor).
	Dir Direction `json:"dir"`
	// AggregateHash invalidates tokens reused against a different journal.
	AggregateHash string `json:"agg_hash,omitempty"`
}

// Encode encodes a cursor to an opaque base64 string.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode decodes an opaque base64 string to a cursor.
// Returns an error if the token is invalid or malformed.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, fmt.Errorf("empty token")
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode base64: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, fmt.Errorf("unmarshal cursor: %w", err)
	}

	if c.Dir != DirectionForward && c.Dir != DirectionBackward {
		return Cursor{}, fmt.Errorf("invalid cursor direction: %q", c.Dir)
	}

	return c, nil
}

// HashAggregate computes a short hash of the aggregate id for cursor
// validation. Returns empty string for an empty id.
func HashAggregate(aggregateID string) string {
	if aggregateID == "" {
		return ""
	}
	h := sha256.Sum256([]byte(aggregateID))
	return hex.EncodeToString(h[:8])
}

// ValidateAggregate checks that the cursor was minted for the given
// aggregate's journal.
func ValidateAggregate(c Cursor, aggregateID string) error {
	if c.AggregateHash != HashAggregate(aggregateID) {
		return fmt.Errorf("cursor was created for a different journal")
	}
	return nil
}

// NewForward creates a cursor for forward pagination (seq > cursor) from
// the given sequence.
func NewForward(seq uint64, aggregateID string) Cursor {
	return Cursor{
		Seq:           seq,
		Dir:           DirectionForward,
		AggregateHash: HashAggregate(aggregateID),
	}
}

// NewBackward creates a cursor for backward pagination (seq < cursor) from
// the given sequence.
func NewBackward(seq uint64, aggregateID string) Cursor {
	return Cursor{
		Seq:           seq,
		Dir:           DirectionBackward,
		AggregateHash: HashAggregate(aggregateID),
	}
}
