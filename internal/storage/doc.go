// Package storage defines the persistence interfaces for the inventory
// engine.
//
// It provides a high-level abstraction for storing container snapshots,
// item definitions, and the append-only event journal. Implementations of
// these interfaces (e.g., using SQLite) can be found in subpackages.
//
// # Error Types
//
// The package defines common error types used across storage implementations:
//   - ErrNotFound: Indicates a requested record is missing.
//   - ErrVersionConflict: Indicates a snapshot write lost an optimistic
//     concurrency race.
package storage
