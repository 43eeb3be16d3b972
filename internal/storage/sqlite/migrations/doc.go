// Package migrations embeds SQL migration scripts used by the SQLite store.
//
// Why this package exists:
// - It centralizes schema history for snapshots, definitions, and the
//   event journal.
// - It allows upgrade and replay-safe evolution without manual operator SQL.
package migrations
