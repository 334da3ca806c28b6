// Package store provides SQLite-backed durable storage for ProgSnap2 event
// logs.
//
// The store implements an append-only log with:
//   - MainTable: one row per observed event, EventID store-assigned
//   - CodeStates: content-deduplicated code snapshots (one row per distinct text)
//   - DatasetMetadata: fixed property/value stamp, seeded once at creation
//   - LinkProblem / LinkSubject: per-problem and per-subject auxiliary rows
//
// Invariants:
//   - Every non-NULL CodeStateID references an existing CodeStates row.
//   - Identical code text maps to exactly one snapshot. The UNIQUE index on
//     CodeStates.Code turns get-or-create into an atomic conditional insert,
//     so the dedup holds even under concurrent writers.
//   - EventID is monotonically increasing and never caller-supplied.
//
// Each operation is its own transaction: open, act, commit, return. There is
// no cross-call batching; every logged event is an independent durable unit.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
