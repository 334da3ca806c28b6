// Package dataset provides read-only access to a persisted ProgSnap2 dataset
// directory: the main event table, the dataset metadata, the code-states
// table, and any auxiliary link tables.
//
// A Dataset lazily loads each table from disk on first access and caches it
// for the life of the instance; caches are invalidated only by constructing a
// new Dataset. Accessors return defensive copies, so caller mutation never
// leaks into the cache. DropMainTableColumn is the one deliberate exception:
// it mutates the cached main table in place.
//
// Ordering of the main table is schema-driven: when the metadata declares
// consistent event ordering, rows are stably sorted by the Order column,
// either globally or within the groups named by EventOrderScopeColumns.
package dataset
