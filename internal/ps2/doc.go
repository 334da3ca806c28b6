// Package ps2 defines the ProgSnap2 schema vocabulary shared by the event
// store and the dataset reader: table names and column sets, event-type tags,
// metadata property names with their seed defaults, and the on-disk dataset
// layout.
//
// Everything in this package is static configuration. There is no mutable
// state; both internal/store and internal/dataset consume these definitions
// and interoperate only through the persisted schema they describe.
package ps2
