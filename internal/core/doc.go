// Package core loads the explorer's CSV datasets and derives the dashboard
// summary from them.
//
// This package holds all domain logic independent of HTTP. The web layer
// only formats what core has already materialized.
//
// # Lifecycle
//
// Everything happens once, before the server accepts connections:
//
//  1. [DefaultRegistry] names the seven dataset files and the columns each
//     must provide.
//  2. [LoadAll] reads every file into a [Dataset] of [Record] values,
//     concurrently, failing as a whole if any file is missing, unreadable,
//     not UTF-8, not CSV, or lacking a required column.
//  3. [Aggregate] derives [Stats] and the cabins-by-ship [Grouping].
//  4. [NewSnapshot] bundles datasets, summary, and per-dataset JSON into an
//     immutable [Snapshot] that request handlers share by reference.
//
// [Load] runs steps 2-4.
//
// # Records
//
// Records are not typed per dataset. A record maps column name to raw cell
// text, in header order, and the header comes from the file. Only the
// columns listed in datasets.go form a contract with the aggregator.
//
// # Error Handling
//
// Load errors wrap sentinels ([ErrEmptyFile], [ErrMissingColumns],
// [ErrInvalidUTF8]) and are mapped to operator-facing messages with codes
// by [MapError].
package core
