// Package reconcile implements the reconciliation engine: it walks the local
// media tree, resolves every candidate file to the Plex library section whose
// registered root location is its longest path prefix, checks the file
// against an in-memory per-section inventory of catalog-known paths, and asks
// Plex for a targeted re-scan of each folder that contains files the catalog
// does not know about.
//
// # Architecture
//
// The engine is built from small, separately testable parts:
//
//  1. ResolveSection: longest-prefix path matching against section root
//     locations, respecting path-segment boundaries.
//
//  2. Inventory: lazily built per-section sets of catalog-reported file
//     paths. A set is built at most once per run and answers all membership
//     checks for that section; a failed build leaves the section unbuilt so
//     a later file may retry it.
//
//  3. Walker: filesystem traversal with media-extension classification,
//     hidden-file skipping and optional broken-symlink detection.
//
//  4. Pacer: the mandatory delay between successive re-scan requests,
//     expressed as an interface so tests run without wall-clock waits.
//
//  5. Engine: the sequential driver tying the above together and
//     accumulating RunStats.
//
// # Concurrency
//
// A run is strictly single-threaded: re-scan requests must be paced and
// de-duplicated against a shared scanned-folder set, which is simplest to
// reason about without concurrent mutation. All state is run-scoped; nothing
// survives from one run to the next.
package reconcile
