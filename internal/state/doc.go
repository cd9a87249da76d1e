// Package state owns the canonical pet collection shown by petdesk.
//
// # Overview
//
// A Collection keeps one in-memory list of pets consistent across three
// sources, tried in this order:
//
//	backend (petapi.Gateway)  →  local store (LocalStore)  →  sample data
//
// Reads and writes fall back differently:
//
//	Refresh:  List ok      → backend list replaces the collection
//	          List fails   → samples replace the collection, offline = true
//	Add:      Create ok    → Refresh
//	          Create fails → local Append, new pet appended to the collection
//	Delete:   Remove ok    → Refresh
//	          Remove fails → local Remove, collection = local contents
//
// Refresh never reads the local store, so pets added while the backend was
// down are not shown after the next failed load. That matches the storefront
// this replaces and is surfaced to the user through the offline badge.
//
// # Ordering
//
// Every Refresh takes a sequence token. When its List call returns, the result
// is applied only if no newer Refresh or local mutation has happened since;
// otherwise the Outcome is marked Stale and nothing changes. Local mutations
// bump the sequence too, so a slow read cannot overwrite a newer local write.
//
// Deletes hold a per-id pending slot. A second Delete for the same id while
// the first is running returns ErrPending.
//
// # Notices
//
// Operations publish at most one notice per kind (loading, error, success).
// Success and error notices expire after Options.NoticeDuration; the loading
// notice stays until every running operation has finished.
//
// # Concurrency
//
// All methods are safe for concurrent use. The lock is never held across a
// gateway or local store call. Snapshot returns copies.
package state
