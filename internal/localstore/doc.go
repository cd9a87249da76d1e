// Package localstore keeps a local copy of the pet collection used when the
// backend cannot accept writes.
//
// FileKV stores each key as <dir>/<key>.json and replaces files atomically.
// Store keeps the collection under the "pets" key as a JSON array and assigns
// ids as max+1. Those ids may collide with ids the backend hands out in
// another session; nothing reconciles them.
//
// Load never fails: a missing value is an empty collection and a corrupt one
// is logged and treated the same way.
package localstore
