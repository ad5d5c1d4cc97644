// Package storage persists the entity stores. Two backends implement
// Provider: a JSON backend with one snapshot file per store, and a
// SQLite backend with one flat entity table per store. Both publish
// saves atomically so a crash mid-write never leaves a torn snapshot.
package storage

// Gateway persists a single entity store: Save writes the store's full
// id→entity mapping, Load reconstructs the store from it. A missing
// snapshot loads as an empty store.
type Gateway interface {
	Load() error
	Save() error
}

// Provider bundles the per-store gateways of one backend.
type Provider interface {
	// Init prepares fresh storage at the configured path. It fails if
	// storage already exists there.
	Init() error
	// Load reconstructs all stores from their snapshots.
	Load() error
	// Save persists all stores together (the "save program" operation).
	Save() error
	Close() error

	// Path returns the storage location on disk.
	Path() string
}
