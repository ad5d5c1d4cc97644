// Package store holds the in-memory entity managers: accounts, planners
// and templates, each an id→entity map with a sequential id allocator
// that never reuses ids, persisted through internal/storage snapshots.
//
// The managers perform no authorization; role and ownership gating live
// in internal/access.
package store

import "strconv"

// SnapshotVersion is the on-disk schema version written into every
// store snapshot.
const SnapshotVersion = 1

// lessID orders string-encoded numeric ids numerically so listings are
// stable across runs.
func lessID(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr != nil || berr != nil {
		return a < b
	}
	return ai < bi
}

// nextIDFloor reconciles a restored allocator with the restored
// entities: the next id must be past every existing numeric id, even
// when the persisted allocator is missing or stale.
func nextIDFloor[T any](entities map[string]T, next int) int {
	if next < 1 {
		next = 1
	}
	for id := range entities {
		if n, err := strconv.Atoi(id); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}
