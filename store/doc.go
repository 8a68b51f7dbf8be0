// Package store houses concrete implementations of the core.SnapshotStore.
// The interface itself lives in the core package to centralize domain
// contracts. The in-memory store here suits tests and ephemeral demos;
// durable backends (JSON file, BoltDB) live in sub-packages so only the
// wiring layer decides which implementation to instantiate.
package store
