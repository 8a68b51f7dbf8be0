// Package core provides the foundational domain types and interfaces of the
// conversation store. It defines the core abstractions for:
//
//   - Events (the immutable records a conversation is made of)
//   - Conversations (aggregates: an identity plus an append-only event history)
//   - Projections (title and message views derived by folding the history)
//   - Pluggable snapshot stores for durable persistence
//   - The notification boundary towards an external UI layer
//
// The package intentionally keeps implementation concerns (file formats,
// completion backends, registry locking) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
