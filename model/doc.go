// Package model defines the completion backend boundary. The store builds
// the exact projection a backend receives (prior messages plus the newest
// message as the prompt) and appends the returned reply; retry and rate-limit
// behavior belong to the backend or its caller, never to the store.
//
// Concrete backends (OpenAI, Anthropic) live in sub-packages so the core
// never links a vendor SDK it does not use.
package model
