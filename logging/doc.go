// Package logging houses the minimal Logger interface consumed across the
// module plus slog-backed and no-op implementations.
package logging
