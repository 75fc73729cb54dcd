// Package logging provides structured logging for kantorku.
//
// It wraps log/slog with configuration-driven level and format selection
// and default service attributes. Credential material (plaintext
// passwords, password hashes, signed tokens) must never be passed to a
// logger; callers log emails and operation names only.
package logging
