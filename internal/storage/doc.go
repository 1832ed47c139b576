// Package storage defines the table-store contract the post repository
// persists through. Drivers live in subpackages: postgrest (the hosted REST
// backend), postgres (direct pgx connection) and sqlite (local development).
// The open subpackage picks one from configuration.
//
// Every operation is one independent round-trip. Drivers never retry, cache,
// or span a transaction across calls.
//
// # Error Types
//
//   - ErrUnauthorized: the store rejected the configured credentials.
//
// Drivers report a missing row through the bool result of SelectByID and
// Update rather than an error.
package storage
