// Package timeouts defines shared timeout constants used across the blog
// processes so the values stay discoverable in one place.
package timeouts

import "time"

// StoreRequest is the default cap for a single table-store round-trip.
const StoreRequest = 10 * time.Second

// StorePing caps the startup and health-check probe of the table store.
const StorePing = 5 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
