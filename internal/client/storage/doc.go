// Package storage is the client's durable key/value store: the Go stand-in
// for the browser's localStorage. Values are opaque byte strings keyed by
// name and kept in a local SQLite database whose schema is applied with
// embedded goose migrations.
//
// Reads of a missing key return (nil, nil). Apply runs a batch of writes and
// deletes in one transaction so callers can set or clear related keys
// together.
package storage
