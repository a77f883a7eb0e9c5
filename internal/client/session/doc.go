// Package session owns the client's notion of who is logged in.
//
// Session is the canonical user record. Normalize turns any of the payload
// shapes the backend has produced over time (login, registration, profile
// completion, older locally stored formats) into a Session by resolving each
// logical field from an ordered list of known aliases and passing every
// unrecognized field through untouched.
//
// Store keeps the live Session and bearer token, persists them to a
// storage.Repository under fixed keys, restores them at start-up, and
// notifies subscribers on every change. Consumers read immutable State
// snapshots and its projections rather than the Session itself.
package session
