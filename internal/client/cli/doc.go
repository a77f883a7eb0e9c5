// Package cli provides the interactive CameYa command-line client.
//
// It wires configuration, the session database, API services, and the route
// gate into a REPL. Pages are route paths: every command may move the user
// to another path, and the gate decides whether the path may be shown or
// where to go instead.
//
// Key features:
//   - Register, verify email, Login / Logout
//   - Onboarding forms for students and employers
//   - Job feed with paging
//   - Return to the interrupted page after logging in
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
