// Package cli provides the interactive PantryKeeper command-line client.
//
// It wires configuration, the local database, the auth client and the pantry
// services into a REPL. Typical flow: restore or create a session, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout / WhoAmI against the auth service
//   - Food logs, inventory and images kept in the local database
//   - Dashboard with recent activity and recommendations
//   - Resource catalog browsing with filters
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
