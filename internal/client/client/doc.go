// Package client contains the client-side transport to the PantryKeeper auth
// service and the local database bootstrap.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Ping,
//     Register, Login, Logout and CurrentUser.
//  2. An HTTP/JSON implementation (see HTTPClient) that attaches the stored
//     access token as a bearer header and, when the service answers 401,
//     renews the session once through /auth/refresh and replays the request.
//     Concurrent 401s share a single renewal.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite file holding the session and collection slots and applies the
//     embedded goose migrations.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrSessionExpired, ErrAuthFailure. Any other
// non-2xx answer is returned as *APIError carrying the status and the
// service's "detail" message.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call honors ctx; a renewal
// already in flight keeps running when one of its waiters is cancelled.
package client
