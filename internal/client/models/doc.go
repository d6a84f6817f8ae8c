// Package models defines the records the client keeps in its local
// collections, the static resource catalog entry, and the user and token
// shapes exchanged with the auth service.
package models
