// Package slots is the client's named-slot persistence port: a flat
// key/value space in which every slot holds one opaque value (a token string
// or a JSON-serialised collection).
//
// Two adapters are provided. SQLiteRepository is file-backed and survives
// restarts; it serialises Update across processes by running each
// read-modify-write in one immediate transaction, so the database must be
// opened with _txlock=immediate (see client.InitDatabase). MemoryRepository
// keeps everything in a map and is meant for tests and throwaway sessions.
//
// Get returns (nil, nil) for an absent slot; absence is never an error.
package slots
