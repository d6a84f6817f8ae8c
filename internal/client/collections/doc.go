// Package collections emulates server-side CRUD collections on top of the
// local slot storage. Each collection is one slot holding a JSON array of
// records; every write is a single read-modify-write of that slot.
package collections
