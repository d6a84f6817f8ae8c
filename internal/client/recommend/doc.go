// Package recommend selects catalog resources relevant to what the user has
// been logging. Everything here is pure: same inputs, same output, no I/O.
package recommend
