package trie

import "errors"

// Sentinel errors returned across the public Store API. Wrap with fmt.Errorf("%w: ...", ...)
// to add context, the way leveldb.ErrNotFound is propagated in comparable storage layers.
var (
	// ErrInvalidArgument is returned for empty keys/queries, a negative tolerance,
	// a wildcard character inside a stored key, or any other malformed argument.
	ErrInvalidArgument = errors.New("trie: invalid argument")

	// ErrNotFound is returned by Get and Remove when the exact key is absent.
	// Searches never return ErrNotFound; they return an empty sequence instead.
	ErrNotFound = errors.New("trie: not found")
)

// InvariantViolation marks a broken internal consistency assumption (a negative
// unmatched-character count, a back-link that disagrees with its parent, ...).
// It is a programmer error, never expected in correct code, and is never
// returned: code that detects one panics with it rather than trying to recover.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return "trie: invariant violation: " + e.Msg
}

func panicInvariant(msg string) {
	panic(&InvariantViolation{Msg: msg})
}
