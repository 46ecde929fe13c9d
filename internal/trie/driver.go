package trie

import (
	"container/list"
	"fmt"
	"iter"
)

// dedupKey identifies a state for deduplication purposes: the same terminal
// can be reached via more than one path through match/error/reset/gather
// transitions, and each must be reported at most once.
type dedupKey[V any] struct {
	node       *node[V]
	sequence   string
	startMatch int
	endMatch   int
}

// MatchBySubstring is fuzzy search with zero tolerance under the Liberal
// strategy: exact substring hits anywhere in any stored sequence.
func (s *Store[V]) MatchBySubstring(query string) (iter.Seq[Result[V]], error) {
	return s.MatchBySubstringFuzzy(query, 0, Liberal)
}

// MatchBySubstringFuzzy drives the fuzzy traversal: a worklist of
// states seeded at the root, expanded one candidate at a time, emitting a
// result whenever a popped state is both accepting and terminal, and
// deduplicating so the same terminal is never reported twice for the same
// matched window.
func (s *Store[V]) MatchBySubstringFuzzy(query string, tolerance int, strategy Strategy) (iter.Seq[Result[V]], error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidArgument)
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("%w: negative tolerance", ErrInvalidArgument)
	}

	q := []byte(query)

	return func(yield func(Result[V]) bool) {
		seen := make(map[dedupKey[V]]struct{})
		worklist := list.New()
		worklist.PushBack(initialState(s.root))

		for worklist.Len() > 0 {
			front := worklist.Remove(worklist.Front()).(state[V])

			if front.atBoundary() && front.node.completes() && front.matches(len(q), tolerance) {
				key := dedupKey[V]{front.node, front.sequence, front.startMatch, front.endMatch}
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					if !yield(buildResult(front, q)) {
						return
					}
				}
			}

			for _, cand := range nextCandidates(front, len(q), tolerance) {
				for _, succ := range front.expand(cand, q, tolerance, strategy) {
					worklist.PushBack(succ)
				}
			}
		}
	}, nil
}
