package trie

// swapPair is an open transposition obligation recorded under TYPO/SWAP.
// fromSource is the query character that was skipped when the pair opened;
// fromTarget is the stored character that was advanced into instead. The
// pair resolves when a later step offers the stored character fromSource
// while the query is sitting on fromTarget — the classic "ab" vs "ba" swap.
type swapPair struct {
	fromSource byte
	fromTarget byte
}

// state is an immutable snapshot of one point in a fuzzy traversal. Nodes in
// this trie carry multi-byte edge labels, but the matching rules are defined
// one character at a time; state walks a node's label one byte per step via
// (edgeLabel, consumed) rather than jumping straight to the node, so every
// match/error/reset/gather rule applies exactly as specified regardless of
// how much compaction collapsed the edge it is currently crossing.
type state[V any] struct {
	node      *node[V] // node whose incoming edge is being crossed
	edgeLabel string   // label captured at the moment the edge was entered
	consumed  int      // bytes of edgeLabel already consumed; == len(edgeLabel) once "at" node

	sequence string // concatenated labels from root up to the consumed point

	searchIndex     int
	numberOfMatches int
	numberOfErrors  int
	predetermined   int // ANCHOR_TO_PREFIX's charge for the leading skip, fixed at first match

	startMatch int // -1 until the match window opens
	endMatch   int // -1 until the match window opens

	pendingSwaps []swapPair
	isGather     bool
}

func initialState[V any](root *node[V]) state[V] {
	return state[V]{node: root, startMatch: -1, endMatch: -1}
}

// atBoundary reports whether the cursor has consumed its whole edge label,
// i.e. has fully "arrived" at node and can expand into its real children.
func (s state[V]) atBoundary() bool {
	return s.consumed == len(s.edgeLabel)
}

// effectiveErrors is the quantity the acceptance predicate compares against
// tolerance: charged errors, plus every query character past searchIndex
// that was never attempted, plus any fixed charge from a prefix-anchored
// leading skip.
func (s state[V]) effectiveErrors(queryLen int) int {
	unmatched := queryLen - s.searchIndex
	if unmatched < 0 {
		panicInvariant("negative unmatched-character count: searchIndex advanced past queryLen")
	}
	return s.numberOfErrors + unmatched + s.predetermined
}

// matches is the acceptance predicate governing result emission.
func (s state[V]) matches(queryLen, tolerance int) bool {
	if s.startMatch < 0 || s.endMatch < 0 {
		return false
	}
	if s.numberOfMatches < queryLen-tolerance {
		return false
	}
	if s.effectiveErrors(queryLen) > tolerance {
		return false
	}
	return len(s.pendingSwaps) == 0
}

// candidate is one possible next byte along the path out of a state: either
// the next unconsumed byte of the current edge label, or the first byte of
// a real child's label once the current edge is fully consumed.
type candidate[V any] struct {
	ch        byte
	node      *node[V]
	edgeLabel string
	consumed  int
}

// nextCandidates returns the candidates reachable from s, applying the
// depth-pruning rule whenever it is crossing into a real child (pruning
// does not apply mid-label: that edge was already committed to when its
// first byte was crossed).
func nextCandidates[V any](s state[V], queryLen, tolerance int) []candidate[V] {
	if !s.atBoundary() {
		return []candidate[V]{{
			ch:        s.edgeLabel[s.consumed],
			node:      s.node,
			edgeLabel: s.edgeLabel,
			consumed:  s.consumed + 1,
		}}
	}

	need := queryLen - s.numberOfMatches - tolerance

	s.node.childMu.RLock()
	defer s.node.childMu.RUnlock()

	out := make([]candidate[V], 0, len(s.node.children))
	for _, c := range s.node.children {
		if len(c.label)+c.peekDepth() < need {
			continue
		}
		out = append(out, candidate[V]{ch: c.label[0], node: c, edgeLabel: c.label, consumed: 1})
	}
	return out
}

// expand produces every successor of s reachable by crossing cand, applying
// match, error, reset and gather transitions.
func (s state[V]) expand(cand candidate[V], query []byte, tolerance int, strategy Strategy) []state[V] {
	if s.isGather {
		return []state[V]{s.advanceGather(cand)}
	}

	var out []state[V]
	continued := false

	if s.searchIndex < len(query) {
		want := query[s.searchIndex]
		isMatch := cand.ch == want || (strategy == Wildcard && want == '*')
		if isMatch && matchPrecondition(strategy, s.numberOfMatches, s.numberOfErrors, s.sequence) {
			out = append(out, s.finalize(s.advanceMatch(cand, strategy), cand, query, tolerance)...)
			continued = true
		}
		if !continued {
			if errs := s.tryErrorStates(cand, query, tolerance, strategy); errs != nil {
				out = append(out, errs...)
				continued = true
			}
		}
	}

	if !continued && !s.matches(len(query), tolerance) {
		out = append(out, s.reset(cand))
	}

	// A brand-new match may begin at cand regardless of what s was doing
	// elsewhere: without this, a query substring starting partway through an
	// unrelated traversal would never be tried, since reset only repositions
	// the cursor without itself retesting cand against query[0].
	if s.searchIndex != 0 && len(query) > 0 {
		want := query[0]
		if cand.ch == want || (strategy == Wildcard && want == '*') {
			fresh := state[V]{node: s.node, edgeLabel: s.edgeLabel, consumed: s.consumed, sequence: s.sequence, startMatch: -1, endMatch: -1}
			if matchPrecondition(strategy, 0, 0, fresh.sequence) {
				out = append(out, fresh.finalize(fresh.advanceMatch(cand, strategy), cand, query, tolerance)...)
			}
		}
	}

	return out
}

// finalize checks whether newSt newly satisfies the acceptance predicate and,
// if so, transitions it into gather. Unless the match is already perfect, it
// also keeps newSt itself (still matching, so the rest of the query can
// extend the same window) and spawns a reset successor positioned at cand
// so a later, better window can still be found.
func (s state[V]) finalize(newSt state[V], cand candidate[V], query []byte, tolerance int) []state[V] {
	if newSt.matches(len(query), tolerance) {
		gathered := newSt
		gathered.isGather = true
		if newSt.numberOfMatches == len(query) {
			return []state[V]{gathered}
		}
		return []state[V]{gathered, newSt, s.reset(cand)}
	}
	return []state[V]{newSt}
}

func (s state[V]) cloneOnto(cand candidate[V]) state[V] {
	next := s
	next.node = cand.node
	next.edgeLabel = cand.edgeLabel
	next.consumed = cand.consumed
	next.sequence = s.sequence + string(cand.ch)
	next.pendingSwaps = append([]swapPair(nil), s.pendingSwaps...)
	return next
}

func (s state[V]) advanceMatch(cand candidate[V], strategy Strategy) state[V] {
	next := s.cloneOnto(cand)
	next.searchIndex = s.searchIndex + 1
	next.numberOfMatches = s.numberOfMatches + 1
	next.isGather = false
	if next.startMatch < 0 {
		next.startMatch = len(s.sequence)
		if strategy == AnchorToPrefix {
			next.predetermined = leadingSkipDistance(s.sequence)
		}
	}
	next.endMatch = len(next.sequence)
	return next
}

func (s state[V]) advanceGather(cand candidate[V]) state[V] {
	next := s.cloneOnto(cand)
	next.isGather = true
	return next
}

// reset starts over at cand with every counter zeroed.
func (s state[V]) reset(cand candidate[V]) state[V] {
	return state[V]{
		node:      cand.node,
		edgeLabel: cand.edgeLabel,
		consumed:  cand.consumed,
		sequence:  s.sequence + string(cand.ch),
		startMatch: -1,
		endMatch:   -1,
	}
}

// tryErrorStates attempts an error transition, returning nil if no error
// transition is eligible at all (distinct from an eligible
// transition that happens to produce zero accepted successors, which cannot
// occur here: every branch below appends at least one state).
func (s state[V]) tryErrorStates(cand candidate[V], query []byte, tolerance int, strategy Strategy) []state[V] {
	if s.searchIndex >= len(query) || s.numberOfErrors >= tolerance {
		return nil
	}
	wasMatchingBefore := s.numberOfMatches > 0
	if !errorPrecondition(strategy, wasMatchingBefore, s.numberOfMatches, s.searchIndex, len(query), tolerance, s.sequence) {
		return nil
	}

	queryChar := query[s.searchIndex]

	for i, p := range s.pendingSwaps {
		if p.fromSource == cand.ch && p.fromTarget == queryChar {
			resolved := s.cloneOnto(cand)
			resolved.searchIndex = s.searchIndex + 1
			resolved.numberOfMatches = s.numberOfMatches + 1
			resolved.isGather = false
			resolved.pendingSwaps = removeSwap(s.pendingSwaps, i)
			if resolved.startMatch < 0 {
				resolved.startMatch = len(s.sequence)
			}
			resolved.endMatch = len(resolved.sequence)
			return s.finalize(resolved, cand, query, tolerance)
		}
	}

	if strategy == Typo && len(s.pendingSwaps) > 0 {
		return nil
	}

	var out []state[V]
	switch strategy {
	case Typo, Swap:
		sub := s.cloneOnto(cand)
		sub.searchIndex = s.searchIndex + 1
		sub.numberOfErrors = s.numberOfErrors + 1
		sub.pendingSwaps = append(sub.pendingSwaps, swapPair{fromSource: queryChar, fromTarget: cand.ch})
		out = append(out, s.finalize(sub, cand, query, tolerance)...)
	default:
		misspelling := s.cloneOnto(cand)
		misspelling.searchIndex = s.searchIndex + 1
		misspelling.numberOfErrors = s.numberOfErrors + 1
		out = append(out, s.finalize(misspelling, cand, query, tolerance)...)

		missingInData := s
		missingInData.pendingSwaps = append([]swapPair(nil), s.pendingSwaps...)
		missingInData.searchIndex = s.searchIndex + 1
		missingInData.numberOfErrors = s.numberOfErrors + 1
		out = append(out, s.finalize(missingInData, cand, query, tolerance)...)

		missingInQuery := s.cloneOnto(cand)
		missingInQuery.numberOfErrors = s.numberOfErrors + 1
		out = append(out, s.finalize(missingInQuery, cand, query, tolerance)...)
	}
	return out
}

func removeSwap(swaps []swapPair, idx int) []swapPair {
	out := make([]swapPair, 0, len(swaps)-1)
	out = append(out, swaps[:idx]...)
	out = append(out, swaps[idx+1:]...)
	return out
}
