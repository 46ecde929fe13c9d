// Package trie implements a compacted, thread-safe radix tree mapping
// string keys to a generic payload. It is the storage half of a fuzzy
// substring search engine; the traversal that walks it (driver.go,
// state.go, strategy.go) lives in this package too.
package trie

import (
	"fmt"
	"iter"
	"strings"
)

// Store owns the root of a compacted radix tree and enforces its
// invariants (radix uniqueness, maximal compaction, label non-emptiness,
// depth correctness, back-link consistency) across concurrent callers.
//
// Every node's children slice is guarded by that node's own RWMutex;
// every node's value/depth pair is guarded by a second, separate mutex on
// the same node. Structural changes that touch a parent/child edge always
// acquire the parent's lock before the child's, so two goroutines racing
// to restructure overlapping subtrees can never deadlock. Searches take a
// node's children lock only long enough to copy its child list, so a
// concurrent mutation is never blocked behind a long-running traversal,
// and a traversal may observe a tree that changed underneath it between
// levels — acceptable because the only legal concurrent change leaves
// every invariant intact between any two public operations.
type Store[V any] struct {
	root *node[V]
}

// New returns an empty Store.
func New[V any]() *Store[V] {
	return &Store[V]{root: newNode[V]("")}
}

// Put inserts or overwrites key with value, returning the previous value
// (if any). key must be non-empty.
func (s *Store[V]) Put(key string, value V) (prev V, hadPrev bool, err error) {
	if key == "" {
		return prev, false, fmt.Errorf("%w: empty key", ErrInvalidArgument)
	}
	if strings.ContainsRune(key, '*') {
		return prev, false, fmt.Errorf("%w: wildcard character in stored key", ErrInvalidArgument)
	}

	cur := s.root
	rest := key
	for {
		cur.childMu.Lock()
		idx, child := cur.findChild(rest[0])

		if child == nil {
			leaf := newNode[V](rest)
			leaf.parent = cur
			leaf.setValue(value)
			cur.insertChildLocked(idx, leaf)
			cur.childMu.Unlock()
			s.fixDepth(cur)
			return prev, false, nil
		}

		p := lcp(rest, child.label)

		switch {
		case p == len(child.label):
			// child's label fully consumed: descend and keep matching.
			cur.childMu.Unlock()
			cur = child
			rest = rest[p:]
			if rest == "" {
				prev, hadPrev = cur.setValue(value)
				return prev, hadPrev, nil
			}

		case p == len(rest):
			// rest is a proper prefix of child's label: split child in two,
			// the new intermediate node carries the value.
			mid := newNode[V](rest)
			mid.parent = cur

			child.childMu.Lock()
			child.label = child.label[p:]
			child.parent = mid
			child.childMu.Unlock()

			mid.children = []*node[V]{child}
			mid.setValue(value)

			cur.children[idx] = mid
			cur.childMu.Unlock()
			s.fixDepth(mid)
			return prev, false, nil

		default:
			// common prefix strictly shorter than both: split into a
			// valueless middle node with two children, the old child
			// (shortened) and a fresh sibling for the new suffix.
			common := rest[:p]
			newSuffix := rest[p:]

			mid := newNode[V](common)
			mid.parent = cur

			child.childMu.Lock()
			child.label = child.label[p:]
			child.parent = mid
			child.childMu.Unlock()

			leaf := newNode[V](newSuffix)
			leaf.parent = mid
			leaf.setValue(value)

			if leaf.label[0] < child.label[0] {
				mid.children = []*node[V]{leaf, child}
			} else {
				mid.children = []*node[V]{child, leaf}
			}

			cur.children[idx] = mid
			cur.childMu.Unlock()
			s.fixDepth(mid)
			return prev, false, nil
		}
	}
}

// Get returns the value stored at key, or ErrNotFound if key was never put
// (or was subsequently removed).
func (s *Store[V]) Get(key string) (V, error) {
	var zero V
	if key == "" {
		return zero, fmt.Errorf("%w: empty key", ErrInvalidArgument)
	}

	n, ok := s.descend(key)
	if !ok {
		return zero, ErrNotFound
	}

	n.fieldMu.Lock()
	v, had := n.value, n.hasValue
	n.fieldMu.Unlock()
	if !had {
		return zero, ErrNotFound
	}
	return v, nil
}

// descend walks from the root matching successive prefixes of key against
// child labels, returning the node at which key is fully consumed. It
// returns ok=false if key cannot be exactly traced through the tree.
func (s *Store[V]) descend(key string) (*node[V], bool) {
	cur := s.root
	rest := key
	for rest != "" {
		cur.childMu.RLock()
		_, child := cur.findChild(rest[0])
		if child == nil {
			cur.childMu.RUnlock()
			return nil, false
		}
		p := lcp(rest, child.label)
		if p != len(child.label) {
			cur.childMu.RUnlock()
			return nil, false
		}
		cur.childMu.RUnlock()
		cur = child
		rest = rest[p:]
	}
	return cur, true
}

// Remove deletes key, returning its value, or ErrNotFound if key is absent.
// Removal demotes the terminal node and then compacts upward: a childless
// non-terminal node is unlinked, and a non-terminal node with exactly one
// child is fused with it, so the maximal-compaction invariant keeps
// holding after the call returns.
func (s *Store[V]) Remove(key string) (V, error) {
	var zero V
	if key == "" {
		return zero, fmt.Errorf("%w: empty key", ErrInvalidArgument)
	}

	path := make([]*node[V], 0, len(key)+1)
	path = append(path, s.root)
	cur := s.root
	rest := key
	for rest != "" {
		cur.childMu.RLock()
		_, child := cur.findChild(rest[0])
		if child == nil {
			cur.childMu.RUnlock()
			return zero, ErrNotFound
		}
		p := lcp(rest, child.label)
		if p != len(child.label) {
			cur.childMu.RUnlock()
			return zero, ErrNotFound
		}
		cur.childMu.RUnlock()
		cur = child
		rest = rest[p:]
		path = append(path, cur)
	}

	if cur == s.root {
		return zero, ErrNotFound
	}

	prev, had := cur.clearValue()
	if !had {
		return zero, ErrNotFound
	}

	var lowestModified *node[V]
	i := len(path) - 1
	for i > 0 {
		n := path[i]
		parent := path[i-1]

		if n.completes() {
			break
		}

		parent.childMu.Lock()
		idx, found := parent.findChild(n.label[0])
		if found != n {
			// concurrent mutation already changed this edge; nothing left to compact.
			parent.childMu.Unlock()
			break
		}

		n.childMu.Lock()
		switch len(n.children) {
		case 0:
			n.childMu.Unlock()
			parent.removeChildLocked(idx)
			parent.childMu.Unlock()
			if lowestModified == nil {
				lowestModified = parent
			}
			i--
			continue

		case 1:
			only := n.children[0]
			only.childMu.Lock()
			only.label = n.label + only.label
			only.parent = parent
			only.childMu.Unlock()
			n.childMu.Unlock()

			parent.children[idx] = only
			parent.childMu.Unlock()
			if lowestModified == nil {
				lowestModified = parent
			}

		default:
			n.childMu.Unlock()
			parent.childMu.Unlock()
		}
		break
	}

	if lowestModified != nil {
		s.fixDepth(lowestModified)
	}
	return prev, nil
}

// fixDepth recomputes n's cached subtree depth from its current children,
// then repeats for each ancestor, stopping as soon as a node's depth is
// unchanged (its contribution to its own parent's depth is then also
// unchanged, so propagation can stop there).
func (s *Store[V]) fixDepth(n *node[V]) {
	for n != nil {
		n.childMu.RLock()
		max := 0
		for _, c := range n.children {
			d := len(c.label) + c.peekDepth()
			if d > max {
				max = d
			}
		}
		n.childMu.RUnlock()

		if !n.setDepth(max) {
			return
		}
		n = n.parent
	}
}

// Keys returns every stored key, in no particular order. It is a thin
// convenience wrapper over PrefixScan with an empty prefix.
func (s *Store[V]) Keys() []string {
	keys := make([]string, 0)
	for k := range s.PrefixScan("") {
		keys = append(keys, k)
	}
	return keys
}

// PrefixScan returns a lazy sequence of (key, value) pairs for every
// terminal node reachable below prefix. If prefix ends mid-label, the
// partial match is accepted only when the consumed portion of that edge
// equals prefix.
func (s *Store[V]) PrefixScan(prefix string) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		start, consumed, ok := s.prefixNode(prefix)
		if !ok {
			return
		}
		walk(start, consumed, yield)
	}
}

// prefixNode descends toward prefix, returning the first node whose
// accumulated label reaches or passes it, along with the key string
// accumulated up to (and including) that node.
func (s *Store[V]) prefixNode(prefix string) (*node[V], string, bool) {
	cur := s.root
	acc := ""
	rest := prefix
	for rest != "" {
		cur.childMu.RLock()
		_, child := cur.findChild(rest[0])
		if child == nil {
			cur.childMu.RUnlock()
			return nil, "", false
		}
		p := lcp(rest, child.label)
		switch {
		case p == len(rest):
			// prefix ends inside (or exactly at the end of) this edge.
			cur.childMu.RUnlock()
			return child, acc + child.label, true
		case p == len(child.label):
			acc += child.label
			rest = rest[p:]
			cur.childMu.RUnlock()
			cur = child
		default:
			cur.childMu.RUnlock()
			return nil, "", false
		}
	}
	return cur, acc, true
}

func walk[V any](n *node[V], prefix string, yield func(string, V) bool) bool {
	n.fieldMu.Lock()
	v, had := n.value, n.hasValue
	n.fieldMu.Unlock()
	if had {
		if !yield(prefix, v) {
			return false
		}
	}
	for _, c := range n.snapshotChildren() {
		if !walk(c, prefix+c.label, yield) {
			return false
		}
	}
	return true
}

// Size returns the number of terminal (value-bearing) nodes currently stored.
// It is O(number of keys); callers on a hot path should prefer their own
// bookkeeping if this is called often.
func (s *Store[V]) Size() int {
	n := 0
	for range s.PrefixScan("") {
		n++
	}
	return n
}
