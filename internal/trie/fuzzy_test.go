package trie

import (
	"sort"
	"testing"
)

// collect drains a fuzzy/substring result sequence into a slice for
// assertions; result ordering carries no contract.
func collect[V any](seq func(func(Result[V]) bool)) []Result[V] {
	var out []Result[V]
	for r := range seq {
		out = append(out, r)
	}
	return out
}

func bySequence[V any](results []Result[V]) map[string]Result[V] {
	m := make(map[string]Result[V], len(results))
	for _, r := range results {
		m[r.Sequence] = r
	}
	return m
}

func TestFuzzyLiberalToleratesOneSubstitution(t *testing.T) {
	s := New[int]()
	s.Put("google", 1)
	s.Put("googly", 2)

	seq, err := s.MatchBySubstringFuzzy("googly", 1, Liberal)
	if err != nil {
		t.Fatalf("MatchBySubstringFuzzy err = %v", err)
	}
	got := bySequence(collect(seq))

	googly, ok := got["googly"]
	if !ok {
		t.Fatalf("expected a result for %q, got %v", "googly", got)
	}
	if googly.NumberOfErrors != 0 {
		t.Errorf("googly NumberOfErrors = %d, want 0", googly.NumberOfErrors)
	}

	google, ok := got["google"]
	if !ok {
		t.Fatalf("expected a result for %q, got %v", "google", got)
	}
	if google.NumberOfErrors != 1 {
		t.Errorf("google NumberOfErrors = %d, want 1", google.NumberOfErrors)
	}
}

func TestFuzzyMatchPrefixRequiresWordStart(t *testing.T) {
	s := New[int]()
	s.Put("the quick brown fox", 1)

	seq, err := s.MatchBySubstringFuzzy("brown", 0, MatchPrefix)
	if err != nil {
		t.Fatalf("MatchBySubstringFuzzy err = %v", err)
	}
	results := collect(seq)
	if len(results) != 1 {
		t.Fatalf("MatchBySubstringFuzzy(brown) = %d results, want 1", len(results))
	}
	if results[0].MatchedWord != "brown" {
		t.Errorf("MatchedWord = %q, want %q", results[0].MatchedWord, "brown")
	}
	if !results[0].MatchedWholeWord {
		t.Errorf("MatchedWholeWord = false, want true")
	}

	seq2, err := s.MatchBySubstringFuzzy("rown", 0, MatchPrefix)
	if err != nil {
		t.Fatalf("MatchBySubstringFuzzy err = %v", err)
	}
	if results2 := collect(seq2); len(results2) != 0 {
		t.Errorf("MatchBySubstringFuzzy(rown) = %d results, want 0: %v", len(results2), results2)
	}
}

func TestFuzzyLiberalToleratesOneMisspelling(t *testing.T) {
	s := New[int]()
	s.Put("indestructible", 1)

	seq, err := s.MatchBySubstringFuzzy("indestructable", 1, Liberal)
	if err != nil {
		t.Fatalf("MatchBySubstringFuzzy err = %v", err)
	}
	got := bySequence(collect(seq))

	r, ok := got["indestructible"]
	if !ok {
		t.Fatalf("expected a result for %q, got %v", "indestructible", got)
	}
	if r.NumberOfErrors != 1 {
		t.Errorf("NumberOfErrors = %d, want 1", r.NumberOfErrors)
	}
}

func TestFuzzyTypoResolvesAdjacentSwap(t *testing.T) {
	s := New[int]()
	s.Put("abcdef", 1)

	seq, err := s.MatchBySubstringFuzzy("acbdef", 2, Typo)
	if err != nil {
		t.Fatalf("MatchBySubstringFuzzy err = %v", err)
	}
	got := bySequence(collect(seq))
	if _, ok := got["abcdef"]; !ok {
		t.Fatalf("expected a result for %q under TYPO tolerance 2, got %v", "abcdef", got)
	}
}

func TestFuzzyWildcardMatchesSingleCharacter(t *testing.T) {
	s := New[int]()
	s.Put("cat", 1)

	seq, err := s.MatchBySubstringFuzzy("c*t", 0, Wildcard)
	if err != nil {
		t.Fatalf("MatchBySubstringFuzzy err = %v", err)
	}
	if results := collect(seq); len(results) != 1 {
		t.Fatalf("MatchBySubstringFuzzy(c*t) = %d results, want 1: %v", len(results), results)
	}

	seq2, err := s.MatchBySubstringFuzzy("c*z", 0, Wildcard)
	if err != nil {
		t.Fatalf("MatchBySubstringFuzzy err = %v", err)
	}
	if results := collect(seq2); len(results) != 0 {
		t.Errorf("MatchBySubstringFuzzy(c*z) = %d results, want 0: %v", len(results), results)
	}
}

func TestMatchBySubstringIsExact(t *testing.T) {
	s := New[int]()
	s.Put("banana", 1)
	s.Put("bandana", 2)

	seq, err := s.MatchBySubstring("ana")
	if err != nil {
		t.Fatalf("MatchBySubstring err = %v", err)
	}
	got := bySequence(collect(seq))
	for _, want := range []string{"banana", "bandana"} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected %q among MatchBySubstring(ana) results, got %v", want, got)
		}
	}
}

func TestFuzzyRejectsEmptyQuery(t *testing.T) {
	s := New[int]()
	s.Put("cat", 1)
	if _, err := s.MatchBySubstringFuzzy("", 0, Liberal); err == nil {
		t.Fatalf("MatchBySubstringFuzzy(\"\") err = nil, want ErrInvalidArgument")
	}
}

func TestFuzzyRejectsNegativeTolerance(t *testing.T) {
	s := New[int]()
	s.Put("cat", 1)
	if _, err := s.MatchBySubstringFuzzy("cat", -1, Liberal); err == nil {
		t.Fatalf("MatchBySubstringFuzzy(tolerance=-1) err = nil, want ErrInvalidArgument")
	}
}

// TestFuzzyAcceptanceMonotonicity checks that increasing tolerance never
// drops a previously returned result (strategy held fixed).
func TestFuzzyAcceptanceMonotonicity(t *testing.T) {
	s := New[int]()
	words := []string{"kitten", "sitting", "mitten", "bitten", "smitten"}
	for i, w := range words {
		s.Put(w, i)
	}

	prevSeq, err := s.MatchBySubstringFuzzy("kitten", 1, Liberal)
	if err != nil {
		t.Fatalf("tolerance 1: %v", err)
	}
	prev := resultSet(collect(prevSeq))

	nextSeq, err := s.MatchBySubstringFuzzy("kitten", 2, Liberal)
	if err != nil {
		t.Fatalf("tolerance 2: %v", err)
	}
	next := resultSet(collect(nextSeq))

	for k := range prev {
		if !next[k] {
			t.Errorf("tolerance 2 dropped %q present at tolerance 1", k)
		}
	}
}

func resultSet[V any](results []Result[V]) map[string]bool {
	m := make(map[string]bool, len(results))
	for _, r := range results {
		m[r.Sequence] = true
	}
	return m
}

func TestFuzzyDeduplicatesResults(t *testing.T) {
	s := New[int]()
	s.Put("banana", 1)

	seq, err := s.MatchBySubstringFuzzy("ana", 0, Liberal)
	if err != nil {
		t.Fatalf("MatchBySubstringFuzzy err = %v", err)
	}
	var count int
	for range seq {
		count++
	}
	// "ana" occurs at [1,4) and [3,6): one result per matched window.
	if count != 2 {
		t.Errorf("MatchBySubstringFuzzy(ana) on %q = %d results, want 2 (one per window, deduplicated)", "banana", count)
	}
}

func TestFuzzySortedKeysUnaffectedByTraversalOrder(t *testing.T) {
	s := New[int]()
	for i, w := range []string{"ant", "anthem", "anthill", "antenna"} {
		s.Put(w, i)
	}
	got := s.Keys()
	sort.Strings(got)
	want := []string{"ant", "antenna", "anthem", "anthill"}
	if !equalStrings(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
}
