package wordutil

import "testing"

func TestIsSeparator(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{' ', true},
		{'\t', true},
		{',', true},
		{'.', true},
		{'a', false},
		{'Z', false},
		{'9', false},
	}
	for _, c := range cases {
		if got := IsSeparator(c.r); got != c.want {
			t.Errorf("IsSeparator(%q) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestLastSeparatorBefore(t *testing.T) {
	seq := "the quick brown fox"
	// index of 'b' in "brown" is 10; the space before it is at index 9.
	if got := LastSeparatorBefore(seq, 10); got != 9 {
		t.Errorf("LastSeparatorBefore(seq, 10) = %d, want 9", got)
	}
	if got := LastSeparatorBefore(seq, 3); got != -1 {
		t.Errorf("LastSeparatorBefore(seq, 3) = %d, want -1", got)
	}
}

func TestFirstSeparatorFrom(t *testing.T) {
	seq := "the quick brown fox"
	if got := FirstSeparatorFrom(seq, 0); got != 3 {
		t.Errorf("FirstSeparatorFrom(seq, 0) = %d, want 3", got)
	}
	if got := FirstSeparatorFrom(seq, 16); got != -1 {
		t.Errorf("FirstSeparatorFrom(seq, 16) = %d, want -1", got)
	}
}

func TestWordExtendsToSeparators(t *testing.T) {
	seq := "the quick brown fox"
	// "brown" occupies [10, 15).
	if got := Word(seq, 10, 15); got != "brown" {
		t.Errorf("Word(seq, 10, 15) = %q, want %q", got, "brown")
	}
	// a match fully inside "brown" still extends to the whole word.
	if got := Word(seq, 11, 13); got != "brown" {
		t.Errorf("Word(seq, 11, 13) = %q, want %q", got, "brown")
	}
	// the first word extends to the start of the sequence, not a separator.
	if got := Word(seq, 1, 3); got != "the" {
		t.Errorf("Word(seq, 1, 3) = %q, want %q", got, "the")
	}
	// the last word extends to the end of the sequence, not a separator.
	if got := Word(seq, 17, 19); got != "fox" {
		t.Errorf("Word(seq, 17, 19) = %q, want %q", got, "fox")
	}
}
