// Package corpus reads a newline-delimited word list into bulkload entries
// for a trie.Store, optionally stemming each word first, the same preprocessing step other
// indexing pipelines in this codebase run before inserting a token, minus
// any document-posting bookkeeping since this Store's payload is
// caller-defined rather than a fixed document-ID map.
package corpus

import (
	"bufio"
	"io"
	"strings"

	snowballeng "github.com/kljensen/snowball/english"

	"triefuzz/internal/bulkload"
)

// Entries reads one word per line from r, skipping blank lines, and returns
// a bulkload.Entry per word whose value is the word's 1-based line number in
// the file (blank lines still count toward it) — seeded this way so a demo/test can Put a large corpus and
// still tell entries apart without requiring the caller to carry a separate
// payload type.
func Entries(r io.Reader, stem bool) ([]bulkload.Entry[int], error) {
	scanner := bufio.NewScanner(r)
	var entries []bulkload.Entry[int]
	line := 0
	for scanner.Scan() {
		line++
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if stem {
			word = snowballeng.Stem(word, false)
		}
		entries = append(entries, bulkload.Entry[int]{Op: bulkload.OpPut, Key: word, Value: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
