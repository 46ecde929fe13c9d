// Command triedemo builds a Store from a corpus file and runs one sample
// fuzzy search against it, printing up to 10 results. It is a one-shot
// demo/bench program, not an interactive REPL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"triefuzz/config"
	"triefuzz/internal/bulkload"
	"triefuzz/internal/corpus"
	"triefuzz/internal/metrics"
	"triefuzz/internal/trie"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	log.Info("starting triedemo", "corpus", cfg.Corpus, "tolerance", cfg.Tolerance, "strategy", cfg.Strategy)

	f, err := os.Open(cfg.Corpus)
	if err != nil {
		log.Error("failed to open corpus", "path", cfg.Corpus, "error", err.Error())
		os.Exit(1)
	}
	defer f.Close()

	entries, err := corpus.Entries(f, cfg.Stem)
	if err != nil {
		log.Error("failed to read corpus", "error", err.Error())
		os.Exit(1)
	}

	store := trie.New[int]()
	m := &metrics.Metrics{}

	start := time.Now()
	bulkload.Load(context.Background(), store, entries, runtime.NumCPU(), m, log)
	log.Info("corpus loaded", "words", len(entries), "elapsed", time.Since(start))
	m.Log(log)

	strategy, err := parseStrategy(cfg.Strategy)
	if err != nil {
		log.Error("invalid strategy", "strategy", cfg.Strategy, "error", err.Error())
		os.Exit(1)
	}

	stats := store.Stats()
	log.Info("store shape", "nodes", stats.Nodes, "leaves", stats.Leaves, "max_depth", stats.MaxDepth)

	runSample(store, cfg.Tolerance, strategy, log)
}

func runSample[V any](store *trie.Store[V], tolerance int, strategy trie.Strategy, log *slog.Logger) {
	if store.Size() == 0 {
		log.Warn("empty corpus, nothing to search")
		return
	}

	sample := firstKey(store)
	if sample == "" {
		return
	}

	results, err := store.MatchBySubstringFuzzy(sample, tolerance, strategy)
	if err != nil {
		log.Error("search failed", "query", sample, "error", err.Error())
		return
	}

	n := 0
	for r := range results {
		fmt.Printf("%-20s matches=%d errors=%d word=%q\n", r.Sequence, r.NumberOfMatches, r.NumberOfErrors, r.MatchedWord)
		n++
		if n >= 10 {
			break
		}
	}
	log.Info("sample search complete", "query", sample, "results_shown", n)
}

func firstKey[V any](store *trie.Store[V]) string {
	for k := range store.PrefixScan("") {
		return k
	}
	return ""
}

func parseStrategy(name string) (trie.Strategy, error) {
	switch name {
	case "LIBERAL":
		return trie.Liberal, nil
	case "MATCH_PREFIX":
		return trie.MatchPrefix, nil
	case "ANCHOR_TO_PREFIX", "FUZZY_PREFIX":
		return trie.AnchorToPrefix, nil
	case "FUZZY_POSTFIX":
		return trie.FuzzyPostfix, nil
	case "TYPO":
		return trie.Typo, nil
	case "SWAP":
		return trie.Swap, nil
	case "WILDCARD":
		return trie.Wildcard, nil
	default:
		return trie.Liberal, fmt.Errorf("unknown strategy %q", name)
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envLocal:
		fallthrough
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
