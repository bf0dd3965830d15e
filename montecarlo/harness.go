package montecarlo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/netgraph/netgraph/failure"
	"github.com/netgraph/netgraph/netnodel"
	"github.com/netgraph/netgraph/seed"
)

// AnalysisFunc runs one Monte Carlo iteration's analysis under the given
// excluded node and link identifiers, as returned by failure.Apply (empty
// for the baseline), and returns an opaque, caller-defined result.
type AnalysisFunc func(excluded []string) (interface{}, error)

// IterationResult is one distinguished (baseline) or deduplicated
// (pattern) outcome of a Run.
type IterationResult struct {
	PatternHash     string
	Excluded        []string
	OccurrenceCount int
	Result          interface{}
	Err             error
}

// Summary is the full output of a Run: the baseline iteration plus every
// unique failure pattern encountered, each carrying its occurrence count.
type Summary struct {
	Baseline IterationResult
	Patterns []IterationResult
}

// Run evaluates policy against nodes/links/riskGroups for iterations
// rounds, invoking f once per unique exclusion pattern (spec §4.8). A
// baseline iteration with empty exclusions runs first and unconditionally;
// its failure aborts the run. A policy-evaluation failure on any later
// iteration also aborts the run (policy misconfiguration affects every
// iteration identically); a failure returned by f itself is captured on
// that pattern's IterationResult.Err instead, since it reflects the
// specific scenario, not the harness configuration.
func Run(nodes []*netnodel.Node, links []*netnodel.Link, riskGroups map[string]*netnodel.RiskGroup, policy failure.Policy, f AnalysisFunc, iterations int, masterSeed uint64, opts ...Option) (Summary, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	baselineResult, err := f(nil)
	if err != nil {
		return Summary{}, fmt.Errorf("montecarlo: baseline iteration failed: %w", err)
	}
	if cfg.Verbose && cfg.Trace != nil {
		fmt.Fprintf(cfg.Trace, "montecarlo: baseline iteration complete\n")
	}
	baseline := IterationResult{OccurrenceCount: 1, Result: baselineResult}

	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	var (
		mu       sync.Mutex
		patterns = make(map[string]*IterationResult)
		fatalErr error
	)

	indices := make(chan int, iterations)
	for i := 0; i < iterations; i++ {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for w := 0; w < parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				mu.Lock()
				abort := fatalErr != nil
				mu.Unlock()
				if abort {
					continue
				}

				rng := seed.RNG(masterSeed, "montecarlo", policy.Name, strconv.Itoa(i))
				excluded, err := failure.Apply(nodes, links, riskGroups, policy, rng)
				if err != nil {
					mu.Lock()
					if fatalErr == nil {
						fatalErr = fmt.Errorf("montecarlo: iteration %d policy evaluation failed: %w", i, err)
					}
					mu.Unlock()

					continue
				}

				key := patternHash(excluded)
				if !cfg.StoreFailurePatterns {
					key += "#" + strconv.Itoa(i)
				}

				mu.Lock()
				entry, seen := patterns[key]
				if seen {
					entry.OccurrenceCount++
					mu.Unlock()

					continue
				}
				entry = &IterationResult{PatternHash: key, Excluded: excluded, OccurrenceCount: 1}
				patterns[key] = entry
				mu.Unlock()

				result, ferr := f(excluded)

				mu.Lock()
				entry.Result = result
				entry.Err = ferr
				mu.Unlock()

				if cfg.Verbose && cfg.Trace != nil {
					fmt.Fprintf(cfg.Trace, "montecarlo: iteration %d new pattern %s\n", i, key)
				}
			}
		}()
	}
	wg.Wait()

	if fatalErr != nil {
		return Summary{}, fatalErr
	}

	keys := make([]string, 0, len(patterns))
	for k := range patterns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]IterationResult, len(keys))
	for i, k := range keys {
		results[i] = *patterns[k]
	}

	return Summary{Baseline: baseline, Patterns: results}, nil
}

// patternHash computes a stable, sorted-identifier digest of one
// exclusion set (spec §4.8 step 2b).
func patternHash(excluded []string) string {
	ids := append([]string(nil), excluded...)
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
