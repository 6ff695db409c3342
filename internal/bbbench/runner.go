package bbbench

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"sync"
	"time"
)

// ScenarioMeta carries a Scenario's ordering constraints alongside its
// Access; Before/After/Set let a suite say "warm-up runs before the
// timed pass" without pinning a fixed order.
type ScenarioMeta struct {
	Access Access
	Set    string
	Before []string
	After  []string
}

type entry struct {
	scenario *Scenario
	meta     ScenarioMeta
}

// Diagnostics reports scenario execution: start, end, and event counts.
type Diagnostics interface {
	SystemStart(name string, phase Phase)
	SystemEnd(name string, phase Phase, err error, duration time.Duration)
	EventEmit(name string, count int)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

func (NopDiagnostics) SystemStart(string, Phase)                    {}
func (NopDiagnostics) SystemEnd(string, Phase, error, time.Duration) {}
func (NopDiagnostics) EventEmit(string, int)                        {}

// LogDiagnostics logs scenario lifecycle events to a Printf-shaped logger.
type LogDiagnostics struct {
	log interface{ Printf(string, ...any) }
}

// NewLogDiagnostics creates a diagnostics handler that logs to log.
func NewLogDiagnostics(log interface{ Printf(string, ...any) }) *LogDiagnostics {
	return &LogDiagnostics{log: log}
}

func (d *LogDiagnostics) SystemStart(name string, phase Phase) {
	d.log.Printf("[%s] scenario %s started", phase, name)
}

func (d *LogDiagnostics) SystemEnd(name string, phase Phase, err error, duration time.Duration) {
	if err != nil {
		d.log.Printf("[%s] scenario %s finished with error in %v: %v", phase, name, duration, err)
	} else {
		d.log.Printf("[%s] scenario %s finished in %v", phase, name, duration)
	}
}

func (d *LogDiagnostics) EventEmit(name string, count int) {
	d.log.Printf("event %s: %d", name, count)
}

// Runner orders and executes scenarios batch by batch: topological
// sort over Before/After/Set constraints, then conflict-free batching
// using Access.Conflicts, run by a bounded worker pool.
type Runner struct {
	mu      sync.RWMutex
	entries map[Phase][]*entry
	batches map[Phase][][]*entry
	handles *HandleIndex
}

// NewRunner creates an empty Runner.
func NewRunner() *Runner {
	return &Runner{
		entries: make(map[Phase][]*entry),
		batches: make(map[Phase][][]*entry),
		handles: newHandleIndex(),
	}
}

// AddScenario registers sc for phase with the given ordering metadata.
func (r *Runner) AddScenario(sc *Scenario, meta ScenarioMeta) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meta.Access.PrepareSets(r.handles)
	e := &entry{scenario: sc, meta: meta}
	r.entries[sc.Phase] = append(r.entries[sc.Phase], e)
	r.batches[sc.Phase] = nil
}

// Build computes the execution order and parallel batches for every
// phase that has registered scenarios.
func (r *Runner) Build() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	newBatches := make(map[Phase][][]*entry, len(r.entries))
	for phase, entries := range r.entries {
		if _, err := topologicalSort(entries); err != nil {
			return fmt.Errorf("phase %v: %w", phase, err)
		}
		newBatches[phase] = computeBatches(entries)
	}
	r.batches = newBatches
	return nil
}

// topologicalSort orders entries based on Before/After/Set constraints,
// deterministically by name; it exists to detect cycles before
// computeBatches runs (Build fails fast on a cyclic suite).
func topologicalSort(entries []*entry) ([]*entry, error) {
	byName := make(map[string]*entry, len(entries))
	setMembers := make(map[string][]*entry)
	for _, e := range entries {
		byName[e.scenario.Name] = e
		if e.meta.Set != "" {
			setMembers[e.meta.Set] = append(setMembers[e.meta.Set], e)
		}
	}

	outgoing := make(map[*entry]map[*entry]bool, len(entries))
	inDegree := make(map[*entry]int, len(entries))
	for _, e := range entries {
		outgoing[e] = make(map[*entry]bool)
		inDegree[e] = 0
	}
	addEdge := func(a, b *entry) {
		if !outgoing[a][b] {
			outgoing[a][b] = true
			inDegree[b]++
		}
	}
	for _, e := range entries {
		for _, target := range e.meta.Before {
			if t, ok := byName[target]; ok {
				addEdge(e, t)
			} else if members, ok := setMembers[target]; ok {
				for _, m := range members {
					addEdge(e, m)
				}
			}
		}
		for _, dep := range e.meta.After {
			if d, ok := byName[dep]; ok {
				addEdge(d, e)
			} else if members, ok := setMembers[dep]; ok {
				for _, m := range members {
					addEdge(m, e)
				}
			}
		}
	}

	var zero []*entry
	for _, e := range entries {
		if inDegree[e] == 0 {
			zero = append(zero, e)
		}
	}
	sortByName(zero)

	var result []*entry
	for len(zero) > 0 {
		cur := zero[0]
		zero = zero[1:]
		result = append(result, cur)
		for neigh := range outgoing[cur] {
			inDegree[neigh]--
			if inDegree[neigh] == 0 {
				zero = append(zero, neigh)
			}
		}
		sortByName(zero)
	}

	if len(result) != len(entries) {
		return nil, fmt.Errorf("cyclic scenario dependency detected")
	}
	return result, nil
}

func sortByName(es []*entry) {
	sort.Slice(es, func(i, j int) bool { return es[i].scenario.Name < es[j].scenario.Name })
}

// computeBatches groups entries into parallel batches based on Access
// conflicts while respecting Before/After constraints using DAG levels.
func computeBatches(entries []*entry) [][]*entry {
	byName := make(map[string]*entry, len(entries))
	setMembers := make(map[string][]*entry)
	for _, e := range entries {
		byName[e.scenario.Name] = e
		if e.meta.Set != "" {
			setMembers[e.meta.Set] = append(setMembers[e.meta.Set], e)
		}
	}

	outgoing := make(map[*entry]map[*entry]bool, len(entries))
	inDegree := make(map[*entry]int, len(entries))
	for _, e := range entries {
		outgoing[e] = make(map[*entry]bool)
		inDegree[e] = 0
	}
	addDep := func(a, b *entry) {
		if !outgoing[a][b] {
			outgoing[a][b] = true
			inDegree[b]++
		}
	}
	for _, e := range entries {
		for _, dep := range e.meta.After {
			if d, ok := byName[dep]; ok {
				addDep(d, e)
			} else if members, ok := setMembers[dep]; ok {
				for _, m := range members {
					addDep(m, e)
				}
			}
		}
		for _, target := range e.meta.Before {
			if t, ok := byName[target]; ok {
				addDep(e, t)
			} else if members, ok := setMembers[target]; ok {
				for _, m := range members {
					addDep(e, m)
				}
			}
		}
	}

	var ready []*entry
	for _, e := range entries {
		if inDegree[e] == 0 {
			ready = append(ready, e)
		}
	}
	sortByName(ready)

	remaining := len(entries)
	var batches [][]*entry

	for remaining > 0 {
		if len(ready) == 0 {
			var any *entry
			for _, e := range entries {
				if inDegree[e] > 0 {
					any = e
					break
				}
			}
			if any == nil {
				break
			}
			ready = []*entry{any}
		}

		current := append([]*entry(nil), ready...)
		used := make([]bool, len(current))

		for {
			var batch []*entry
			for i, e := range current {
				if used[i] {
					continue
				}
				canAdd := true
				for _, other := range batch {
					if e.meta.Access.Conflicts(other.meta.Access) {
						canAdd = false
						break
					}
				}
				if canAdd {
					batch = append(batch, e)
					used[i] = true
				}
			}
			if len(batch) == 0 {
				break
			}
			batches = append(batches, batch)

			nextReady := make(map[*entry]bool)
			for i, e := range current {
				if !used[i] {
					nextReady[e] = true
				}
			}
			for _, e := range batch {
				for neigh := range outgoing[e] {
					inDegree[neigh]--
					if inDegree[neigh] == 0 {
						nextReady[neigh] = true
					}
				}
				inDegree[e] = -1
				remaining--
			}

			ready = ready[:0]
			for n := range nextReady {
				if inDegree[n] == 0 {
					ready = append(ready, n)
				}
			}
			sortByName(ready)

			current = append([]*entry(nil), ready...)
			used = make([]bool, len(current))
		}
	}

	return batches
}

// RunPhase executes every scenario registered for phase, batch by
// batch, using a bounded worker pool reused across batches.
func (r *Runner) RunPhase(ctx context.Context, phase Phase, h *Handles, diag Diagnostics) {
	r.mu.RLock()
	batches := r.batches[phase]
	r.mu.RUnlock()

	if diag == nil {
		diag = NopDiagnostics{}
	}

	type job struct {
		e    *entry
		done func()
	}

	work := make(chan job)
	maxWorkers := max(runtime.GOMAXPROCS(0), 1)

	var workers sync.WaitGroup
	workers.Add(maxWorkers)
	for range maxWorkers {
		go func() {
			defer workers.Done()
			for j := range work {
				runScenario(ctx, j.e.scenario, h, diag)
				j.done()
			}
		}()
	}
	defer func() {
		close(work)
		workers.Wait()
	}()

	for _, batch := range batches {
		sort.Slice(batch, func(i, j int) bool { return batch[i].scenario.Name < batch[j].scenario.Name })
		if err := ctx.Err(); err != nil {
			return
		}
		var batchWG sync.WaitGroup
		for _, e := range batch {
			batchWG.Add(1)
			work <- job{e: e, done: batchWG.Done}
		}
		batchWG.Wait()
	}
}

// runScenario executes a single scenario with diagnostics and panic
// recovery.
func runScenario(ctx context.Context, sc *Scenario, h *Handles, diag Diagnostics) {
	diag.SystemStart(sc.Name, sc.Phase)

	start := time.Now()
	var runErr error

	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
			}
		}()
		runErr = sc.Fn(ctx, h)
	}()

	diag.SystemEnd(sc.Name, sc.Phase, runErr, time.Since(start))
}
