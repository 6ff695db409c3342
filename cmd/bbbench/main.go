// Command bbbench runs a bitset benchmarking suite described by a TOML
// file: it wires up named Dense/Sparse/Sentinel handles, declares which
// scenario reads/writes which handles, and lets internal/bbbench prove
// that scenarios touching disjoint handles run concurrently while
// scenarios sharing a handle serialize.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/oriumgames/bitgraph"
	"github.com/oriumgames/bitgraph/internal/bbbench"
)

// Suite is the TOML description of a benchmarking run, grounded on
// lookbusy1344-arm_emulator/config/config.go's toml-struct-tag pattern.
type Suite struct {
	Handles   []HandleSpec   `toml:"handle"`
	Scenarios []ScenarioSpec `toml:"scenario"`
}

// HandleSpec describes one named bitset to allocate before running any scenario.
type HandleSpec struct {
	Name     string  `toml:"name"`
	Kind     string  `toml:"kind"` // "dense", "sparse", or "sentinel"
	Blocks   int     `toml:"blocks"`
	Density  float64 `toml:"density"`
	RandSeed int64   `toml:"rand_seed"`
}

// ScenarioSpec describes one scenario: which handles it reads/writes
// and, for this CLI's built-in operations, which operation to run.
type ScenarioSpec struct {
	Name   string   `toml:"name"`
	Phase  string   `toml:"phase"` // "setup", "exercise", or "verify"
	Reads  []string `toml:"reads"`
	Writes []string `toml:"writes"`
	Op     string   `toml:"op"` // "and", "or", "xor", "count"
	Set    string   `toml:"set"`
	After  []string `toml:"after"`
	Before []string `toml:"before"`
}

func main() {
	var suitePath string

	rootCmd := &cobra.Command{
		Use:   "bbbench",
		Short: "Run a bitset benchmarking suite described by a TOML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(suitePath)
		},
	}
	rootCmd.Flags().StringVarP(&suitePath, "suite", "s", "", "path to the suite TOML file (required)")
	rootCmd.MarkFlagRequired("suite")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	var suite Suite
	if _, err := toml.DecodeFile(path, &suite); err != nil {
		return fmt.Errorf("parse suite file: %w", err)
	}

	handles := bbbench.NewHandles()
	for _, hs := range suite.Handles {
		v, err := buildHandle(hs)
		if err != nil {
			return fmt.Errorf("handle %q: %w", hs.Name, err)
		}
		handles.Set(hs.Name, v)
	}

	runner := bbbench.NewRunner()
	for _, ss := range suite.Scenarios {
		phase, err := parsePhase(ss.Phase)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", ss.Name, err)
		}
		sc := &bbbench.Scenario{
			Name:  ss.Name,
			Phase: phase,
			Fn:    scenarioFn(ss, handles),
		}
		meta := bbbench.ScenarioMeta{
			Access: bbbench.Access{Reads: ss.Reads, Writes: ss.Writes},
			Set:    ss.Set,
			Before: ss.Before,
			After:  ss.After,
		}
		runner.AddScenario(sc, meta)
	}

	if err := runner.Build(); err != nil {
		return fmt.Errorf("build suite: %w", err)
	}

	diag := bbbench.NewLogDiagnostics(log.Default())
	ctx := context.Background()
	for _, phase := range []bbbench.Phase{bbbench.Setup, bbbench.Exercise, bbbench.Verify} {
		runner.RunPhase(ctx, phase, handles, diag)
	}
	return nil
}

func parsePhase(s string) (bbbench.Phase, error) {
	switch s {
	case "setup":
		return bbbench.Setup, nil
	case "exercise":
		return bbbench.Exercise, nil
	case "verify":
		return bbbench.Verify, nil
	default:
		return 0, fmt.Errorf("unknown phase %q (want setup, exercise, or verify)", s)
	}
}

func buildHandle(hs HandleSpec) (any, error) {
	switch hs.Kind {
	case "dense":
		d := bitgraph.NewDense(hs.Blocks)
		seedDense(d, hs)
		return d, nil
	case "sparse":
		s := bitgraph.NewSparse(hs.Blocks)
		seedSparse(s, hs)
		return s, nil
	case "sentinel":
		sn := bitgraph.NewSentinel(hs.Blocks)
		seedSentinel(sn, hs)
		return sn, nil
	default:
		return nil, fmt.Errorf("unknown handle kind %q", hs.Kind)
	}
}

func rngFor(hs HandleSpec) *randSource { return newRandSource(hs.RandSeed) }

func seedDense(d *bitgraph.Dense, hs HandleSpec) {
	if hs.Density <= 0 {
		return
	}
	rng := rngFor(hs)
	for i := 0; i < d.Blocks(); i++ {
		d.SetBlock(i, bitgraph.GenRandomBlock(hs.Density, rng.rand))
	}
}

func seedSparse(s *bitgraph.Sparse, hs HandleSpec) {
	if hs.Density <= 0 {
		return
	}
	rng := rngFor(hs)
	for i := 0; i < hs.Blocks; i++ {
		w := bitgraph.GenRandomBlock(hs.Density, rng.rand)
		if w == 0 {
			continue
		}
		for b := 0; b < 64; b++ {
			if w&(1<<uint(b)) != 0 {
				s.Set(i*64 + b)
			}
		}
	}
}

func seedSentinel(sn *bitgraph.Sentinel, hs HandleSpec) {
	if hs.Density <= 0 {
		return
	}
	rng := rngFor(hs)
	for i := 0; i < sn.Blocks(); i++ {
		w := bitgraph.GenRandomBlock(hs.Density, rng.rand)
		if w == 0 {
			continue
		}
		for b := 0; b < 64; b++ {
			if w&(1<<uint(b)) != 0 {
				sn.Set(i*64 + b)
			}
		}
	}
}

// scenarioFn builds the Fn a bbbench.Scenario runs for ss, dispatching
// on its declared operation against the handles it reads/writes.
func scenarioFn(ss ScenarioSpec, handles *bbbench.Handles) func(context.Context, *bbbench.Handles) error {
	return func(ctx context.Context, h *bbbench.Handles) error {
		switch ss.Op {
		case "count":
			return runCount(ss, h)
		case "and", "or", "xor":
			return runAlgebra(ss, h)
		case "":
			return nil
		default:
			return fmt.Errorf("unknown op %q", ss.Op)
		}
	}
}

func runCount(ss ScenarioSpec, h *bbbench.Handles) error {
	for _, name := range ss.Reads {
		v, ok := h.Get(name)
		if !ok {
			return fmt.Errorf("handle %q not registered", name)
		}
		switch bb := v.(type) {
		case *bitgraph.Dense:
			log.Printf("%s: count=%d", name, bb.Count())
		case *bitgraph.Sparse:
			log.Printf("%s: count=%d", name, bb.Count())
		case *bitgraph.Sentinel:
			log.Printf("%s: count=%d", name, bb.Count())
		}
	}
	return nil
}

func runAlgebra(ss ScenarioSpec, h *bbbench.Handles) error {
	if len(ss.Reads) < 1 || len(ss.Writes) != 1 {
		return fmt.Errorf("op %q needs at least one read handle and exactly one write handle", ss.Op)
	}
	out, ok := h.Get(ss.Writes[0])
	if !ok {
		return fmt.Errorf("handle %q not registered", ss.Writes[0])
	}
	outDense, ok := out.(*bitgraph.Dense)
	if !ok {
		return fmt.Errorf("op %q only supports Dense write handles", ss.Op)
	}
	for _, name := range ss.Reads {
		v, ok := h.Get(name)
		if !ok {
			return fmt.Errorf("handle %q not registered", name)
		}
		src, ok := v.(*bitgraph.Dense)
		if !ok {
			return fmt.Errorf("op %q only supports Dense read handles", ss.Op)
		}
		switch ss.Op {
		case "and":
			outDense.And(src)
		case "or":
			outDense.Or(src)
		case "xor":
			outDense.Xor(src)
		}
	}
	return nil
}

// randSource holds the *rand.Rand used to seed a handle. newRandSource
// replaces a seed of 0 with the current time, so suites that omit
// rand_seed get a different seed on every run.
type randSource struct {
	rand *rand.Rand
}

func newRandSource(seed int64) *randSource {
	if seed == 0 {
		seed = int64(time.Now().UnixNano())
	}
	return &randSource{rand: rand.New(rand.NewSource(seed))}
}
