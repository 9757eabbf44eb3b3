// Package main provides a benchmark runner for allocation solvers.
// Runs every solver on each instance file and collects metrics.
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/prefalloc/internal/algo"
	"github.com/elektrokombinacija/prefalloc/internal/core"
	"github.com/elektrokombinacija/prefalloc/internal/report"
)

// Result stores the outcome of a single solver run.
type Result struct {
	RunID      string  `json:"run_id"`
	Timestamp  string  `json:"timestamp"`
	CommitHash string  `json:"commit_hash"`
	GoVersion  string  `json:"go_version"`
	OS         string  `json:"os"`
	Arch       string  `json:"arch"`
	Instance   string  `json:"instance"`
	Requesters int     `json:"requesters"`
	Resources  int     `json:"resources"`
	Owners     int     `json:"owners"`
	Solver     string  `json:"solver"`
	RuntimeMs  float64 `json:"runtime_ms"`
	Assigned   int     `json:"assigned"`
	TotalCost  int     `json:"total_cost"`
	MeanRank   float64 `json:"mean_rank"`
	Feasible   bool    `json:"feasible"`
	Infeasible bool    `json:"infeasible"` // RequireFull violated
}

func getGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

func solvers() []algo.Solver {
	return []algo.Solver{
		algo.NewMinCostFlow(),
		algo.NewGreedy(),
	}
}

func runOne(runID, commit, name string, inst *core.Instance, solver algo.Solver) *Result {
	r := &Result{
		RunID:      runID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: commit,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Instance:   name,
		Requesters: len(inst.Requesters),
		Resources:  inst.Resources,
		Owners:     len(inst.Owners),
		Solver:     solver.Name(),
	}

	start := time.Now()
	alloc, err := solver.Solve(inst)
	r.RuntimeMs = float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil && !errors.Is(err, core.ErrInfeasible) {
		log.Printf("%s on %s: %v", solver.Name(), name, err)
		return r
	}
	r.Infeasible = errors.Is(err, core.ErrInfeasible)

	s := report.Summarize(inst, alloc)
	r.Assigned = s.Assigned
	r.TotalCost = s.TotalCost
	r.MeanRank = s.MeanRank
	r.Feasible = alloc.Feasible
	return r
}

func writeCSV(path string, results []*Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"run_id", "timestamp", "commit", "instance", "requesters", "resources",
		"owners", "solver", "runtime_ms", "assigned", "total_cost", "mean_rank",
		"feasible",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.RunID, r.Timestamp, r.CommitHash, r.Instance,
			strconv.Itoa(r.Requesters), strconv.Itoa(r.Resources),
			strconv.Itoa(r.Owners), r.Solver,
			fmt.Sprintf("%.3f", r.RuntimeMs),
			strconv.Itoa(r.Assigned), strconv.Itoa(r.TotalCost),
			fmt.Sprintf("%.3f", r.MeanRank),
			strconv.FormatBool(r.Feasible),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(results []*Result) {
	type agg struct {
		runs, assigned, cost int
		runtimeMs            float64
	}
	bySolver := map[string]*agg{}
	for _, r := range results {
		a := bySolver[r.Solver]
		if a == nil {
			a = &agg{}
			bySolver[r.Solver] = a
		}
		a.runs++
		a.assigned += r.Assigned
		a.cost += r.TotalCost
		a.runtimeMs += r.RuntimeMs
	}

	names := make([]string, 0, len(bySolver))
	for n := range bySolver {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Println("\nsolver summary:")
	for _, n := range names {
		a := bySolver[n]
		fmt.Printf("  %-12s runs=%d assigned=%d total_cost=%d avg_runtime=%.2fms\n",
			n, a.runs, a.assigned, a.cost, a.runtimeMs/float64(a.runs))
	}
}

func main() {
	instDir := flag.String("instances", "instances", "Directory of instance JSON files")
	outDir := flag.String("out", "benchmarks", "Output directory for results")
	flag.Parse()

	paths, err := filepath.Glob(filepath.Join(*instDir, "*.json"))
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatalf("no instances found in %s", *instDir)
	}
	sort.Strings(paths)

	runID := uuid.NewString()
	commit := getGitCommit()

	var results []*Result
	for _, path := range paths {
		name, inst, err := core.LoadInstance(path)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			continue
		}
		for _, solver := range solvers() {
			r := runOne(runID, commit, name, inst, solver)
			results = append(results, r)
			fmt.Printf("%s %s: assigned=%d/%d cost=%d %.2fms\n",
				name, r.Solver, r.Assigned, r.Requesters, r.TotalCost, r.RuntimeMs)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	stamp := time.Now().UTC().Format("20060102T150405")
	if err := writeCSV(filepath.Join(*outDir, "results_"+stamp+".csv"), results); err != nil {
		log.Fatal(err)
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(*outDir, "results_"+stamp+".json"), data, 0o644); err != nil {
		log.Fatal(err)
	}

	printSummary(results)
}
