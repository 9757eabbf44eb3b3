// Command prefalloc runs the allocation solvers on a problem instance and
// prints the resulting assignment summary.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/elektrokombinacija/prefalloc/internal/algo"
	"github.com/elektrokombinacija/prefalloc/internal/core"
	"github.com/elektrokombinacija/prefalloc/internal/report"
)

func main() {
	instPath := flag.String("instance", "", "Instance JSON file (default: built-in demo scenarios)")
	flag.Parse()

	if *instPath != "" {
		name, inst, err := core.LoadInstance(*instPath)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("=== %s ===\n", name)
		describe(inst)
		runSolvers(inst)
		return
	}

	fmt.Println("--- Flat case: single unbounded owner ---")
	inst := createFlatInstance()
	describe(inst)
	runSolvers(inst)

	fmt.Println("\n--- Grouped case: per-owner capacity bounds ---")
	grouped := createGroupedInstance()
	describe(grouped)
	runSolvers(grouped)
}

func describe(inst *core.Instance) {
	fmt.Printf("Instance: %d requesters, %d resources, %d owners, k=%d\n",
		len(inst.Requesters), inst.Resources, len(inst.Owners), inst.MaxPrefs)
}

func runSolvers(inst *core.Instance) {
	solvers := []algo.Solver{
		algo.NewMinCostFlow(),
		algo.NewGreedy(),
	}

	for _, solver := range solvers {
		fmt.Printf("\n  %s: ", solver.Name())
		start := time.Now()
		alloc, err := solver.Solve(inst)
		elapsed := time.Since(start)

		switch {
		case errors.Is(err, core.ErrInfeasible):
			fmt.Printf("infeasible (%v), best partial below\n", err)
		case err != nil:
			fmt.Printf("error: %v\n", err)
			continue
		default:
			fmt.Printf("Time=%v\n", elapsed)
		}

		report.Summarize(inst, alloc).Render(os.Stdout)
	}
	fmt.Println()
}

// createFlatInstance builds a small students-to-topics scenario with no
// grouping: every topic under one unbounded owner.
func createFlatInstance() *core.Instance {
	inst := core.NewInstance()
	inst.Resources = 6
	inst.MaxPrefs = 3
	inst.Requesters = []*core.Requester{
		{ID: 0, Prefs: []core.ResourceID{2, 0, 4}},
		{ID: 1, Prefs: []core.ResourceID{2, 1, 3}},
		{ID: 2, Prefs: []core.ResourceID{0, 2, 5}},
		{ID: 3, Prefs: []core.ResourceID{5, 4, 2}},
	}
	inst.SingleOwner()
	return inst
}

// createGroupedInstance builds a scenario where two popular topics share a
// capacity-1 owner, forcing the solver to route around the bound.
func createGroupedInstance() *core.Instance {
	inst := core.NewInstance()
	inst.Resources = 6
	inst.MaxPrefs = 3
	inst.Requesters = []*core.Requester{
		{ID: 0, Prefs: []core.ResourceID{0, 1, 4}},
		{ID: 1, Prefs: []core.ResourceID{1, 0, 5}},
		{ID: 2, Prefs: []core.ResourceID{0, 2, 3}},
		{ID: 3, Prefs: []core.ResourceID{1, 3, 2}},
	}
	inst.Owners = []*core.Owner{
		{ID: 0, Resources: []core.ResourceID{0, 1}, Capacity: 1},
		{ID: 1, Resources: []core.ResourceID{2, 3}, Capacity: 2},
		{ID: 2, Resources: []core.ResourceID{4, 5}, Capacity: core.Unbounded},
	}
	return inst
}
