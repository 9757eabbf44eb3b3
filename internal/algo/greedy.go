package algo

import (
	"fmt"

	"github.com/elektrokombinacija/prefalloc/internal/core"
)

// Greedy is the comparison baseline: requesters claim resources in index
// order, each taking its best still-free choice. It respects all invariants
// but has no optimality guarantee; an early requester can take a resource a
// later one needed far more.
type Greedy struct{}

// NewGreedy creates the greedy baseline solver.
func NewGreedy() *Greedy {
	return &Greedy{}
}

func (g *Greedy) Name() string { return "Greedy" }

// Solve implements Solver.
func (g *Greedy) Solve(inst *core.Instance) (*core.Allocation, error) {
	cm, err := core.NewCostModel(inst)
	if err != nil {
		return nil, err
	}
	cg, err := core.NewCapacityGraph(inst)
	if err != nil {
		return nil, err
	}

	taken := make(map[core.ResourceID]bool, len(inst.Requesters))
	load := make(map[core.OwnerID]int, len(inst.Owners))
	assigned := make(core.Assignment, len(inst.Requesters))

	free := func(res core.ResourceID) bool {
		o := cg.OwnerOf(res)
		return !taken[res] && load[o] < cg.Capacity(o)
	}
	claim := func(req core.RequesterID, res core.ResourceID) {
		assigned[req] = res
		taken[res] = true
		load[cg.OwnerOf(res)]++
	}

	for _, r := range inst.Requesters {
		picked := false
		for _, res := range r.Prefs {
			if free(res) {
				claim(r.ID, res)
				picked = true
				break
			}
		}
		if picked {
			continue
		}
		// No preference is available; fall back to the lowest free
		// resource index. Unranked is expensive, not forbidden.
		for j := 0; j < inst.Resources; j++ {
			if free(core.ResourceID(j)) {
				claim(r.ID, core.ResourceID(j))
				break
			}
		}
	}

	alloc := core.NewAllocation(inst, cm, cg, assigned)
	if inst.RequireFull && !alloc.Feasible {
		return alloc, fmt.Errorf("%w: %d of %d requesters unassigned",
			core.ErrInfeasible, len(alloc.Unassigned), len(inst.Requesters))
	}
	return alloc, nil
}
