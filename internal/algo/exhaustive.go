package algo

import (
	"fmt"

	"github.com/elektrokombinacija/prefalloc/internal/core"
)

// ExhaustiveLimit bounds the instances Exhaustive accepts. The search is
// O((m+1)^n); anything past small oracle instances belongs to MinCostFlow.
const ExhaustiveLimit = 10

// Exhaustive enumerates every feasible assignment and keeps the best:
// most requesters assigned first, lowest total cost second. That matches
// the min-cost maximum-flow objective, which makes it the test oracle for
// MinCostFlow on small instances.
type Exhaustive struct{}

// NewExhaustive creates the brute-force solver.
func NewExhaustive() *Exhaustive {
	return &Exhaustive{}
}

func (e *Exhaustive) Name() string { return "Exhaustive" }

// Solve implements Solver.
func (e *Exhaustive) Solve(inst *core.Instance) (*core.Allocation, error) {
	if len(inst.Requesters) > ExhaustiveLimit || inst.Resources > ExhaustiveLimit {
		return nil, fmt.Errorf("exhaustive: instance too large (n=%d, m=%d, limit %d)",
			len(inst.Requesters), inst.Resources, ExhaustiveLimit)
	}

	cm, err := core.NewCostModel(inst)
	if err != nil {
		return nil, err
	}
	cg, err := core.NewCapacityGraph(inst)
	if err != nil {
		return nil, err
	}

	s := &exhaustiveSearch{
		inst:    inst,
		cm:      cm,
		cg:      cg,
		current: make(core.Assignment, len(inst.Requesters)),
		load:    make(map[core.OwnerID]int, len(inst.Owners)),
		taken:   make(map[core.ResourceID]bool, inst.Resources),
	}
	s.bestCount = -1
	s.recurse(0, 0)

	alloc := core.NewAllocation(inst, cm, cg, s.best)
	if inst.RequireFull && !alloc.Feasible {
		return alloc, fmt.Errorf("%w: %d of %d requesters unassigned",
			core.ErrInfeasible, len(alloc.Unassigned), len(inst.Requesters))
	}
	return alloc, nil
}

type exhaustiveSearch struct {
	inst    *core.Instance
	cm      *core.CostModel
	cg      *core.CapacityGraph
	current core.Assignment
	load    map[core.OwnerID]int
	taken   map[core.ResourceID]bool

	best      core.Assignment
	bestCount int
	bestCost  int
}

func (s *exhaustiveSearch) recurse(i, cost int) {
	if i == len(s.inst.Requesters) {
		count := len(s.current)
		if count > s.bestCount || (count == s.bestCount && cost < s.bestCost) {
			s.best = make(core.Assignment, count)
			for req, res := range s.current {
				s.best[req] = res
			}
			s.bestCount = count
			s.bestCost = cost
		}
		return
	}

	r := s.inst.Requesters[i]
	for j := 0; j < s.inst.Resources; j++ {
		res := core.ResourceID(j)
		o := s.cg.OwnerOf(res)
		if s.taken[res] || s.load[o] >= s.cg.Capacity(o) {
			continue
		}
		s.taken[res] = true
		s.load[o]++
		s.current[r.ID] = res
		s.recurse(i+1, cost+s.cm.Cost(r.ID, res))
		delete(s.current, r.ID)
		s.load[o]--
		s.taken[res] = false
	}

	// Leaving the requester unassigned is always a legal branch; the
	// best-count ordering keeps it from winning when saturation is
	// possible.
	s.recurse(i+1, cost)
}
