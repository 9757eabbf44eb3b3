package core

// RankUnranked marks an assignment outside the requester's preference list.
const RankUnranked = -1

// Assignment is a partial injective mapping from requesters to resources.
type Assignment map[RequesterID]ResourceID

// Allocation is the result of one solve: the assignment plus the accounting
// derived from it. It is owned solely by the caller; solvers never retain or
// mutate a returned Allocation.
type Allocation struct {
	Assigned   Assignment
	Unassigned []RequesterID
	TotalCost  int
	Ranks      map[RequesterID]int // Realized rank, RankUnranked if outside prefs
	OwnerLoad  map[OwnerID]int
	Feasible   bool // Every requester assigned
}

// NewAllocation derives the full result from a raw assignment. Requesters
// absent from assigned are recorded as unassigned, in instance order.
func NewAllocation(inst *Instance, cm *CostModel, cg *CapacityGraph, assigned Assignment) *Allocation {
	a := &Allocation{
		Assigned:  make(Assignment, len(assigned)),
		Ranks:     make(map[RequesterID]int, len(assigned)),
		OwnerLoad: make(map[OwnerID]int, len(inst.Owners)),
		Feasible:  true,
	}

	for _, o := range inst.Owners {
		a.OwnerLoad[o.ID] = 0
	}

	for _, r := range inst.Requesters {
		res, ok := assigned[r.ID]
		if !ok {
			a.Unassigned = append(a.Unassigned, r.ID)
			a.Feasible = false
			continue
		}
		a.Assigned[r.ID] = res
		a.TotalCost += cm.Cost(r.ID, res)
		a.Ranks[r.ID] = cm.Rank(r.ID, res)
		a.OwnerLoad[cg.OwnerOf(res)]++
	}

	return a
}

// MeanRank returns the average realized rank over assigned requesters,
// counting unranked assignments as MaxPrefs. Returns 0 for an empty
// assignment.
func (a *Allocation) MeanRank(maxPrefs int) float64 {
	if len(a.Assigned) == 0 {
		return 0
	}
	sum := 0
	for _, rank := range a.Ranks {
		if rank == RankUnranked {
			sum += maxPrefs
		} else {
			sum += rank
		}
	}
	return float64(sum) / float64(len(a.Assigned))
}
