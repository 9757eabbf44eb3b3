package algo

import (
	"testing"

	"github.com/elektrokombinacija/prefalloc/internal/core"
)

// TestUnrankedFallback verifies that an unranked resource is expensive but
// never forbidden: when both requesters want the same single resource, the
// loser is pushed onto the unranked one at cost k.
func TestUnrankedFallback(t *testing.T) {
	inst := core.NewInstance()
	inst.Resources = 2
	inst.MaxPrefs = 1
	inst.Requesters = []*core.Requester{
		{ID: 0, Prefs: []core.ResourceID{0}},
		{ID: 1, Prefs: []core.ResourceID{0}},
	}
	inst.SingleOwner()

	alloc, err := NewMinCostFlow().Solve(inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if !alloc.Feasible {
		t.Fatal("expected both requesters assigned")
	}
	if alloc.TotalCost != 1 {
		t.Errorf("TotalCost = %d, want 1 (one rank-0 plus one unranked at k=1)", alloc.TotalCost)
	}

	unranked := 0
	for _, rank := range alloc.Ranks {
		if rank == core.RankUnranked {
			unranked++
		}
	}
	if unranked != 1 {
		t.Errorf("unranked assignments = %d, want 1", unranked)
	}
}

// TestCapacityRoutesAroundOwner verifies that a tight owner bound redirects
// flow to a worse-ranked resource under a different owner.
func TestCapacityRoutesAroundOwner(t *testing.T) {
	inst := core.NewInstance()
	inst.Resources = 3
	inst.MaxPrefs = 2
	// Both requesters rank owner 0's resources first; owner 0 can only
	// serve one of them.
	inst.Requesters = []*core.Requester{
		{ID: 0, Prefs: []core.ResourceID{0, 2}},
		{ID: 1, Prefs: []core.ResourceID{1, 2}},
	}
	inst.Owners = []*core.Owner{
		{ID: 0, Resources: []core.ResourceID{0, 1}, Capacity: 1},
		{ID: 1, Resources: []core.ResourceID{2}, Capacity: 1},
	}

	alloc, err := NewMinCostFlow().Solve(inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if !alloc.Feasible {
		t.Fatal("expected full allocation")
	}
	// One requester gets its first choice, the other its second: cost 1.
	if alloc.TotalCost != 1 {
		t.Errorf("TotalCost = %d, want 1", alloc.TotalCost)
	}
	if alloc.OwnerLoad[0] != 1 || alloc.OwnerLoad[1] != 1 {
		t.Errorf("OwnerLoad = %v, want one each", alloc.OwnerLoad)
	}
}

// TestZeroCapacityOwner verifies that a zero-capacity owner takes no
// assignments at all.
func TestZeroCapacityOwner(t *testing.T) {
	inst := core.NewInstance()
	inst.Resources = 2
	inst.MaxPrefs = 1
	inst.Requesters = []*core.Requester{
		{ID: 0, Prefs: []core.ResourceID{0}},
	}
	inst.Owners = []*core.Owner{
		{ID: 0, Resources: []core.ResourceID{0}, Capacity: 0},
		{ID: 1, Resources: []core.ResourceID{1}, Capacity: 1},
	}

	alloc, err := NewMinCostFlow().Solve(inst)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if res, ok := alloc.Assigned[0]; !ok || res != 1 {
		t.Errorf("Assigned[0] = %d (ok=%v), want resource 1", res, ok)
	}
	if alloc.OwnerLoad[0] != 0 {
		t.Errorf("OwnerLoad[0] = %d, want 0", alloc.OwnerLoad[0])
	}
}

// TestLargerInstanceSaturates exercises more than a handful of augmentations
// and checks that m >= n with adequate capacity always saturates.
func TestLargerInstanceSaturates(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		inst := randomInstance(seed, 30, 40, 5, 6)
		for _, o := range inst.Owners {
			o.Capacity = core.Unbounded
		}

		alloc, err := NewMinCostFlow().Solve(inst)
		if err != nil {
			t.Fatalf("seed %d: Solve: %v", seed, err)
		}
		if !alloc.Feasible {
			t.Errorf("seed %d: expected saturation with unbounded owners, %d unassigned",
				seed, len(alloc.Unassigned))
		}
	}
}
