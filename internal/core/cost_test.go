package core

import (
	"errors"
	"testing"
)

func testInstance() *Instance {
	inst := NewInstance()
	inst.Resources = 4
	inst.MaxPrefs = 2
	inst.Requesters = []*Requester{
		{ID: 0, Prefs: []ResourceID{1, 2}},
		{ID: 1, Prefs: []ResourceID{0, 1}},
		{ID: 2, Prefs: []ResourceID{2}},
	}
	inst.SingleOwner()
	return inst
}

func TestCost(t *testing.T) {
	cm, err := NewCostModel(testInstance())
	if err != nil {
		t.Fatalf("NewCostModel: %v", err)
	}

	tests := []struct {
		req  RequesterID
		res  ResourceID
		want int
	}{
		{0, 1, 0}, // First choice
		{0, 2, 1}, // Second choice
		{0, 0, 2}, // Unranked costs k
		{0, 3, 2},
		{2, 2, 0},
		{2, 0, 2}, // Short list: unranked still costs k, not list length
	}

	for _, tt := range tests {
		got := cm.Cost(tt.req, tt.res)
		if got != tt.want {
			t.Errorf("Cost(%d, %d) = %d, want %d", tt.req, tt.res, got, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	cm, err := NewCostModel(testInstance())
	if err != nil {
		t.Fatalf("NewCostModel: %v", err)
	}

	if got := cm.Rank(0, 2); got != 1 {
		t.Errorf("Rank(0, 2) = %d, want 1", got)
	}
	if got := cm.Rank(0, 0); got != RankUnranked {
		t.Errorf("Rank(0, 0) = %d, want RankUnranked", got)
	}
}

func TestValidateRejectsBadPrefs(t *testing.T) {
	tests := []struct {
		name  string
		prefs []ResourceID
	}{
		{"duplicate", []ResourceID{1, 1}},
		{"out of range", []ResourceID{0, 7}},
		{"negative", []ResourceID{-1}},
		{"too long", []ResourceID{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := testInstance()
			inst.Requesters[0].Prefs = tt.prefs
			err := inst.Validate()
			if !errors.Is(err, ErrInvalidPreferenceList) {
				t.Errorf("Validate() = %v, want ErrInvalidPreferenceList", err)
			}
		})
	}
}

func TestCapacityGraph(t *testing.T) {
	inst := testInstance()
	inst.Owners = []*Owner{
		{ID: 0, Resources: []ResourceID{0, 1}, Capacity: 1},
		{ID: 1, Resources: []ResourceID{2, 3}, Capacity: Unbounded},
	}

	cg, err := NewCapacityGraph(inst)
	if err != nil {
		t.Fatalf("NewCapacityGraph: %v", err)
	}

	if got := cg.OwnerOf(1); got != 0 {
		t.Errorf("OwnerOf(1) = %d, want 0", got)
	}
	if got := cg.OwnerOf(3); got != 1 {
		t.Errorf("OwnerOf(3) = %d, want 1", got)
	}
	if got := cg.Capacity(0); got != 1 {
		t.Errorf("Capacity(0) = %d, want 1", got)
	}
	// Unbounded reports the owned resource count
	if got := cg.Capacity(1); got != 2 {
		t.Errorf("Capacity(1) = %d, want 2", got)
	}
}

func TestCapacityGraphErrors(t *testing.T) {
	t.Run("unowned resource", func(t *testing.T) {
		inst := testInstance()
		inst.Owners = []*Owner{{ID: 0, Resources: []ResourceID{0, 1, 2}, Capacity: 3}}
		_, err := NewCapacityGraph(inst)
		if !errors.Is(err, ErrUnassignedResource) {
			t.Errorf("got %v, want ErrUnassignedResource", err)
		}
	})

	t.Run("doubly owned resource", func(t *testing.T) {
		inst := testInstance()
		inst.Owners = []*Owner{
			{ID: 0, Resources: []ResourceID{0, 1, 2}, Capacity: 3},
			{ID: 1, Resources: []ResourceID{2, 3}, Capacity: 2},
		}
		_, err := NewCapacityGraph(inst)
		if !errors.Is(err, ErrDuplicateOwner) {
			t.Errorf("got %v, want ErrDuplicateOwner", err)
		}
	})

	t.Run("negative capacity", func(t *testing.T) {
		inst := testInstance()
		inst.Owners[0].Capacity = -3
		_, err := NewCapacityGraph(inst)
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("got %v, want ErrInvalidCapacity", err)
		}
	})
}

func TestNewAllocation(t *testing.T) {
	inst := testInstance()
	cm, err := NewCostModel(inst)
	if err != nil {
		t.Fatalf("NewCostModel: %v", err)
	}
	cg, err := NewCapacityGraph(inst)
	if err != nil {
		t.Fatalf("NewCapacityGraph: %v", err)
	}

	a := NewAllocation(inst, cm, cg, Assignment{0: 1, 2: 3})

	if a.Feasible {
		t.Error("expected partial allocation to be marked not feasible")
	}
	if len(a.Unassigned) != 1 || a.Unassigned[0] != 1 {
		t.Errorf("Unassigned = %v, want [1]", a.Unassigned)
	}
	// Requester 0 got rank 0 (cost 0), requester 2 got unranked (cost 2)
	if a.TotalCost != 2 {
		t.Errorf("TotalCost = %d, want 2", a.TotalCost)
	}
	if a.Ranks[2] != RankUnranked {
		t.Errorf("Ranks[2] = %d, want RankUnranked", a.Ranks[2])
	}
	if a.OwnerLoad[0] != 2 {
		t.Errorf("OwnerLoad[0] = %d, want 2", a.OwnerLoad[0])
	}
}

func TestInstanceJSONRoundTrip(t *testing.T) {
	inst := testInstance()
	inst.RequireFull = true

	data, err := MarshalInstance("t", inst)
	if err != nil {
		t.Fatalf("MarshalInstance: %v", err)
	}

	name, got, err := UnmarshalInstance(data)
	if err != nil {
		t.Fatalf("UnmarshalInstance: %v", err)
	}
	if name != "t" {
		t.Errorf("name = %q, want %q", name, "t")
	}
	if got.Resources != 4 || got.MaxPrefs != 2 || !got.RequireFull {
		t.Errorf("instance params lost in round trip: %+v", got)
	}
	if len(got.Requesters) != 3 || got.Requesters[0].Prefs[0] != 1 {
		t.Errorf("requesters lost in round trip")
	}
}
