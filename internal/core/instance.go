package core

import "fmt"

// Instance represents an allocation problem instance.
// I = (R, M, O, k, h)
type Instance struct {
	Requesters []*Requester
	Resources  int // Resource ids are 0..Resources-1
	Owners     []*Owner
	MaxPrefs   int // k: upper bound on preference list length

	// RequireFull makes the solver report ErrInfeasible when not every
	// requester can be assigned. When false a partial allocation is a
	// normal result.
	RequireFull bool
}

// NewInstance creates an empty instance.
func NewInstance() *Instance {
	return &Instance{}
}

// SingleOwner groups all resources under one unbounded owner. This is the
// flat case: the capacity constraint degenerates to plain matching.
func (inst *Instance) SingleOwner() {
	ids := make([]ResourceID, inst.Resources)
	for j := range ids {
		ids[j] = ResourceID(j)
	}
	inst.Owners = []*Owner{{ID: 0, Resources: ids, Capacity: Unbounded}}
}

// Validate checks instance consistency. It fails fast: the first violation
// is reported and no partial construction survives.
func (inst *Instance) Validate() error {
	for _, r := range inst.Requesters {
		if len(r.Prefs) > inst.MaxPrefs {
			return fmt.Errorf("%w: requester %d ranks %d resources, max %d",
				ErrInvalidPreferenceList, r.ID, len(r.Prefs), inst.MaxPrefs)
		}
		seen := make(map[ResourceID]bool, len(r.Prefs))
		for _, res := range r.Prefs {
			if res < 0 || int(res) >= inst.Resources {
				return fmt.Errorf("%w: requester %d ranks unknown resource %d",
					ErrInvalidPreferenceList, r.ID, res)
			}
			if seen[res] {
				return fmt.Errorf("%w: requester %d ranks resource %d twice",
					ErrInvalidPreferenceList, r.ID, res)
			}
			seen[res] = true
		}
	}

	owned := make(map[ResourceID]OwnerID, inst.Resources)
	for _, o := range inst.Owners {
		if o.Capacity < 0 && o.Capacity != Unbounded {
			return fmt.Errorf("%w: owner %d has capacity %d",
				ErrInvalidCapacity, o.ID, o.Capacity)
		}
		for _, res := range o.Resources {
			if prev, ok := owned[res]; ok {
				return fmt.Errorf("%w: resource %d owned by %d and %d",
					ErrDuplicateOwner, res, prev, o.ID)
			}
			owned[res] = o.ID
		}
	}
	for j := 0; j < inst.Resources; j++ {
		if _, ok := owned[ResourceID(j)]; !ok {
			return fmt.Errorf("%w: resource %d", ErrUnassignedResource, j)
		}
	}

	return nil
}

// RequesterByID finds a requester by ID.
func (inst *Instance) RequesterByID(id RequesterID) *Requester {
	for _, r := range inst.Requesters {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// OwnerByID finds an owner by ID.
func (inst *Instance) OwnerByID(id OwnerID) *Owner {
	for _, o := range inst.Owners {
		if o.ID == id {
			return o
		}
	}
	return nil
}
