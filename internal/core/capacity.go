package core

import "fmt"

// CapacityGraph maps each resource to its owner and each owner to its
// capacity bound. Owners partition the resource set; the partition is what
// lets the capacity constraint reduce to per-group counting.
type CapacityGraph struct {
	ownerOf  map[ResourceID]OwnerID
	capacity map[OwnerID]int
	owners   []OwnerID // In declaration order, for deterministic iteration
}

// NewCapacityGraph builds the lookup structure from an instance's owners.
func NewCapacityGraph(inst *Instance) (*CapacityGraph, error) {
	cg := &CapacityGraph{
		ownerOf:  make(map[ResourceID]OwnerID, inst.Resources),
		capacity: make(map[OwnerID]int, len(inst.Owners)),
	}

	for _, o := range inst.Owners {
		if o.Capacity < 0 && o.Capacity != Unbounded {
			return nil, fmt.Errorf("%w: owner %d has capacity %d",
				ErrInvalidCapacity, o.ID, o.Capacity)
		}
		limit := o.Capacity
		if limit == Unbounded {
			limit = len(o.Resources)
		}
		cg.capacity[o.ID] = limit
		cg.owners = append(cg.owners, o.ID)

		for _, res := range o.Resources {
			if prev, ok := cg.ownerOf[res]; ok {
				return nil, fmt.Errorf("%w: resource %d owned by %d and %d",
					ErrDuplicateOwner, res, prev, o.ID)
			}
			cg.ownerOf[res] = o.ID
		}
	}

	for j := 0; j < inst.Resources; j++ {
		if _, ok := cg.ownerOf[ResourceID(j)]; !ok {
			return nil, fmt.Errorf("%w: resource %d", ErrUnassignedResource, j)
		}
	}

	return cg, nil
}

// OwnerOf returns the owner of a resource.
func (cg *CapacityGraph) OwnerOf(res ResourceID) OwnerID {
	return cg.ownerOf[res]
}

// Capacity returns the load bound for an owner. Unbounded owners report
// their resource count, which is the tightest bound the matching can hit.
func (cg *CapacityGraph) Capacity(o OwnerID) int {
	return cg.capacity[o]
}

// Owners returns owner ids in declaration order.
func (cg *CapacityGraph) Owners() []OwnerID {
	return cg.owners
}
