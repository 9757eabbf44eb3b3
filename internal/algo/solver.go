// Package algo implements allocation solvers.
package algo

import (
	"sort"

	"github.com/elektrokombinacija/prefalloc/internal/core"
)

// Solver is the interface for allocation algorithms.
type Solver interface {
	// Solve computes an allocation for the instance. Construction errors
	// (bad preference lists, bad ownership) are returned before any
	// algorithmic work. When the instance requires full allocation and
	// not every requester can be assigned, Solve returns the best partial
	// allocation together with core.ErrInfeasible.
	Solve(inst *core.Instance) (*core.Allocation, error)

	// Name returns the algorithm name.
	Name() string
}

// ViolationKind classifies assignment invariant breaches.
type ViolationKind int

const (
	DuplicateResource ViolationKind = iota // Two requesters share a resource
	CapacityExceeded                       // Owner load above capacity
)

// Violation describes an invariant breach in an assignment. A solver that
// returns one has a defect; violations are never a normal outcome.
type Violation struct {
	Kind                   ViolationKind
	Requester1, Requester2 core.RequesterID
	Resource               core.ResourceID
	Owner                  core.OwnerID
	Load, Capacity         int
}

// sortedRequesterIDs returns sorted requester IDs from an assignment map.
func sortedRequesterIDs(a core.Assignment) []core.RequesterID {
	ids := make([]core.RequesterID, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// FindFirstViolation checks an assignment against the injectivity and
// capacity invariants. Returns nil if the assignment is clean.
func FindFirstViolation(inst *core.Instance, cg *core.CapacityGraph, a core.Assignment) *Violation {
	ids := sortedRequesterIDs(a)

	holder := make(map[core.ResourceID]core.RequesterID, len(a))
	for _, id := range ids {
		res := a[id]
		if prev, taken := holder[res]; taken {
			return &Violation{
				Kind:       DuplicateResource,
				Requester1: prev,
				Requester2: id,
				Resource:   res,
			}
		}
		holder[res] = id
	}

	load := make(map[core.OwnerID]int, len(inst.Owners))
	for _, id := range ids {
		load[cg.OwnerOf(a[id])]++
	}
	for _, o := range cg.Owners() {
		if load[o] > cg.Capacity(o) {
			return &Violation{
				Kind:     CapacityExceeded,
				Owner:    o,
				Load:     load[o],
				Capacity: cg.Capacity(o),
			}
		}
	}

	return nil
}
