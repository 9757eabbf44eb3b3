// Package core defines domain models for preference-based allocation.
package core

import "errors"

// RequesterID is a unique requester identifier.
type RequesterID int

// ResourceID is a unique resource identifier.
type ResourceID int

// OwnerID is a unique owner identifier.
type OwnerID int

// Requester needs exactly one resource. Prefs is ranked best-first and
// holds up to Instance.MaxPrefs distinct resource ids.
type Requester struct {
	ID    RequesterID
	Prefs []ResourceID
}

// Owner holds a capacity-limited set of resources.
type Owner struct {
	ID        OwnerID
	Resources []ResourceID
	Capacity  int // Max simultaneous assignments; Unbounded for no limit
}

// Unbounded marks an owner with no load limit. It behaves as a capacity
// equal to the number of resources the owner holds.
const Unbounded = -1

// Construction-time validation failures. All are fatal to a solve call.
var (
	ErrInvalidPreferenceList = errors.New("invalid preference list")
	ErrInvalidCapacity       = errors.New("invalid capacity")
	ErrUnassignedResource    = errors.New("resource has no owner")
	ErrDuplicateOwner        = errors.New("resource owned by multiple owners")
)

// ErrInfeasible is returned when full allocation is required but not every
// requester can be assigned. It is an expected outcome on capacity-starved
// instances; the solver still returns the best partial allocation with it.
var ErrInfeasible = errors.New("cannot assign every requester")
