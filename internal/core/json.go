package core

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSON schema for instance files produced by tools/gen_instances and
// consumed by tools/run_benchmarks and the CLI.

type requesterJSON struct {
	ID    int   `json:"id"`
	Prefs []int `json:"prefs"`
}

type ownerJSON struct {
	ID        int   `json:"id"`
	Resources []int `json:"resources"`
	Capacity  int   `json:"capacity"` // -1 = unbounded
}

type instanceJSON struct {
	Name        string          `json:"name"`
	Requesters  []requesterJSON `json:"requesters"`
	Resources   int             `json:"resources"`
	Owners      []ownerJSON     `json:"owners"`
	MaxPrefs    int             `json:"max_prefs"`
	RequireFull bool            `json:"require_full"`
}

// MarshalInstance encodes an instance with a name into indented JSON.
func MarshalInstance(name string, inst *Instance) ([]byte, error) {
	out := instanceJSON{
		Name:        name,
		Resources:   inst.Resources,
		MaxPrefs:    inst.MaxPrefs,
		RequireFull: inst.RequireFull,
	}
	for _, r := range inst.Requesters {
		prefs := make([]int, len(r.Prefs))
		for i, p := range r.Prefs {
			prefs[i] = int(p)
		}
		out.Requesters = append(out.Requesters, requesterJSON{ID: int(r.ID), Prefs: prefs})
	}
	for _, o := range inst.Owners {
		resources := make([]int, len(o.Resources))
		for i, res := range o.Resources {
			resources[i] = int(res)
		}
		out.Owners = append(out.Owners, ownerJSON{ID: int(o.ID), Resources: resources, Capacity: o.Capacity})
	}
	return json.MarshalIndent(out, "", "  ")
}

// UnmarshalInstance decodes an instance file. The instance is validated
// before being returned.
func UnmarshalInstance(data []byte) (name string, inst *Instance, err error) {
	var in instanceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return "", nil, err
	}

	inst = &Instance{
		Resources:   in.Resources,
		MaxPrefs:    in.MaxPrefs,
		RequireFull: in.RequireFull,
	}
	for _, r := range in.Requesters {
		prefs := make([]ResourceID, len(r.Prefs))
		for i, p := range r.Prefs {
			prefs[i] = ResourceID(p)
		}
		inst.Requesters = append(inst.Requesters, &Requester{ID: RequesterID(r.ID), Prefs: prefs})
	}
	for _, o := range in.Owners {
		resources := make([]ResourceID, len(o.Resources))
		for i, res := range o.Resources {
			resources[i] = ResourceID(res)
		}
		inst.Owners = append(inst.Owners, &Owner{ID: OwnerID(o.ID), Resources: resources, Capacity: o.Capacity})
	}

	if err := inst.Validate(); err != nil {
		return "", nil, fmt.Errorf("instance %q: %w", in.Name, err)
	}
	return in.Name, inst, nil
}

// LoadInstance reads and validates an instance file.
func LoadInstance(path string) (string, *Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return UnmarshalInstance(data)
}

// SaveInstance writes an instance file.
func SaveInstance(path, name string, inst *Instance) error {
	data, err := MarshalInstance(name, inst)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
