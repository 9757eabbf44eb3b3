// Package main provides instance generation for allocation benchmarks.
// Generates deterministic instances with seeded random preference sampling.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/elektrokombinacija/prefalloc/internal/core"
)

// Params defines parameters for instance generation. A TOML file with the
// same keys can set them in bulk; flags override.
type Params struct {
	Seed        int64 `toml:"seed"`
	Count       int   `toml:"count"` // Instances to generate (seed increments)
	Requesters  int   `toml:"requesters"`
	Resources   int   `toml:"resources"`
	MaxPrefs    int   `toml:"max_prefs"`
	Owners      int   `toml:"owners"`
	CapMin      int   `toml:"cap_min"` // Per-owner capacity range
	CapMax      int   `toml:"cap_max"`
	RequireFull bool  `toml:"require_full"`
}

func defaultParams() Params {
	return Params{
		Seed:       42,
		Count:      10,
		Requesters: 40,
		Resources:  60,
		MaxPrefs:   5,
		Owners:     8,
		CapMin:     2,
		CapMax:     10,
	}
}

// generateInstance samples one instance: each requester draws MaxPrefs
// distinct resources via a permutation, resources are dealt to owners
// round-robin after a shuffle, capacities are sampled from [CapMin, CapMax].
func generateInstance(p Params, seed int64) *core.Instance {
	rng := rand.New(rand.NewSource(seed))

	inst := core.NewInstance()
	inst.Resources = p.Resources
	inst.MaxPrefs = p.MaxPrefs
	inst.RequireFull = p.RequireFull

	for i := 0; i < p.Requesters; i++ {
		perm := rng.Perm(p.Resources)
		prefs := make([]core.ResourceID, p.MaxPrefs)
		for j := range prefs {
			prefs[j] = core.ResourceID(perm[j])
		}
		inst.Requesters = append(inst.Requesters, &core.Requester{
			ID:    core.RequesterID(i),
			Prefs: prefs,
		})
	}

	for w := 0; w < p.Owners; w++ {
		inst.Owners = append(inst.Owners, &core.Owner{
			ID:       core.OwnerID(w),
			Capacity: p.CapMin + rng.Intn(p.CapMax-p.CapMin+1),
		})
	}
	for _, j := range rng.Perm(p.Resources) {
		o := inst.Owners[j%p.Owners]
		o.Resources = append(o.Resources, core.ResourceID(j))
	}

	return inst
}

func loadParams(path string) (Params, error) {
	p := defaultParams()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}

func main() {
	configPath := flag.String("config", "", "TOML parameter file")
	outDir := flag.String("out", "instances", "Output directory")
	seed := flag.Int64("seed", 0, "Override base seed (0 = keep config value)")
	count := flag.Int("count", 0, "Override instance count (0 = keep config value)")
	flag.Parse()

	p, err := loadParams(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		p.Seed = *seed
	}
	if *count != 0 {
		p.Count = *count
	}
	if p.CapMax < p.CapMin {
		log.Fatalf("cap_max %d below cap_min %d", p.CapMax, p.CapMin)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	for i := 0; i < p.Count; i++ {
		s := p.Seed + int64(i)
		inst := generateInstance(p, s)
		if err := inst.Validate(); err != nil {
			log.Fatalf("generated invalid instance (seed %d): %v", s, err)
		}

		name := fmt.Sprintf("prefalloc_%dx%d_k%d_%d", p.Requesters, p.Resources, p.MaxPrefs, s)
		path := filepath.Join(*outDir, name+".json")
		if err := core.SaveInstance(path, name, inst); err != nil {
			log.Fatal(err)
		}
		fmt.Println(path)
	}
}
