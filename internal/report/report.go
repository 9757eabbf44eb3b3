// Package report derives histograms and text summaries from allocations.
// It consumes a finished Allocation only and performs no optimization.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/elektrokombinacija/prefalloc/internal/core"
)

// OwnerLoad pairs an owner with its realized load and bound.
type OwnerLoad struct {
	Owner    core.OwnerID
	Load     int
	Capacity int
}

// Summary is the aggregated view of one allocation.
type Summary struct {
	Requesters int
	Assigned   int
	TotalCost  int
	MeanRank   float64

	// RankCounts[r] counts requesters whose assigned resource was their
	// rank-r choice; the final bucket counts unranked assignments.
	RankCounts []int
	// RankPercent mirrors RankCounts as a percentage of all requesters.
	RankPercent []float64

	Loads []OwnerLoad
}

// Summarize aggregates an allocation. maxPrefs fixes the histogram width so
// summaries of different allocations over the same instance line up.
func Summarize(inst *core.Instance, alloc *core.Allocation) *Summary {
	s := &Summary{
		Requesters: len(inst.Requesters),
		Assigned:   len(alloc.Assigned),
		TotalCost:  alloc.TotalCost,
		MeanRank:   alloc.MeanRank(inst.MaxPrefs),
		RankCounts: make([]int, inst.MaxPrefs+1),
	}

	for _, rank := range alloc.Ranks {
		if rank == core.RankUnranked {
			s.RankCounts[inst.MaxPrefs]++
		} else {
			s.RankCounts[rank]++
		}
	}

	s.RankPercent = make([]float64, len(s.RankCounts))
	if s.Requesters > 0 {
		for r, c := range s.RankCounts {
			s.RankPercent[r] = 100 * float64(c) / float64(s.Requesters)
		}
	}

	cg, err := core.NewCapacityGraph(inst)
	if err != nil {
		// Allocations only exist for instances that already passed
		// construction; reaching here is a defect.
		panic(fmt.Sprintf("report: invalid instance behind allocation: %v", err))
	}
	for _, o := range cg.Owners() {
		s.Loads = append(s.Loads, OwnerLoad{
			Owner:    o,
			Load:     alloc.OwnerLoad[o],
			Capacity: cg.Capacity(o),
		})
	}
	sort.Slice(s.Loads, func(i, j int) bool {
		return s.Loads[i].Owner < s.Loads[j].Owner
	})

	return s
}

// barWidth is the character width of a full ASCII bar.
const barWidth = 40

func bar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	n := int(fraction*barWidth + 0.5)
	return strings.Repeat("#", n) + strings.Repeat(".", barWidth-n)
}

// Render writes the text summary: headline numbers, the rank histogram and
// the per-owner load table.
func (s *Summary) Render(w io.Writer) {
	fmt.Fprintf(w, "assigned %d/%d requesters, total cost %d, mean rank %.2f\n",
		s.Assigned, s.Requesters, s.TotalCost, s.MeanRank)

	fmt.Fprintln(w, "rank distribution:")
	for r, pct := range s.RankPercent {
		label := fmt.Sprintf("rank %d", r)
		if r == len(s.RankPercent)-1 {
			label = "unranked"
		}
		fmt.Fprintf(w, "  %-8s %s %5.1f%% (%d)\n", label, bar(pct/100), pct, s.RankCounts[r])
	}

	fmt.Fprintln(w, "owner load:")
	for _, l := range s.Loads {
		frac := 0.0
		if l.Capacity > 0 {
			frac = float64(l.Load) / float64(l.Capacity)
		}
		fmt.Fprintf(w, "  owner %-4d %s %d/%d\n", l.Owner, bar(frac), l.Load, l.Capacity)
	}
}
