package algo

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/elektrokombinacija/prefalloc/internal/core"
)

// MinCostFlow computes a minimum-cost allocation by successive shortest
// augmenting paths with node potentials.
//
// The instance is modelled as a flow network: source -> requester (cap 1),
// requester -> resource (cap 1, cost = preference rank, or k if unranked),
// resource -> owner (cap 1), owner -> sink (cap = owner capacity). Every
// requester-resource pair is an edge; unranked pairs are expensive, never
// forbidden. Each augmentation pushes one unit along the shortest residual
// path under reduced costs, so Dijkstra stays valid throughout and the
// result is a minimum-cost maximum flow: saturation first, then cost.
//
// Ties are deterministic: edges are built in ascending resource order and
// Dijkstra breaks equal distances toward the lower node index, so among
// equal-cost optima a requester ends up on the lowest workable resource
// index.
type MinCostFlow struct{}

// NewMinCostFlow creates the min-cost-flow solver.
func NewMinCostFlow() *MinCostFlow {
	return &MinCostFlow{}
}

func (s *MinCostFlow) Name() string { return "MinCostFlow" }

// Solve implements Solver.
func (s *MinCostFlow) Solve(inst *core.Instance) (*core.Allocation, error) {
	cm, err := core.NewCostModel(inst)
	if err != nil {
		return nil, err
	}
	cg, err := core.NewCapacityGraph(inst)
	if err != nil {
		return nil, err
	}

	net := buildNetwork(inst, cm, cg)
	for range inst.Requesters {
		if !net.augment() {
			break // Max flow reached below n
		}
	}

	alloc := core.NewAllocation(inst, cm, cg, net.assignment(inst))
	if inst.RequireFull && !alloc.Feasible {
		return alloc, fmt.Errorf("%w: %d of %d requesters unassigned",
			core.ErrInfeasible, len(alloc.Unassigned), len(inst.Requesters))
	}
	return alloc, nil
}

const distInf = math.MaxInt / 2

// flowEdge is half of a residual arc pair; edge i and i^1 are reverses.
type flowEdge struct {
	to   int
	cap  int // Remaining residual capacity
	cost int
}

// network is the residual graph state for one solve. Node layout:
// 0 = source, 1..n = requesters, n+1..n+m = resources,
// n+m+1..n+m+w = owners, last = sink.
type network struct {
	edges []flowEdge
	adj   [][]int // Node -> indices into edges

	source, sink int
	reqBase      int // Node of requester i = reqBase + i
	resBase      int // Node of resource j = resBase + j

	pot      []int // Node potentials (Johnson reweighting)
	dist     []int
	prevEdge []int
}

func buildNetwork(inst *core.Instance, cm *core.CostModel, cg *core.CapacityGraph) *network {
	n := len(inst.Requesters)
	m := inst.Resources
	owners := cg.Owners()
	w := len(owners)

	nodes := 1 + n + m + w + 1
	net := &network{
		adj:      make([][]int, nodes),
		source:   0,
		sink:     nodes - 1,
		reqBase:  1,
		resBase:  1 + n,
		pot:      make([]int, nodes),
		dist:     make([]int, nodes),
		prevEdge: make([]int, nodes),
	}

	ownerNode := make(map[core.OwnerID]int, w)
	for wi, o := range owners {
		ownerNode[o] = 1 + n + m + wi
	}

	for i, r := range inst.Requesters {
		net.addEdge(net.source, net.reqBase+i, 1, 0)
		// Dense requester->resource edges, ascending resource index.
		for j := 0; j < m; j++ {
			net.addEdge(net.reqBase+i, net.resBase+j, 1, cm.Cost(r.ID, core.ResourceID(j)))
		}
	}
	for j := 0; j < m; j++ {
		net.addEdge(net.resBase+j, ownerNode[cg.OwnerOf(core.ResourceID(j))], 1, 0)
	}
	for _, o := range owners {
		net.addEdge(ownerNode[o], net.sink, cg.Capacity(o), 0)
	}

	return net
}

func (net *network) addEdge(from, to, cap, cost int) {
	net.adj[from] = append(net.adj[from], len(net.edges))
	net.edges = append(net.edges, flowEdge{to: to, cap: cap, cost: cost})
	net.adj[to] = append(net.adj[to], len(net.edges))
	net.edges = append(net.edges, flowEdge{to: from, cap: 0, cost: -cost})
}

// augment pushes one unit of flow along the shortest residual path.
// Returns false when the sink is unreachable, i.e. max flow is reached.
func (net *network) augment() bool {
	if !net.dijkstra() {
		return false
	}

	// Raise potentials by the found distances. Unreachable nodes keep
	// their potential; no residual arc leaves the reachable set toward
	// them, so their reduced costs cannot go stale.
	for v := range net.pot {
		if net.dist[v] < distInf {
			net.pot[v] += net.dist[v]
		}
	}

	// Walk the path back from the sink, moving one unit of capacity from
	// each forward arc to its reverse.
	for v := net.sink; v != net.source; {
		eid := net.prevEdge[v]
		net.edges[eid].cap--
		net.edges[eid^1].cap++
		v = net.edges[eid^1].to
	}
	return true
}

// distNode is a priority queue entry for Dijkstra.
type distNode struct {
	v     int
	d     int
	index int // heap index
}

type distHeap []*distNode

func (h distHeap) Len() int { return len(h) }
func (h distHeap) Less(i, j int) bool {
	if h[i].d != h[j].d {
		return h[i].d < h[j].d
	}
	return h[i].v < h[j].v // Deterministic tie-break
}
func (h distHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *distHeap) Push(x any) {
	n := x.(*distNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// dijkstra computes shortest residual distances from the source under
// reduced costs. Returns true if the sink is reachable.
func (net *network) dijkstra() bool {
	for v := range net.dist {
		net.dist[v] = distInf
		net.prevEdge[v] = -1
	}
	net.dist[net.source] = 0

	open := &distHeap{}
	heap.Init(open)
	heap.Push(open, &distNode{v: net.source, d: 0})

	done := make([]bool, len(net.adj))

	for open.Len() > 0 {
		cur := heap.Pop(open).(*distNode)
		if done[cur.v] {
			continue
		}
		done[cur.v] = true

		for _, eid := range net.adj[cur.v] {
			e := net.edges[eid]
			if e.cap <= 0 || done[e.to] {
				continue
			}
			rc := e.cost + net.pot[cur.v] - net.pot[e.to]
			if rc < 0 {
				// A negative reduced cost on a residual arc means the
				// potential update broke LP duality. That is a solver
				// defect, never an instance property.
				panic(fmt.Sprintf("mincostflow: negative reduced cost %d on arc %d->%d", rc, cur.v, e.to))
			}
			if nd := net.dist[cur.v] + rc; nd < net.dist[e.to] {
				net.dist[e.to] = nd
				net.prevEdge[e.to] = eid
				heap.Push(open, &distNode{v: e.to, d: nd})
			}
		}
	}

	return net.dist[net.sink] < distInf
}

// assignment extracts the requester->resource mapping from the saturated
// requester->resource arcs.
func (net *network) assignment(inst *core.Instance) core.Assignment {
	a := make(core.Assignment, len(inst.Requesters))
	for i, r := range inst.Requesters {
		for _, eid := range net.adj[net.reqBase+i] {
			e := net.edges[eid]
			if e.to >= net.resBase && e.to < net.resBase+inst.Resources && eid%2 == 0 && e.cap == 0 {
				a[r.ID] = core.ResourceID(e.to - net.resBase)
				break
			}
		}
	}
	return a
}
