package core

// CostModel derives per-(requester, resource) costs from ranked preference
// lists. Rank r (0-indexed) costs r; any unranked resource costs MaxPrefs.
// There is no forbidden pair, only an expensive one, so every requester can
// always be routed to every resource.
type CostModel struct {
	maxPrefs int
	rank     map[RequesterID]map[ResourceID]int
}

// NewCostModel builds a cost model from a validated instance. Memory is
// O(n·k): only ranked pairs are stored, unranked pairs fall through to the
// default cost.
func NewCostModel(inst *Instance) (*CostModel, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	cm := &CostModel{
		maxPrefs: inst.MaxPrefs,
		rank:     make(map[RequesterID]map[ResourceID]int, len(inst.Requesters)),
	}
	for _, r := range inst.Requesters {
		ranks := make(map[ResourceID]int, len(r.Prefs))
		for i, res := range r.Prefs {
			ranks[res] = i
		}
		cm.rank[r.ID] = ranks
	}
	return cm, nil
}

// Cost returns the assignment cost for a pair, in [0, MaxPrefs].
func (cm *CostModel) Cost(req RequesterID, res ResourceID) int {
	if r, ok := cm.rank[req][res]; ok {
		return r
	}
	return cm.maxPrefs
}

// Rank returns the 0-indexed preference rank of a resource for a requester,
// or RankUnranked if the requester never ranked it.
func (cm *CostModel) Rank(req RequesterID, res ResourceID) int {
	if r, ok := cm.rank[req][res]; ok {
		return r
	}
	return RankUnranked
}

// MaxPrefs returns k, the cost charged for an unranked assignment.
func (cm *CostModel) MaxPrefs() int {
	return cm.maxPrefs
}
