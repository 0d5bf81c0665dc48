package guard

import "github.com/gridwerk/microgrid/core/model"

// Statistics is a read-only observability snapshot of a GuardRail.
type Statistics struct {
	TotalConstraints    int                 `json:"total_constraints"`
	ViolationCount      int                 `json:"violation_count"`
	BlockedActionsCount int                 `json:"blocked_actions_count"`
	ComponentsMonitored int                 `json:"components_monitored"`
	RecentBlocks        []model.BlockRecord `json:"recent_blocks"`
}

// Statistics returns a snapshot of registered constraints and recorded
// violations. RecentBlocks holds at most the last 10 block records.
func (g *GuardRail) Statistics() Statistics {
	total := 0
	for _, list := range g.constraints {
		total += len(list)
	}
	recent := g.blocked
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	out := make([]model.BlockRecord, len(recent))
	copy(out, recent)

	return Statistics{
		TotalConstraints:    total,
		ViolationCount:      g.violationCount,
		BlockedActionsCount: g.blockedTotal,
		ComponentsMonitored: len(g.constraints),
		RecentBlocks:        out,
	}
}

// Constraints returns a copy of the constraints registered for a component.
func (g *GuardRail) Constraints(component string) []model.Constraint {
	list := g.constraints[component]
	out := make([]model.Constraint, len(list))
	copy(out, list)
	return out
}
