// Package registry holds the static catalog of Kaggle badges the collector
// knows how to reason about. The catalog is declarative reference data: every
// badge has a stable identifier, a display name, a category, the phase it is
// scheduled in, and a flag saying whether the collector can earn it without a
// human in the loop.
//
// A Registry is an explicit value handed to the tracker and the phase runner.
// Nothing in this package mutates after construction.
package registry

import "fmt"

// Category groups badges the way Kaggle's profile page does.
type Category string

const (
	CategoryCoder       Category = "Coder"
	CategoryDataset     Category = "Dataset"
	CategoryModel       Category = "Model"
	CategoryCompetition Category = "Competition"
	CategoryCommunity   Category = "Community"
	CategoryMilestone   Category = "Milestone"
)

// PhaseMin and PhaseMax bound the valid phase numbers.
const (
	PhaseMin = 1
	PhaseMax = 5
)

// BadgeDefinition describes one badge in the catalog.
type BadgeDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Phase       int      `json:"phase"`
	Automatable bool     `json:"automatable"`
	Description string   `json:"description"`
}

// Registry is an immutable badge catalog with index structures for lookup.
type Registry struct {
	badges []BadgeDefinition
	byID   map[string]int
}

// New builds a Registry from the given definitions. It returns an error when
// the catalog violates its own invariants: duplicate ids, a phase outside
// 1-5, or a phase with no badges at all.
func New(badges []BadgeDefinition) (*Registry, error) {
	r := &Registry{
		badges: make([]BadgeDefinition, len(badges)),
		byID:   make(map[string]int, len(badges)),
	}
	copy(r.badges, badges)

	phaseSeen := make(map[int]bool)
	for i, b := range r.badges {
		if b.ID == "" {
			return nil, fmt.Errorf("registry: badge at index %d has empty id", i)
		}
		if _, dup := r.byID[b.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate badge id %q", b.ID)
		}
		if b.Phase < PhaseMin || b.Phase > PhaseMax {
			return nil, fmt.Errorf("registry: badge %q has invalid phase %d", b.ID, b.Phase)
		}
		r.byID[b.ID] = i
		phaseSeen[b.Phase] = true
	}
	for p := PhaseMin; p <= PhaseMax; p++ {
		if !phaseSeen[p] {
			return nil, fmt.Errorf("registry: phase %d has no badges", p)
		}
	}
	return r, nil
}

// MustNew is New that panics on an invalid catalog. It exists for the
// compiled-in default catalog, which is validated by tests.
func MustNew(badges []BadgeDefinition) *Registry {
	r, err := New(badges)
	if err != nil {
		panic(err)
	}
	return r
}

// ByID looks a badge up by its identifier. The second return value reports
// whether the badge exists.
func (r *Registry) ByID(id string) (BadgeDefinition, bool) {
	i, ok := r.byID[id]
	if !ok {
		return BadgeDefinition{}, false
	}
	return r.badges[i], true
}

// Has reports whether the catalog contains the given badge id.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// ByPhase returns the badges scheduled in the given phase, in catalog order.
func (r *Registry) ByPhase(phase int) []BadgeDefinition {
	var out []BadgeDefinition
	for _, b := range r.badges {
		if b.Phase == phase {
			out = append(out, b)
		}
	}
	return out
}

// Automatable returns every badge the collector can earn without a human,
// in catalog order.
func (r *Registry) Automatable() []BadgeDefinition {
	var out []BadgeDefinition
	for _, b := range r.badges {
		if b.Automatable {
			out = append(out, b)
		}
	}
	return out
}

// All returns the full catalog in declaration order. The slice is a copy;
// callers may not mutate the registry through it.
func (r *Registry) All() []BadgeDefinition {
	out := make([]BadgeDefinition, len(r.badges))
	copy(out, r.badges)
	return out
}

// Len returns the number of badges in the catalog.
func (r *Registry) Len() int {
	return len(r.badges)
}

// IDs returns every badge id in catalog order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.badges))
	for i, b := range r.badges {
		out[i] = b.ID
	}
	return out
}
