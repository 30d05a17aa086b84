package promtext

import "github.com/avelarde/attendctl-go/internal/core/domain"

// Group is a set of samples sharing a name prefix.
type Group struct {
	// Key is the shared prefix (the name segment before the first
	// underscore, or the whole name).
	Key string

	// Samples holds the group's members in emission order.
	Samples []domain.Sample
}

// ActiveCount returns how many samples in the group carry a numeric
// value greater than zero.
func (g *Group) ActiveCount() int {
	n := 0
	for i := range g.Samples {
		if v, ok := g.Samples[i].Float(); ok && v > 0 {
			n++
		}
	}
	return n
}

// GroupByPrefix groups samples by their name prefix. Group order is
// the first-seen order of each key in the input sequence; sample
// order inside a group is preserved.
func GroupByPrefix(samples []domain.Sample) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, s := range samples {
		key := s.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Samples = append(groups[i].Samples, s)
	}

	return groups
}
