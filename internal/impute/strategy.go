package impute

import (
	"context"
	"sort"

	"loggap/internal/logdata"
)

// Strategy is one gap-filling method. Implementations never mutate the
// input frame; they clone it and write estimates into the clone only.
type Strategy interface {
	// Name identifies the strategy in pipeline results, exports and logs.
	Name() string
	// Impute returns a derived frame with some or all missing cells filled.
	Impute(ctx context.Context, frame *logdata.Frame) (*logdata.Frame, error)
}

// neighbor is a candidate row with its squared distance to the query row.
type neighbor struct {
	dist  float64
	value float64
}

// neighborSet keeps the k nearest candidates seen so far, sorted by
// distance. Insertion keeps the set bounded so scanning n rows costs
// O(n·k) instead of sorting all candidates.
type neighborSet struct {
	k     int
	items []neighbor
}

func newNeighborSet(k int) *neighborSet {
	return &neighborSet{k: k, items: make([]neighbor, 0, k+1)}
}

func (s *neighborSet) add(dist, value float64) {
	if len(s.items) < s.k {
		s.items = append(s.items, neighbor{dist: dist, value: value})
		sort.Slice(s.items, func(a, b int) bool { return s.items[a].dist < s.items[b].dist })
		return
	}
	if dist < s.items[len(s.items)-1].dist {
		s.items[len(s.items)-1] = neighbor{dist: dist, value: value}
		sort.Slice(s.items, func(a, b int) bool { return s.items[a].dist < s.items[b].dist })
	}
}

func (s *neighborSet) full() bool {
	return len(s.items) == s.k
}

func (s *neighborSet) size() int {
	return len(s.items)
}

// mean returns the unweighted mean of the neighbor values.
func (s *neighborSet) mean() float64 {
	sum := 0.0
	for _, n := range s.items {
		sum += n.value
	}
	return sum / float64(len(s.items))
}
