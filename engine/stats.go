package engine

import "fmt"

// Stats collects node and cutoff counts for one search.
type Stats struct {
	Nodes   uint64 // positions visited, root included
	Leaves  uint64 // static evaluations
	Cutoffs uint64 // move loops abandoned because beta <= alpha
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes %d leaves %d cutoffs %d", s.Nodes, s.Leaves, s.Cutoffs)
}
