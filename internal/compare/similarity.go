// Package compare implements the structural comparator: scoring how well
// a parsed query matches a candidate rustdoc item.
package compare

import "math"

// DiscreteSimilarity is a coarse, categorical match grade.
type DiscreteSimilarity int

const (
	// Equivalent means the two sides are the same.
	Equivalent DiscreteSimilarity = iota
	// Subequal means a partial match: an unbound generic against a
	// concrete type, or a reference/pointer against its pointee.
	Subequal
	// Different means no meaningful match.
	Different
)

// Score maps a grade to its contribution to a Similarities mean.
func (d DiscreteSimilarity) Score() float32 {
	switch d {
	case Equivalent:
		return 0.0
	case Subequal:
		return 0.25
	default:
		return 1.0
	}
}

// Similarity is either a DiscreteSimilarity or a continuous [0,1] score
// (used for name similarity). Exactly one of the two is meaningful;
// IsContinuous reports which.
type Similarity struct {
	discrete   DiscreteSimilarity
	continuous float32
	isCont     bool
}

// Disc builds a discrete Similarity.
func Disc(d DiscreteSimilarity) Similarity { return Similarity{discrete: d} }

// Cont builds a continuous Similarity, clamped to [0,1].
func Cont(v float32) Similarity {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return Similarity{continuous: v, isCont: true}
}

// Score returns this similarity's numeric contribution, lower is better.
func (s Similarity) Score() float32 {
	if s.isCont {
		return s.continuous
	}
	return s.discrete.Score()
}

// Similarities is the full vector of per-field similarities produced by
// comparing a query against one candidate item.
type Similarities []Similarity

// Score is the mean of every component score. An empty vector (e.g. from
// a query with neither a name nor a signature) scores NaN rather than 0, so it never
// satisfies a `< threshold` admission check and never sorts as a best
// match — mirroring the 0.0/0.0 division in the original comparator.
func (s Similarities) Score() float32 {
	if len(s) == 0 {
		return float32(math.NaN())
	}
	var sum float32
	for _, sim := range s {
		sum += sim.Score()
	}
	return sum / float32(len(s))
}

// Less orders Similarities by ascending score (best matches first).
func (s Similarities) Less(other Similarities) bool {
	return s.Score() < other.Score()
}
