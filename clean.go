package tnpeff

import "math"

// CleanDegenerate removes the unfilled bins from the set in place and returns
// their original indices in ascending order. A second call on the same set
// removes nothing.
func (ps *PointSet) CleanDegenerate() []int {
	var removed []int
	for i, p := range *ps {
		if p.Degenerate() {
			removed = append(removed, i)
		}
	}

	// highest index first, so the lower ones stay valid
	s := *ps
	for j := len(removed) - 1; j >= 0; j-- {
		i := removed[j]
		s = append(s[:i], s[i+1:]...)
	}
	*ps = s
	return removed
}

// ClampHighEdge limits the upper error of every point so that y+errYHigh
// does not exceed 1. It returns the number of points changed.
func (ps PointSet) ClampHighEdge() int {
	n := 0
	for i, p := range ps {
		if p.Y+p.ErrYHigh <= 1 {
			continue
		}
		if e := math.Max(0, 1-p.Y); e != p.ErrYHigh {
			ps[i].ErrYHigh = e
			n++
		}
	}
	return n
}
