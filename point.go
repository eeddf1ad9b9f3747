package tnpeff

import (
	"fmt"
	"sort"

	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"
)

// Point is one bin of a measured efficiency curve. X is the bin center and
// ErrXLow+ErrXHigh the bin width.
type Point struct {
	X, Y     float64
	ErrXLow  float64
	ErrXHigh float64
	ErrYLow  float64
	ErrYHigh float64
}

// Low returns the lower edge of the bin.
func (p Point) Low() float64 { return p.X - p.ErrXLow }

// High returns the upper edge of the bin.
func (p Point) High() float64 { return p.X + p.ErrXHigh }

// Degenerate reports whether the point is an unfilled bin: zero value and
// zero errors.
func (p Point) Degenerate() bool {
	return p.Y == 0 && p.ErrYHigh == 0 && p.ErrYLow == 0
}

func (p Point) String() string {
	return fmt.Sprintf("x = %6.4f, y = %6.4f (+%6.4f -%6.4f)", p.X, p.Y, p.ErrYHigh, p.ErrYLow)
}

// PointSet is an efficiency graph, ordered by ascending X.
type PointSet []Point

// FromGraph copies the points of a ROOT graph with errors.
func FromGraph(g rhist.GraphErrors) PointSet {
	return FromS2D(rootcnv.S2D(g))
}

// FromS2D copies the points of a scatter, sorted by X.
func FromS2D(s *hbook.S2D) PointSet {
	ps := make(PointSet, 0, s.Len())
	for _, pt := range s.Points() {
		ps = append(ps, Point{
			X: pt.X, Y: pt.Y,
			ErrXLow: pt.ErrX.Min, ErrXHigh: pt.ErrX.Max,
			ErrYLow: pt.ErrY.Min, ErrYHigh: pt.ErrY.Max,
		})
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].X < ps[j].X })
	return ps
}

// S2D converts the set into an hbook scatter named name.
func (ps PointSet) S2D(name string) *hbook.S2D {
	pts := make([]hbook.Point2D, len(ps))
	for i, p := range ps {
		pts[i] = hbook.Point2D{
			X:    p.X,
			Y:    p.Y,
			ErrX: hbook.Range{Min: p.ErrXLow, Max: p.ErrXHigh},
			ErrY: hbook.Range{Min: p.ErrYLow, Max: p.ErrYHigh},
		}
	}
	s := hbook.NewS2D(pts...)
	if ann := s.Annotation(); ann != nil && name != "" {
		ann["name"] = name
		ann["title"] = name
	}
	return s
}

// Graph converts the set into a TGraphAsymmErrors that groot can write.
func (ps PointSet) Graph(name string) rhist.GraphErrors {
	return rhist.NewGraphAsymmErrorsFrom(ps.S2D(name))
}

// BinEdges returns the lower edge of every bin followed by the upper edge of
// the last one. It returns nil for an empty set.
func (ps PointSet) BinEdges() []float64 {
	if len(ps) == 0 {
		return nil
	}
	edges := make([]float64, 0, len(ps)+1)
	for _, p := range ps {
		edges = append(edges, p.Low())
	}
	return append(edges, ps[len(ps)-1].High())
}

// Len, XY, XError and YError make a PointSet usable as gonum plotter data.

func (ps PointSet) Len() int { return len(ps) }

func (ps PointSet) XY(i int) (float64, float64) { return ps[i].X, ps[i].Y }

func (ps PointSet) XError(i int) (float64, float64) { return ps[i].ErrXLow, ps[i].ErrXHigh }

func (ps PointSet) YError(i int) (float64, float64) { return ps[i].ErrYLow, ps[i].ErrYHigh }
