package tnpeff

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrIncompatibleGraphs is returned when two graphs cannot be divided: one of
// them is empty or their bin correspondence is ambiguous.
var ErrIncompatibleGraphs = errors.New("incompatible graphs")

// NumeratorZero selects how Divide treats a bin whose numerator is zero.
type NumeratorZero int

const (
	// PropagateNaN divides anyway. The relative errors are undefined, so the
	// ratio point carries NaN errors.
	PropagateNaN NumeratorZero = iota
	// SkipNumeratorZero drops the bin, like a zero denominator.
	SkipNumeratorZero
	// AbsoluteError keeps a zero ratio with errors errNum/yDen.
	AbsoluteError
)

var numeratorZeroNames = map[NumeratorZero]string{
	PropagateNaN:      "nan",
	SkipNumeratorZero: "skip",
	AbsoluteError:     "absolute",
}

func (z NumeratorZero) String() string {
	if s, ok := numeratorZeroNames[z]; ok {
		return s
	}
	return "unknown"
}

// ParseNumeratorZero parses one of "nan", "skip" or "absolute".
func ParseNumeratorZero(s string) (NumeratorZero, error) {
	for z, name := range numeratorZeroNames {
		if strings.EqualFold(s, name) {
			return z, nil
		}
	}
	return PropagateNaN, errors.Errorf("invalid numerator-zero policy %q", s)
}

// Divider computes bin-by-bin ratios of two efficiency graphs that may have
// been binned differently.
type Divider struct {
	// EdgeTolerance is the absolute-or-relative tolerance used when matching
	// bin edges. Zero requires exact equality.
	EdgeTolerance float64
	NumeratorZero NumeratorZero
}

func (d Divider) sameEdge(a, b float64) bool {
	if d.EdgeTolerance <= 0 {
		return a == b
	}
	return scalar.EqualWithinAbsOrRel(a, b, d.EdgeTolerance, d.EdgeTolerance)
}

func (d Divider) contains(edges []float64, v float64) bool {
	for _, e := range edges {
		if d.sameEdge(e, v) {
			return true
		}
	}
	return false
}

// IntersectEdges returns the edges of a that also appear in b, in the order
// of a.
func (d Divider) IntersectEdges(a, b []float64) []float64 {
	var common []float64
	for _, e := range a {
		if d.contains(b, e) {
			common = append(common, e)
		}
	}
	return common
}

func (d Divider) indicesOf(edges, common []float64) []int {
	var idx []int
	for i, e := range edges {
		if d.contains(common, e) {
			idx = append(idx, i)
		}
	}
	return idx
}

// OverlapIndices returns, for each input, the ascending indices of the bin
// edges shared by both inputs, together with the shared edges.
// The bin starting at a shared edge i is a[ia[i]] and b[ib[i]].
func (d Divider) OverlapIndices(a, b PointSet) (ia, ib []int, common []float64) {
	ea, eb := a.BinEdges(), b.BinEdges()
	common = d.IntersectEdges(ea, eb)
	return d.indicesOf(ea, common), d.indicesOf(eb, common), common
}

// Divide returns num/den for every bin delimited by two consecutive shared
// edges. Bins with a zero denominator are left out. The X coordinates and
// X errors of the ratio are the numerator's.
func (d Divider) Divide(num, den PointSet) (PointSet, error) {
	if len(num) == 0 || len(den) == 0 {
		return nil, errors.Wrapf(ErrIncompatibleGraphs, "cannot divide graphs with %d and %d points", len(num), len(den))
	}

	ia, ib, common := d.OverlapIndices(num, den)
	if len(ia) != len(ib) {
		return nil, errors.Wrapf(ErrIncompatibleGraphs, "ambiguous bin correspondence: %d vs %d shared edges", len(ia), len(ib))
	}

	var ratio PointSet
	for i := 0; i+1 < len(common); i++ {
		pn, pd := num[ia[i]], den[ib[i]]
		if pd.Y == 0 {
			continue
		}

		r := pn.Y / pd.Y
		errLow := r * math.Hypot(pn.ErrYLow/pn.Y, pd.ErrYLow/pd.Y)
		errHigh := r * math.Hypot(pn.ErrYHigh/pn.Y, pd.ErrYHigh/pd.Y)
		if pn.Y == 0 {
			switch d.NumeratorZero {
			case SkipNumeratorZero:
				continue
			case AbsoluteError:
				errLow = pn.ErrYLow / pd.Y
				errHigh = pn.ErrYHigh / pd.Y
			}
		}

		ratio = append(ratio, Point{
			X:        pn.X,
			Y:        r,
			ErrXLow:  pn.ErrXLow,
			ErrXHigh: pn.ErrXHigh,
			ErrYLow:  errLow,
			ErrYHigh: errHigh,
		})
	}
	return ratio, nil
}
