package tnpeff

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectEdges(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
		a, b []float64
		want []float64
	}{
		{"identical", 0, []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{0, 1, 2}},
		{"partial", 0, []float64{0, 1, 2, 3}, []float64{0.5, 1, 2, 2.5}, []float64{1, 2}},
		{"disjoint", 0, []float64{0, 1}, []float64{2, 3}, nil},
		{"exact", 0, []float64{0.3000001, 1}, []float64{0.3, 1}, []float64{1}},
		{"tolerance", 1e-6, []float64{0.3000001, 1}, []float64{0.3, 1}, []float64{0.3000001, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Divider{EdgeTolerance: tt.tol}
			assert.Equal(t, tt.want, d.IntersectEdges(tt.a, tt.b))
		})
	}
}

func TestOverlapIndices(t *testing.T) {
	a := binned([]float64{0, 1, 2, 3}, []float64{0.5, 0.6, 0.7}, 0.1)
	b := binned([]float64{0.5, 1, 2, 2.5}, []float64{0.4, 0.5, 0.6}, 0.1)

	ia, ib, common := Divider{}.OverlapIndices(a, b)
	assert.Equal(t, []int{1, 2}, ia)
	assert.Equal(t, []int{1, 2}, ib)
	assert.Equal(t, []float64{1, 2}, common)
}

func TestDivideSameBinning(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	num := binned(edges, []float64{0.8, 0.9, 0.6}, 0.03)
	den := binned(edges, []float64{0.4, 0.9, 0.6}, 0.04)

	ratio, err := Divider{}.Divide(num, den)
	require.NoError(t, err)

	require.Len(t, ratio, 3)
	for i, p := range ratio {
		assert.Equal(t, num[i].X, p.X)
		assert.Equal(t, num[i].ErrXLow, p.ErrXLow)
		assert.Equal(t, num[i].ErrXHigh, p.ErrXHigh)
		assert.InDelta(t, num[i].Y/den[i].Y, p.Y, 1e-12)
	}

	want := 2 * math.Hypot(0.03/0.8, 0.04/0.4)
	assert.InDelta(t, want, ratio[0].ErrYLow, 1e-12)
	assert.InDelta(t, want, ratio[0].ErrYHigh, 1e-12)
}

func TestDividePartialOverlap(t *testing.T) {
	num := binned([]float64{0, 1, 2, 3}, []float64{0.5, 0.6, 0.7}, 0.1)
	den := binned([]float64{0.5, 1, 2, 2.5}, []float64{0.4, 0.3, 0.6}, 0.1)

	ratio, err := Divider{}.Divide(num, den)
	require.NoError(t, err)
	require.Len(t, ratio, 1)
	assert.Equal(t, 1.5, ratio[0].X)
	assert.InDelta(t, 2.0, ratio[0].Y, 1e-12)
}

func TestDivideWithinTolerance(t *testing.T) {
	num := binned([]float64{0, 1, 2}, []float64{0.8, 0.9}, 0.01)
	den := binned([]float64{0, 1.0000001, 2}, []float64{0.4, 0.9}, 0.01)

	ratio, err := Divider{EdgeTolerance: 1e-6}.Divide(num, den)
	require.NoError(t, err)
	require.Len(t, ratio, 2)
	assert.InDelta(t, 2.0, ratio[0].Y, 1e-12)
	assert.InDelta(t, 1.0, ratio[1].Y, 1e-12)
	assert.Equal(t, num[1].X, ratio[1].X)
}

func TestDivideZeroDenominator(t *testing.T) {
	edges := []float64{0, 1, 2, 3}
	num := binned(edges, []float64{0.5, 0.6, 0.7}, 0.1)
	den := binned(edges, []float64{0.5, 0, 0.7}, 0.1)

	ratio, err := Divider{}.Divide(num, den)
	require.NoError(t, err)
	require.Len(t, ratio, 2)
	assert.Equal(t, 0.5, ratio[0].X)
	assert.Equal(t, 2.5, ratio[1].X)
}

func TestDivideNumeratorZero(t *testing.T) {
	edges := []float64{0, 1, 2}
	num := binned(edges, []float64{0, 0.5}, 0.1)
	den := binned(edges, []float64{0.5, 0.5}, 0.1)

	t.Run("nan", func(t *testing.T) {
		ratio, err := Divider{NumeratorZero: PropagateNaN}.Divide(num, den)
		require.NoError(t, err)
		require.Len(t, ratio, 2)
		assert.Equal(t, 0.0, ratio[0].Y)
		assert.True(t, math.IsNaN(ratio[0].ErrYLow))
		assert.True(t, math.IsNaN(ratio[0].ErrYHigh))
	})
	t.Run("skip", func(t *testing.T) {
		ratio, err := Divider{NumeratorZero: SkipNumeratorZero}.Divide(num, den)
		require.NoError(t, err)
		require.Len(t, ratio, 1)
		assert.Equal(t, 1.5, ratio[0].X)
	})
	t.Run("absolute", func(t *testing.T) {
		ratio, err := Divider{NumeratorZero: AbsoluteError}.Divide(num, den)
		require.NoError(t, err)
		require.Len(t, ratio, 2)
		assert.Equal(t, 0.0, ratio[0].Y)
		assert.InDelta(t, 0.2, ratio[0].ErrYLow, 1e-12)
		assert.InDelta(t, 0.2, ratio[0].ErrYHigh, 1e-12)
	})
}

func TestDivideEmpty(t *testing.T) {
	ps := binned([]float64{0, 1}, []float64{0.5}, 0.1)
	for _, tt := range []struct {
		name     string
		num, den PointSet
	}{
		{"empty numerator", nil, ps},
		{"empty denominator", ps, nil},
		{"both empty", PointSet{}, PointSet{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Divider{}.Divide(tt.num, tt.den)
			assert.True(t, errors.Is(err, ErrIncompatibleGraphs), "got %v", err)
		})
	}
}

func TestDivideNoOverlap(t *testing.T) {
	num := binned([]float64{0, 1}, []float64{0.5}, 0.1)
	den := binned([]float64{2, 3}, []float64{0.5}, 0.1)
	ratio, err := Divider{}.Divide(num, den)
	require.NoError(t, err)
	assert.Empty(t, ratio)
}

func TestParseNumeratorZero(t *testing.T) {
	for _, z := range []NumeratorZero{PropagateNaN, SkipNumeratorZero, AbsoluteError} {
		got, err := ParseNumeratorZero(z.String())
		require.NoError(t, err)
		assert.Equal(t, z, got)
	}
	got, err := ParseNumeratorZero("SKIP")
	require.NoError(t, err)
	assert.Equal(t, SkipNumeratorZero, got)

	_, err = ParseNumeratorZero("ignore")
	assert.Error(t, err)
	assert.Equal(t, "unknown", NumeratorZero(42).String())
}
