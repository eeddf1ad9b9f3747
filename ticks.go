package tnpeff

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places major ticks on round values, aiming for about
// NSuggestedTicks of them, and unlabelled minor ticks in between.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	n := t.NSuggestedTicks
	if n < 2 {
		n = 4
	}
	if !(max > min) {
		return nil
	}

	mult, major := majorStep(max-min, n)
	prec := 1 - int(math.Floor(math.Log10(major)))

	var ticks []plot.Tick
	for k := math.Ceil(min/major - 1e-9); k*major <= max+major*1e-9; k++ {
		r := round(k*major, prec)
		ticks = append(ticks, plot.Tick{Value: r, Label: strconv.FormatFloat(r, 'g', -1, 64)})
	}

	minor := minorStep(mult, major)
	for k := math.Ceil(min/minor - 1e-9); k*minor <= max+minor*1e-9; k++ {
		v := k * minor
		if !hasTick(ticks, v, minor/1e3) {
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}
	return ticks
}

// majorStep returns the multiplier and the distance of major ticks for a
// range of width w.
func majorStep(w float64, n int) (int, float64) {
	tens := math.Pow10(int(math.Floor(math.Log10(w))))
	for w/tens < float64(n-1) {
		tens /= 10
	}
	mult := int(w / tens / float64(n-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	if mult < 1 {
		mult = 1
	}
	return mult, float64(mult) * tens
}

func minorStep(mult int, major float64) float64 {
	switch mult {
	case 3, 6:
		return major / 3
	case 5:
		return major / 5
	}
	return major / 2
}

func hasTick(ticks []plot.Tick, v, eps float64) bool {
	for _, t := range ticks {
		if math.Abs(t.Value-v) < eps {
			return true
		}
	}
	return false
}

// EdgeTicks marks the bin edges of an efficiency graph. When there are at
// most MaxLabels edges in range they are the labelled ticks, otherwise
// Fallback supplies the labels and the edges become minor ticks.
type EdgeTicks struct {
	Edges     []float64
	MaxLabels int
	Fallback  plot.Ticker
}

func (t EdgeTicks) Ticks(min, max float64) []plot.Tick {
	var inRange []float64
	for _, e := range t.Edges {
		if e >= min && e <= max {
			inRange = append(inRange, e)
		}
	}

	maxLabels := t.MaxLabels
	if maxLabels == 0 {
		maxLabels = 8
	}
	if len(inRange) > 0 && len(inRange) <= maxLabels {
		ticks := make([]plot.Tick, len(inRange))
		for i, e := range inRange {
			ticks[i] = plot.Tick{Value: e, Label: strconv.FormatFloat(e, 'g', -1, 64)}
		}
		return ticks
	}

	fallback := t.Fallback
	if fallback == nil {
		fallback = PreciseTicks{NSuggestedTicks: 5}
	}
	ticks := fallback.Ticks(min, max)
	for _, e := range inRange {
		if !hasTick(ticks, e, (max-min)*1e-6) {
			ticks = append(ticks, plot.Tick{Value: e})
		}
	}
	return ticks
}

// round rounds x to prec decimals, halves away from zero. A negative prec
// rounds to tens, hundreds and so on. Values too large to scale are
// returned as is.
func round(x float64, prec int) float64 {
	var r float64
	if prec < 0 {
		p := math.Pow10(-prec)
		r = math.Round(x/p) * p
	} else {
		p := math.Pow10(prec)
		if math.IsInf(x*p, 0) {
			return x
		}
		r = math.Round(x*p) / p
	}
	if r == 0 {
		// drop the sign of -0 so labels never read "-0"
		return 0
	}
	return r
}
