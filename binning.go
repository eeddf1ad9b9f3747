package tnpeff

import (
	"strconv"
	"strings"
)

// Scenario is a fit scenario: the variable the efficiency is measured in
// and its binning.
type Scenario struct {
	Name     string
	Variable string
	Edges    []float64
}

func vtxEdges() []float64 {
	var edges []float64
	for v := 0; v <= 30; v += 2 {
		edges = append(edges, float64(v)+0.5)
	}
	return edges
}

// Scenarios are the binnings the fits are run with.
var Scenarios = map[string]Scenario{
	"eta": {
		Name:     "eta",
		Variable: "eta",
		Edges:    []float64{-2.1, -1.6, -1.2, -0.9, -0.6, -0.3, -0.2, 0, 0.2, 0.3, 0.6, 0.9, 1.2, 1.6, 2.1},
	},
	"vtx": {
		Name:     "vtx",
		Variable: "tag_nVertices",
		Edges:    vtxEdges(),
	},
	"pt_abseta": {
		Name:     "pt_abseta",
		Variable: "pt",
		Edges:    []float64{2.0, 2.5, 2.75, 3.0, 3.25, 3.5, 3.75, 4.0, 4.5, 5.0, 6.0, 8.0, 10.0, 15.0, 30.0, 40.0},
	},
}

// AbsEtaEdges are the abseta slices the pt_abseta fits are split into.
var AbsEtaEdges = []float64{0, 0.9, 1.2, 2.1, 2.4}

// FindBin returns the edges of the bin strictly containing x. If there is
// none, the full range is returned in reverse order.
func FindBin(edges []float64, x float64) (lo, hi float64) {
	for i := 0; i+1 < len(edges); i++ {
		if x > edges[i] && x < edges[i+1] {
			return edges[i], edges[i+1]
		}
	}
	if len(edges) == 0 {
		return 0, 0
	}
	return edges[len(edges)-1], edges[0]
}

// BinLabel formats a bin as "<lo>_<hi>".
func BinLabel(lo, hi float64) string {
	return formatEdge(lo) + "_" + formatEdge(hi)
}

// formatEdge prints the shortest representation of v, keeping a decimal
// point on integral values.
func formatEdge(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
