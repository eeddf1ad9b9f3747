package tnpeff

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rhist"
)

const (
	// FitEffDir is the directory the fitter stores its efficiency plots in.
	FitEffDir = "fit_eff_plots"
	// FitEffGraph is the name of the fitted efficiency graph on a plot.
	FitEffGraph = "hxy_fit_eff"
)

// ErrNotFound is returned when a requested object is not in a file.
var ErrNotFound = errors.New("object not found")

// CanvasName builds the name under which the fitter stores the efficiency
// plot of a scenario.
func CanvasName(scenario, trigger string) string {
	prep := scenario
	if strings.Contains(scenario, "vtx") {
		prep = "tag_nVertices"
	}
	return strings.Join([]string{prep, "PLOT", trigger, "TK", "pass", "&", "tag", trigger, "MU", "pass"}, "_")
}

// FindEfficiency searches dir for the efficiency graph of the given ID and
// scenario. Only top-level directories whose name contains "<id>_<scenario>"
// are opened; below them the graph is expected either as
// fit_eff_plots/<canvas>/<graph> or directly as fit_eff_plots/<canvas>.
// When several directories match, the last one wins.
func FindEfficiency(dir riofs.Directory, id, scenario, canvas, graph string) (rhist.GraphErrors, error) {
	if graph == "" {
		graph = FitEffGraph
	}
	match := id + "_" + scenario

	var (
		found rhist.GraphErrors
		seen  = make(map[string]bool)
	)
	for _, key := range dir.Keys() {
		name := key.Name()
		if seen[name] || !strings.Contains(name, match) {
			continue
		}
		seen[name] = true

		g, err := effGraphIn(dir, name, canvas, graph)
		if err != nil {
			logrus.Debugf("no efficiency in %s: %v", name, err)
			continue
		}
		found = g
	}
	if found == nil {
		return nil, errors.Wrapf(ErrNotFound, "no %s/%s/%s below a directory matching %q", FitEffDir, canvas, graph, match)
	}
	return found, nil
}

func effGraphIn(dir riofs.Directory, name, canvas, graph string) (rhist.GraphErrors, error) {
	obj, err := dir.Get(name)
	if err != nil {
		return nil, err
	}
	top, ok := obj.(riofs.Directory)
	if !ok {
		return nil, errors.Errorf("%s is a %s, not a directory", name, obj.Class())
	}
	p := FitEffDir + "/" + canvas
	obj, err = riofs.Dir(top).Get(p)
	if err != nil {
		return nil, err
	}
	if d, ok := obj.(riofs.Directory); ok {
		p += "/" + graph
		if obj, err = d.Get(graph); err != nil {
			return nil, err
		}
	}
	g, ok := obj.(rhist.GraphErrors)
	if !ok {
		return nil, errors.Errorf("%s/%s is a %s, not a graph with errors", name, p, obj.Class())
	}
	return g, nil
}

// ReadPointSet reads the graph stored under name in dir.
func ReadPointSet(dir riofs.Directory, name string) (PointSet, error) {
	obj, err := riofs.Dir(dir).Get(name)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%s: %v", name, err)
	}
	g, ok := obj.(rhist.GraphErrors)
	if !ok {
		return nil, errors.Errorf("%s is a %s, not a graph with errors", name, obj.Class())
	}
	return FromGraph(g), nil
}
