package tnpeff

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
)

// binned builds a set from bin edges and one value per bin, with
// symmetric y errors err.
func binned(edges []float64, ys []float64, err float64) PointSet {
	ps := make(PointSet, len(ys))
	for i, y := range ys {
		half := (edges[i+1] - edges[i]) / 2
		ps[i] = Point{
			X: edges[i] + half, Y: y,
			ErrXLow: half, ErrXHigh: half,
			ErrYLow: err, ErrYHigh: err,
		}
	}
	return ps
}

// mkdirAll returns the directory at p, creating missing segments. dirs
// caches the directories created so far, keyed by path.
func mkdirAll(t *testing.T, dirs map[string]riofs.Directory, p string) riofs.Directory {
	t.Helper()
	if dir, ok := dirs[p]; ok {
		return dir
	}
	parent, name := "", p
	if i := strings.LastIndex(p, "/"); i >= 0 {
		parent, name = p[:i], p[i+1:]
	}
	dir, err := mkdirAll(t, dirs, parent).Mkdir(name)
	require.NoError(t, err, "mkdir %s", p)
	dirs[p] = dir
	return dir
}

type entry struct {
	path string
	obj  root.Object
}

// writeFile creates a ROOT file in a temporary directory holding the
// entries, each stored at its slash-separated path.
func writeFile(t *testing.T, name string, entries ...entry) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	f, err := groot.Create(fname)
	require.NoError(t, err)

	dirs := map[string]riofs.Directory{"": f}
	for _, e := range entries {
		dirPath, key := "", e.path
		if i := strings.LastIndex(e.path, "/"); i >= 0 {
			dirPath, key = e.path[:i], e.path[i+1:]
		}
		dir := mkdirAll(t, dirs, dirPath)
		require.NoError(t, dir.Put(key, e.obj), "put %s", e.path)
	}
	require.NoError(t, f.Close())
	return fname
}

// fitterFile writes a file laid out like the fitter output, with the
// efficiency graph of id/scenario stored below basedir.
func fitterFile(t *testing.T, name, basedir, id, scenario, trigger string, ps PointSet) string {
	t.Helper()
	p := strings.Join([]string{
		basedir,
		id + "_" + scenario,
		FitEffDir,
		CanvasName(scenario, trigger),
		FitEffGraph,
	}, "/")
	return writeFile(t, name, entry{strings.TrimPrefix(p, "/"), ps.Graph(FitEffGraph)})
}
