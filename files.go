package tnpeff

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go-hep.org/x/hep/groot"
)

// NamedSet is a graph together with the key it is written under.
type NamedSet struct {
	Name   string
	Points PointSet
}

// WithFile opens a ROOT file read-only, calls fn and closes the file again.
func WithFile(fname string, fn func(f *groot.File) error) error {
	f, err := groot.Open(fname)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", fname)
	}
	defer f.Close()
	return fn(f)
}

// WriteGraphs (re)creates fname and writes the graphs into its top-level
// directory as TGraphAsymmErrors. Missing parent directories are created.
func WriteGraphs(fname string, graphs ...NamedSet) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
		return errors.Wrapf(err, "could not create output directory for %s", fname)
	}

	f, err := groot.Create(fname)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", fname)
	}
	for _, g := range graphs {
		if err := f.Put(g.Name, g.Points.Graph(g.Name)); err != nil {
			f.Close()
			return errors.Wrapf(err, "could not write %s to %s", g.Name, fname)
		}
	}
	return errors.Wrapf(f.Close(), "could not close %s", fname)
}
