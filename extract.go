package tnpeff

import (
	"path"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/groot"
)

// Names of the graphs in an extraction output file.
const (
	DataName  = "DATA"
	MCName    = "MC"
	RatioName = "RATIO"
)

// Unit describes one data/MC comparison: where the fitter output lives and
// where the DATA, MC and RATIO graphs go.
type Unit struct {
	DataFile   string `yaml:"data_file"`
	MCFile     string `yaml:"mc_file"`
	BaseDir    string `yaml:"basedir"`
	ID         string `yaml:"ID"`
	Scenario   string `yaml:"scenario"`
	Trigger    string `yaml:"trigger"`
	OutputPath string `yaml:"output_path"`
	OutfileAdd string `yaml:"outfile_add"`
	// Graph overrides the name of the efficiency graph on the plot.
	Graph string `yaml:"graph,omitempty"`

	Extra map[string]interface{} `yaml:",inline"`
}

// ExtractConfig is the content of an extraction config file.
type ExtractConfig struct {
	Inputs []Unit `yaml:"inputs"`
}

// OutputFile returns the name of the file the unit is written to.
func (u Unit) OutputFile() string {
	return u.OutputPath + "MuonID_" + u.ID + "_" + u.Scenario + u.OutfileAdd + ".root"
}

// Validate checks that all fields needed to process the unit are set.
func (u Unit) Validate() error {
	missing := func(field, v string) error {
		if v == "" {
			return errors.Errorf("%s is not set", field)
		}
		return nil
	}
	var merr *multierror.Error
	merr = multierror.Append(merr,
		missing("data_file", u.DataFile),
		missing("mc_file", u.MCFile),
		missing("ID", u.ID),
		missing("scenario", u.Scenario),
	)
	return merr.ErrorOrNil()
}

func (u Unit) logger() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"ID": u.ID, "scenario": u.Scenario})
}

// Extractor turns fitter output into DATA, MC and RATIO graphs.
type Extractor struct {
	Divider Divider
}

// Process handles one unit: both efficiency graphs are read, the data graph
// is clamped to 1, divided by the MC graph and all three are written to
// u.OutputFile().
func (e Extractor) Process(u Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}
	canvas := CanvasName(u.Scenario, u.Trigger)

	data, err := readEfficiency(u.DataFile, u, canvas)
	if err != nil {
		return err
	}
	mc, err := readEfficiency(u.MCFile, u, canvas)
	if err != nil {
		return err
	}

	if n := data.ClampHighEdge(); n > 0 {
		u.logger().Debugf("clamped upper error of %d data points", n)
	}

	ratio, err := e.Divider.Divide(data, mc)
	if err != nil {
		return errors.Wrapf(err, "could not divide %s by %s", u.DataFile, u.MCFile)
	}

	out := u.OutputFile()
	if err := WriteGraphs(out,
		NamedSet{DataName, data},
		NamedSet{MCName, mc},
		NamedSet{RatioName, ratio},
	); err != nil {
		return err
	}
	u.logger().Infof("wrote %s (%d ratio points)", out, len(ratio))
	return nil
}

// ProcessAll processes every unit. Failing units are logged and reported in
// the returned error; they do not stop the others.
func (e Extractor) ProcessAll(units []Unit) error {
	var merr *multierror.Error
	for i, u := range units {
		if err := e.Process(u); err != nil {
			u.logger().Errorf("skipping input %d: %v", i, err)
			merr = multierror.Append(merr, errors.Wrapf(err, "input %d (%s %s)", i, u.ID, u.Scenario))
		}
	}
	return merr.ErrorOrNil()
}

// readEfficiency reads the unit's efficiency graph from spec, a file name
// optionally followed by ":<internal-path>". The internal path is prefixed
// to u.BaseDir.
func readEfficiency(spec string, u Unit, canvas string) (PointSet, error) {
	fname, internal := SplitPath(spec)
	base := path.Join(internal, u.BaseDir)

	var ps PointSet
	err := WithFile(fname, func(f *groot.File) error {
		dir, err := OpenDir(f, base)
		if err != nil {
			return err
		}
		g, err := FindEfficiency(dir, u.ID, u.Scenario, canvas, u.Graph)
		if err != nil {
			return err
		}
		ps = FromGraph(g)
		return nil
	})
	return ps, errors.Wrapf(err, "%s", spec)
}
