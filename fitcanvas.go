package tnpeff

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
	"go-hep.org/x/hep/hbook/rootcnv"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultFitPattern selects the fit results the fitter stores per bin.
const DefaultFitPattern = "fit_canvas"

var (
	// the trigger name is hardcoded in the fitter's naming scheme
	triggerRx = regexp.MustCompile(`(_tag)?_Mu7p5_Track2_Jpsi(_(TK|MU)_pass_)?`)

	fitNameCleaner = strings.NewReplacer(
		"_pair_drM1_bin0_", "",
		"_pair_probeMultiplicity_bin0_", "",
	)
	outDirCleaner = strings.NewReplacer(
		"TnP_MuonID_", "",
		"_data_all__", "",
		"_signal_mc__", "",
		".root", "",
	)
)

// RenameFit turns the in-file path of a fit directory into a short name:
// the trigger and the fixed binning parts are removed together with the
// first path segment (the ID directory); the remaining segments are joined.
func RenameFit(p string) string {
	fn := triggerRx.ReplaceAllString(p, "")
	fn = fitNameCleaner.Replace(fn)
	segs := strings.Split(fn, "/")
	return strings.Join(segs[1:], "")
}

// OutputDirFor returns the directory below base that the fits of a fitter
// output file are saved to. The pt_abseta fits are split over several files
// whose directory names inside the files are identical, so the directory is
// derived from the file name.
func OutputDirFor(fname, base string) string {
	return filepath.Join(base, outDirCleaner.Replace(filepath.Base(fname)))
}

// CanvasSaver draws every graph or histogram whose key name matches Pattern
// and saves it below BaseDir, named after its path inside the file.
type CanvasSaver struct {
	Pattern *regexp.Regexp
	Ext     string
	BaseDir string

	// Saved lists the files written so far.
	Saved []string
}

// NewCanvasSaver compiles pattern and returns a saver writing files with
// extension ext below baseDir.
func NewCanvasSaver(pattern, ext, baseDir string) (*CanvasSaver, error) {
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid name pattern %q", pattern)
	}
	return &CanvasSaver{Pattern: rx, Ext: ext, BaseDir: baseDir}, nil
}

// FileName returns the output file of the object key in directory dir.
// The first segment of dir (the fitter's tree directory) is dropped.
func (s *CanvasSaver) FileName(dir, key string) string {
	rel := ""
	if _, rest, ok := strings.Cut(dir, "/"); ok {
		rel = rest
	}
	return filepath.Join(s.BaseDir, RenameFit(rel)+"_"+key+"."+s.Ext)
}

// Leaf is a LeafFunc saving the matching objects. Objects that cannot be
// drawn are skipped.
func (s *CanvasSaver) Leaf(dir string, key riofs.Key, obj root.Object) error {
	if !s.Pattern.MatchString(key.Name()) {
		return nil
	}

	p, err := drawObject(obj, key.Name())
	if err != nil {
		logrus.Debugf("not saving %s/%s: %v", dir, key.Name(), err)
		return nil
	}

	fname := s.FileName(dir, key.Name())
	if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
		return errors.Wrapf(err, "could not create directory for %s", fname)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, fname); err != nil {
		return errors.Wrapf(err, "could not save %s", fname)
	}
	s.Saved = append(s.Saved, fname)
	logrus.Debugf("saved %s", fname)
	return nil
}

// SaveFile saves all matching objects of a ROOT file.
func (s *CanvasSaver) SaveFile(fname string) error {
	return WithFile(fname, func(f *groot.File) error {
		return Visit(f, s.Leaf, func(p string, _ riofs.Directory) error {
			logrus.Debugf("entering %s:%s", fname, p)
			return nil
		})
	})
}

func drawObject(obj root.Object, title string) (*hplot.Plot, error) {
	p := hplot.New()
	p.Title.Text = title
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	switch o := obj.(type) {
	case rhist.Graph:
		// plain TGraphs come back with zero errors
		p.Add(newErrPlotter(FromS2D(rootcnv.S2D(o)), dataColor, draw.CircleGlyph{}))
	case rhist.H1:
		p.Add(hplot.NewH1D(rootcnv.H1D(o)))
	default:
		return nil, errors.Errorf("cannot draw a %s", obj.Class())
	}
	p.Add(hplot.NewGrid())
	return p, nil
}
