package tnpeff

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gopkg.in/yaml.v3"
)

// PlotSettings are the axis ranges and text positions of an efficiency plot.
// Keys without a field of their own end up in Extra.
type PlotSettings struct {
	XLow, XHigh float64 // x range
	ELow, EHigh float64 // efficiency range
	RLow, RHigh float64 // ratio range
	YOffset     float64
	LRight      float64
	TLeft       float64
	TLow        float64
	TRight      float64
	TUp         float64

	Extra map[string]float64
}

// Apply returns a copy of s with the given keys overridden.
func (s PlotSettings) Apply(over map[string]float64) PlotSettings {
	extra := make(map[string]float64, len(s.Extra))
	for k, v := range s.Extra {
		extra[k] = v
	}
	s.Extra = extra

	for k, v := range over {
		switch k {
		case "xlow":
			s.XLow = v
		case "xhigh":
			s.XHigh = v
		case "elow":
			s.ELow = v
		case "ehigh":
			s.EHigh = v
		case "rlow":
			s.RLow = v
		case "rhigh":
			s.RHigh = v
		case "yOffset":
			s.YOffset = v
		case "lright":
			s.LRight = v
		case "tleft":
			s.TLeft = v
		case "tlow":
			s.TLow = v
		case "tright":
			s.TRight = v
		case "tup":
			s.TUp = v
		default:
			s.Extra[k] = v
		}
	}
	return s
}

// PlotInput is one entry of a plot config:
// [file, title, x-axis label, pad text, overrides, binning].
type PlotInput struct {
	File      string
	Title     string
	XLabel    string
	PadText   string
	Overrides map[string]float64
	Binning   []float64
}

func (in *PlotInput) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) != 6 {
		return errors.Errorf("line %d: plot input must be a list of 6 elements", value.Line)
	}
	fields := []interface{}{&in.File, &in.Title, &in.XLabel, &in.PadText, &in.Overrides, &in.Binning}
	for i, f := range fields {
		if err := value.Content[i].Decode(f); err != nil {
			return errors.Wrapf(err, "line %d: plot input element %d", value.Line, i)
		}
	}
	return nil
}

// PlotConfig is the content of a plot config file.
type PlotConfig struct {
	Defaults    map[string]float64 `yaml:"plotting_defaults"`
	InputPath   string             `yaml:"input_path"`
	OutputPath  string             `yaml:"output_path"`
	Inputs      []PlotInput        `yaml:"input_files"`
	FileEndings []string           `yaml:"file_endings"`
}

var (
	dataColor  = color.RGBA{A: 255}
	mcColor    = color.RGBA{R: 255, A: 255}
	ratioColor = color.RGBA{B: 255, A: 255}
	gridColor  = color.Gray{Y: 160}
)

func newErrPlotter(ps PointSet, c color.Color, shape draw.GlyphDrawer) *hplot.S2D {
	s := hplot.NewS2D(ps, hplot.WithXErrBars(true), hplot.WithYErrBars(true))
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = vg.Points(2.5)
	if s.XErrs != nil {
		s.XErrs.LineStyle.Color = c
	}
	if s.YErrs != nil {
		s.YErrs.LineStyle.Color = c
	}
	return s
}

// edgeLines returns dashed vertical lines at the binning edges inside
// [xlow, xhigh], spanning [ylow, yhigh].
func edgeLines(edges []float64, xlow, xhigh, ylow, yhigh float64) ([]*plotter.Line, error) {
	var lines []*plotter.Line
	for _, e := range edges {
		if xhigh > xlow && (e < xlow || e > xhigh) {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{{X: e, Y: ylow}, {X: e, Y: yhigh}})
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = gridColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
		lines = append(lines, l)
	}
	return lines, nil
}

// setRange fixes the axis ranges. It has to run after all plotters are
// added, since adding one widens the axes to its data range.
func setRange(p *hplot.Plot, xlow, xhigh, ylow, yhigh float64) {
	if xhigh > xlow {
		p.X.Min, p.X.Max = xlow, xhigh
	}
	if yhigh > ylow {
		p.Y.Min, p.Y.Max = ylow, yhigh
	}
}

func decorate(p *hplot.Plot, edges []float64, xlow, xhigh, ylow, yhigh float64) error {
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	lines, err := edgeLines(edges, xlow, xhigh, ylow, yhigh)
	if err != nil {
		return err
	}
	for _, l := range lines {
		p.Add(l)
	}
	p.X.Tick.Marker = EdgeTicks{Edges: edges}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	return nil
}

// NewEfficiencyPlot draws the data and MC efficiencies on top of their ratio.
func NewEfficiencyPlot(data, mc, ratio PointSet, set PlotSettings, in PlotInput) (*hplot.RatioPlot, error) {
	rp := hplot.NewRatioPlot()

	top := rp.Top
	top.Title.Text = in.Title
	if in.PadText != "" {
		top.Title.Text = strings.TrimSpace(in.Title + "\n" + in.PadText)
	}
	top.Y.Label.Text = "efficiency"
	if err := decorate(top, in.Binning, set.XLow, set.XHigh, set.ELow, set.EHigh); err != nil {
		return nil, err
	}

	d := newErrPlotter(data, dataColor, draw.CircleGlyph{})
	m := newErrPlotter(mc, mcColor, draw.TriangleGlyph{})
	top.Add(d, m)
	top.Legend.Add("Data", d)
	top.Legend.Add("MC", m)
	top.Legend.Top = false
	top.Legend.Left = false
	top.X.Tick.Marker = hplot.NoTicks{}
	setRange(top, set.XLow, set.XHigh, set.ELow, set.EHigh)

	bottom := rp.Bottom
	bottom.X.Label.Text = in.XLabel
	bottom.Y.Label.Text = "DATA/MC"
	if err := decorate(bottom, in.Binning, set.XLow, set.XHigh, set.RLow, set.RHigh); err != nil {
		return nil, err
	}
	bottom.Add(newErrPlotter(ratio, ratioColor, draw.BoxGlyph{}))
	setRange(bottom, set.XLow, set.XHigh, set.RLow, set.RHigh)

	return rp, nil
}

// MakeEfficiencyPlot draws the plot and saves it once per file ending as
// <outBase>.<ending>.
func MakeEfficiencyPlot(data, mc, ratio PointSet, set PlotSettings, in PlotInput, outBase string, endings []string) error {
	rp, err := NewEfficiencyPlot(data, mc, ratio, set, in)
	if err != nil {
		return errors.Wrapf(err, "could not build plot %s", outBase)
	}
	if err := os.MkdirAll(filepath.Dir(outBase), 0o755); err != nil {
		return errors.Wrapf(err, "could not create output directory for %s", outBase)
	}
	for _, ending := range endings {
		fname := outBase + "." + ending
		if err := hplot.Save(rp, 5*vg.Inch, 5*vg.Inch, fname); err != nil {
			return errors.Wrapf(err, "could not save %s", fname)
		}
		logrus.Debugf("saved %s", fname)
	}
	return nil
}

// MakePlots draws every input of cfg. Inputs that fail are skipped and
// reported in the returned error.
func MakePlots(cfg PlotConfig) error {
	defaults := PlotSettings{}.Apply(cfg.Defaults)
	var merr *multierror.Error
	for _, in := range cfg.Inputs {
		fname := cfg.InputPath + in.File
		outBase := cfg.OutputPath + strings.TrimSuffix(in.File, ".root")

		var data, mc, ratio PointSet
		err := WithFile(fname, func(f *groot.File) error {
			var err error
			if data, err = ReadPointSet(f, DataName); err != nil {
				return err
			}
			if mc, err = ReadPointSet(f, MCName); err != nil {
				return err
			}
			ratio, err = ReadPointSet(f, RatioName)
			return err
		})
		if err == nil {
			err = MakeEfficiencyPlot(data, mc, ratio, defaults.Apply(in.Overrides), in, outBase, cfg.FileEndings)
		}
		if err != nil {
			logrus.WithField("file", fname).Errorf("skipping: %v", err)
			merr = multierror.Append(merr, errors.Wrap(err, fname))
		}
	}
	return merr.ErrorOrNil()
}
