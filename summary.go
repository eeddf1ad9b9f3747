package tnpeff

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/groot"
	"gopkg.in/yaml.v3"
)

// Summary categories.
const (
	CatData  = "data"
	CatMC    = "mc"
	CatRatio = "data/mc"
)

// BinValues holds the values recorded for one bin: the scenario variable,
// "efficiency", "err_low" and "err_high".
type BinValues map[string]float64

// Summary maps ID -> scenario -> bin label -> category -> values.
type Summary map[string]map[string]map[string]map[string]BinValues

func (s Summary) bin(id, scenario, bin string) map[string]BinValues {
	if s[id] == nil {
		s[id] = make(map[string]map[string]map[string]BinValues)
	}
	if s[id][scenario] == nil {
		s[id][scenario] = make(map[string]map[string]BinValues)
	}
	if s[id][scenario][bin] == nil {
		s[id][scenario][bin] = make(map[string]BinValues)
	}
	return s[id][scenario][bin]
}

// Record stores every point of ps under its bin label and removes the
// degenerate points from ps. Removed points are recorded with NaN values.
// The original indices of the removed points are returned.
func (s Summary) Record(ps *PointSet, edges []float64, id, scenario, category string) []int {
	nan := math.NaN()
	for _, p := range *ps {
		label := BinLabel(FindBin(edges, p.X))
		v := BinValues{scenario: p.X, "efficiency": p.Y, "err_low": p.ErrYLow, "err_high": p.ErrYHigh}
		if p.Degenerate() {
			v = BinValues{scenario: nan, "efficiency": nan, "err_low": nan, "err_high": nan}
		}
		s.bin(id, scenario, label)[category] = v
	}
	return ps.CleanDegenerate()
}

// WriteYAML writes the summary to w. NaN values are written as .nan.
func (s Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(err, "could not encode summary")
	}
	return enc.Close()
}

// ReadSummary reads a summary written by WriteYAML.
func ReadSummary(r io.Reader) (Summary, error) {
	s := make(Summary)
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "could not decode summary")
	}
	return s, nil
}

// ReadSummaryFile reads the summary stored in fname.
func ReadSummaryFile(fname string) (Summary, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", fname)
	}
	defer f.Close()
	s, err := ReadSummary(f)
	return s, errors.Wrapf(err, "%s", fname)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteTable prints one row per ID, scenario, bin and category.
func (s Summary) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "scenario", "bin", "category", "efficiency", "err_low", "err_high"})
	for _, id := range sortedKeys(s) {
		for _, scen := range sortedKeys(s[id]) {
			for _, bin := range sortedKeys(s[id][scen]) {
				for _, cat := range sortedKeys(s[id][scen][bin]) {
					v := s[id][scen][bin][cat]
					table.Append([]string{
						id, scen, bin, cat,
						formatValue(v["efficiency"]),
						formatValue(v["err_low"]),
						formatValue(v["err_high"]),
					})
				}
			}
		}
	}
	table.Render()
}

// SummaryInput is one entry of a summary config: [file, ID, scenario, scenario_add].
type SummaryInput struct {
	File        string
	ID          string
	Scenario    string
	ScenarioAdd string
}

// UnmarshalYAML decodes the list form of an input entry. The fourth element
// is optional.
func (in *SummaryInput) UnmarshalYAML(value *yaml.Node) error {
	var fields []string
	if err := value.Decode(&fields); err != nil {
		return errors.Wrap(err, "summary input must be a list of strings")
	}
	if len(fields) < 3 || len(fields) > 4 {
		return errors.Errorf("summary input needs 3 or 4 elements, got %d", len(fields))
	}
	in.File, in.ID, in.Scenario = fields[0], fields[1], fields[2]
	if len(fields) == 4 {
		in.ScenarioAdd = fields[3]
	}
	return nil
}

// SummaryConfig is the content of a summary config file.
type SummaryConfig struct {
	RootOutput  string `yaml:"root_output_filename"`
	ResultsFile string `yaml:"results_filename"`
	InputFiles  struct {
		Path  string         `yaml:"path"`
		Files []SummaryInput `yaml:"files"`
	} `yaml:"input_files"`
	Binnings map[string][]float64 `yaml:"binnings"`
}

// Binning returns the edges used for a scenario: the configured ones if
// present, the built-in ones otherwise.
func (c SummaryConfig) Binning(scenario string) ([]float64, error) {
	if edges, ok := c.Binnings[scenario]; ok {
		return edges, nil
	}
	if sc, ok := Scenarios[scenario]; ok {
		return sc.Edges, nil
	}
	return nil, errors.Errorf("no binning for scenario %q", scenario)
}

func graphName(category, id, scenario, add string) string {
	return strings.Join([]string{category, id, scenario, add}, "_")
}

// BuildSummary records and cleans the DATA, MC and RATIO graphs of every
// input, writes the cleaned graphs renamed to cfg.RootOutput and the summary
// to cfg.ResultsFile. Inputs that fail are skipped and reported in the
// returned error together with the summary of the others.
func BuildSummary(cfg SummaryConfig) (Summary, error) {
	sum := make(Summary)
	var (
		graphs []NamedSet
		merr   *multierror.Error
	)

	for _, in := range cfg.InputFiles.Files {
		fname := cfg.InputFiles.Path + in.File
		log := logrus.WithFields(logrus.Fields{"file": fname, "ID": in.ID, "scenario": in.Scenario})

		sets, err := summarizeFile(sum, fname, in, cfg)
		if err != nil {
			log.Errorf("skipping: %v", err)
			merr = multierror.Append(merr, errors.Wrap(err, fname))
			continue
		}
		log.Debug("recorded")
		graphs = append(graphs, sets...)
	}

	if cfg.RootOutput != "" {
		if err := WriteGraphs(cfg.RootOutput, graphs...); err != nil {
			return sum, multierror.Append(merr, err)
		}
	}

	if cfg.ResultsFile != "" {
		if err := writeSummaryFile(sum, cfg.ResultsFile); err != nil {
			return sum, multierror.Append(merr, err)
		}
	}
	return sum, merr.ErrorOrNil()
}

func summarizeFile(sum Summary, fname string, in SummaryInput, cfg SummaryConfig) ([]NamedSet, error) {
	edges, err := cfg.Binning(in.Scenario)
	if err != nil {
		return nil, err
	}

	categories := []struct {
		key, cat, out string
	}{
		{DataName, CatData, "DATA"},
		{MCName, CatMC, "MC"},
		{RatioName, CatRatio, "DATA_MC"},
	}

	// read everything first so a broken file does not leave a partial record
	sets := make([]PointSet, len(categories))
	err = WithFile(fname, func(f *groot.File) error {
		for i, c := range categories {
			ps, err := ReadPointSet(f, c.key)
			if err != nil {
				return err
			}
			sets[i] = ps
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]NamedSet, len(categories))
	for i, c := range categories {
		if removed := sum.Record(&sets[i], edges, in.ID, in.Scenario, c.cat); len(removed) > 0 {
			logrus.Debugf("%s: removed %d empty %s points %v", fname, len(removed), c.cat, removed)
		}
		out[i] = NamedSet{Name: graphName(c.out, in.ID, in.Scenario, in.ScenarioAdd), Points: sets[i]}
	}
	return out, nil
}

func writeSummaryFile(sum Summary, fname string) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
		return errors.Wrapf(err, "could not create directory for %s", fname)
	}
	f, err := os.Create(fname)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", fname)
	}
	if err := sum.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "could not close %s", fname)
}
