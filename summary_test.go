package tnpeff

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"gopkg.in/yaml.v3"
)

func etaPoints(ys ...float64) PointSet {
	ps := binned([]float64{-2.1, -1.6, -1.2, -0.9}, ys, 0.02)
	for i := range ps {
		if ys[i] == 0 {
			ps[i].ErrYLow, ps[i].ErrYHigh = 0, 0
		}
	}
	return ps
}

func TestSummaryRecord(t *testing.T) {
	sum := make(Summary)
	ps := etaPoints(0.8, 0, 0.9)

	removed := sum.Record(&ps, Scenarios["eta"].Edges, "Loose", "eta", CatData)
	assert.Equal(t, []int{1}, removed)
	assert.Len(t, ps, 2)

	bins := sum["Loose"]["eta"]
	assert.Len(t, bins, 3)

	v := bins["-2.1_-1.6"][CatData]
	assert.InDelta(t, -1.85, v["eta"], 1e-12)
	assert.Equal(t, 0.8, v["efficiency"])
	assert.Equal(t, 0.02, v["err_low"])
	assert.Equal(t, 0.02, v["err_high"])

	for _, k := range []string{"eta", "efficiency", "err_low", "err_high"} {
		assert.True(t, math.IsNaN(bins["-1.6_-1.2"][CatData][k]), k)
	}

	mc := etaPoints(0.7, 0.7, 0.7)
	assert.Empty(t, sum.Record(&mc, Scenarios["eta"].Edges, "Loose", "eta", CatMC))
	assert.Len(t, sum["Loose"]["eta"]["-2.1_-1.6"], 2)
}

func TestSummaryYAML(t *testing.T) {
	sum := make(Summary)
	ps := etaPoints(0.8, 0)
	sum.Record(&ps, Scenarios["eta"].Edges, "Loose", "eta", CatRatio)

	var buf bytes.Buffer
	require.NoError(t, sum.WriteYAML(&buf))
	assert.Contains(t, buf.String(), ".nan")
	assert.Contains(t, buf.String(), "data/mc:")

	got, err := ReadSummary(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0.8, got["Loose"]["eta"]["-2.1_-1.6"][CatRatio]["efficiency"])
	assert.True(t, math.IsNaN(got["Loose"]["eta"]["-1.6_-1.2"][CatRatio]["efficiency"]))
}

func TestSummaryWriteTable(t *testing.T) {
	sum := make(Summary)
	ps := etaPoints(0.8, 0)
	sum.Record(&ps, Scenarios["eta"].Edges, "Loose", "eta", CatData)

	var buf bytes.Buffer
	sum.WriteTable(&buf)
	out := buf.String()
	assert.Contains(t, out, "-2.1_-1.6")
	assert.Contains(t, out, "0.8000")
	assert.Contains(t, out, "0.0200")
	assert.Contains(t, out, "EFFICIENCY")

	// the empty bin is listed without values
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "-1.6_-1.2") {
			assert.NotContains(t, line, "0.")
		}
	}
}

func TestSummaryInputDecoding(t *testing.T) {
	var cfg SummaryConfig
	require.NoError(t, yaml.Unmarshal([]byte(`{
  "root_output_filename": "out/summary.root",
  "results_filename": "out/summary.yaml",
  "input_files": {
    "path": "in/",
    "files": [
      ["MuonID_Loose_eta.root", "Loose", "eta"],
      ["MuonID_Loose_pt_abseta_0.root", "Loose", "pt_abseta", "abseta0"]
    ]
  },
  "binnings": {"eta": [-2.4, 0, 2.4]}
}`), &cfg))

	require.Len(t, cfg.InputFiles.Files, 2)
	assert.Equal(t, SummaryInput{File: "MuonID_Loose_eta.root", ID: "Loose", Scenario: "eta"}, cfg.InputFiles.Files[0])
	assert.Equal(t, "abseta0", cfg.InputFiles.Files[1].ScenarioAdd)

	edges, err := cfg.Binning("eta")
	require.NoError(t, err)
	assert.Equal(t, []float64{-2.4, 0, 2.4}, edges)
	edges, err = cfg.Binning("vtx")
	require.NoError(t, err)
	assert.Equal(t, Scenarios["vtx"].Edges, edges)
	_, err = cfg.Binning("phi")
	assert.Error(t, err)

	var in SummaryInput
	assert.Error(t, yaml.Unmarshal([]byte(`["a.root", "Loose"]`), &in))
	assert.Error(t, yaml.Unmarshal([]byte(`{"file": "a.root"}`), &in))
}

func TestBuildSummary(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, WriteGraphs(filepath.Join(in, "MuonID_Loose_eta.root"),
		NamedSet{DataName, etaPoints(0.8, 0, 0.9)},
		NamedSet{MCName, etaPoints(0.8, 0.7, 0.9)},
		NamedSet{RatioName, etaPoints(1, 0, 1)},
	))
	require.NoError(t, WriteGraphs(filepath.Join(in, "broken.root"),
		NamedSet{DataName, etaPoints(0.8)},
	))

	out := t.TempDir()
	cfg := SummaryConfig{
		RootOutput:  filepath.Join(out, "summary.root"),
		ResultsFile: filepath.Join(out, "results", "summary.yaml"),
	}
	cfg.InputFiles.Path = in + "/"
	cfg.InputFiles.Files = []SummaryInput{
		{File: "MuonID_Loose_eta.root", ID: "Loose", Scenario: "eta"},
		{File: "broken.root", ID: "Tight", Scenario: "eta"},
	}

	sum, err := BuildSummary(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.root")
	assert.NotContains(t, sum, "Tight")
	assert.Len(t, sum["Loose"]["eta"], 3)
	assert.Len(t, sum["Loose"]["eta"]["-1.6_-1.2"], 3)

	raw, err := os.ReadFile(cfg.ResultsFile)
	require.NoError(t, err)
	fromFile, err := ReadSummary(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 0.7, fromFile["Loose"]["eta"]["-1.6_-1.2"][CatMC]["efficiency"])

	shown, err := ReadSummaryFile(cfg.ResultsFile)
	require.NoError(t, err)
	assert.Equal(t, 0.7, shown["Loose"]["eta"]["-1.6_-1.2"][CatMC]["efficiency"])
	assert.Len(t, shown["Loose"]["eta"], 3)
	_, err = ReadSummaryFile(cfg.ResultsFile + ".missing")
	assert.Error(t, err)

	f, err := groot.Open(cfg.RootOutput)
	require.NoError(t, err)
	defer f.Close()

	data, err := ReadPointSet(f, "DATA_Loose_eta_")
	require.NoError(t, err)
	assert.Len(t, data, 2)
	mc, err := ReadPointSet(f, "MC_Loose_eta_")
	require.NoError(t, err)
	assert.Len(t, mc, 3)
	ratio, err := ReadPointSet(f, "DATA_MC_Loose_eta_")
	require.NoError(t, err)
	assert.Len(t, ratio, 2)
}
