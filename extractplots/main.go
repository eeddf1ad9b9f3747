package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/decibelcooper/tnpeff"
)

var (
	edgeTol   = flag.Float64("edge-tol", 0, "tolerance when matching data and MC bin edges (0: exact match)")
	numZero   = flag.String("num-zero", "nan", "bins with zero data efficiency: nan, skip or absolute")
	verbose   = flag.Bool("v", false, "verbose output")
	doProfile = flag.Bool("profile", false, "write a CPU profile to the working directory")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <json-files>...

Extracts the data and MC efficiency graphs of every input listed in the
config files and writes them, together with their ratio, to
<output_path>MuonID_<ID>_<scenario><outfile_add>.root

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		logrus.Fatal("Need at least one json file to process")
	}
	tnpeff.SetVerbose(*verbose)

	profileDir := ""
	if *doProfile {
		profileDir = "."
	}
	os.Exit(run(flag.Args(), profileDir))
}

// run processes the config files and returns the exit code. When profileDir
// is set a CPU profile is written there; it is flushed before run returns.
func run(files []string, profileDir string) int {
	if profileDir != "" {
		defer profile.Start(profile.ProfilePath(profileDir), profile.NoShutdownHook).Stop()
	}

	policy, err := tnpeff.ParseNumeratorZero(*numZero)
	if err != nil {
		logrus.Error(err)
		return 2
	}
	ext := tnpeff.Extractor{
		Divider: tnpeff.Divider{EdgeTolerance: *edgeTol, NumeratorZero: policy},
	}

	failed := false
	for _, fname := range files {
		logrus.Infof("Now processing JSON file: %s", fname)

		var cfg tnpeff.ExtractConfig
		if err := tnpeff.LoadConfig(fname, &cfg); err != nil {
			logrus.Error(err)
			failed = true
			continue
		}
		if err := ext.ProcessAll(cfg.Inputs); err != nil {
			logrus.Errorf("%s: %v", fname, err)
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}
