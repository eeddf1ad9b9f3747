package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/decibelcooper/tnpeff"
)

var (
	endings tnpeff.StringsFlag
	verbose = flag.Bool("v", false, "verbose output")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <json-file>

Draws the DATA and MC efficiencies and their ratio for every file listed
in the config.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(&endings, "f", "output file format, overrides file_endings (repeatable)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		logrus.Fatal("Invalid arguments")
	}
	tnpeff.SetVerbose(*verbose)

	var cfg tnpeff.PlotConfig
	if err := tnpeff.LoadConfig(flag.Arg(0), &cfg); err != nil {
		logrus.Fatal(err)
	}
	if len(endings.Values) > 0 {
		cfg.FileEndings = endings.Values
	}
	if len(cfg.FileEndings) == 0 {
		cfg.FileEndings = []string{"pdf"}
	}

	if err := tnpeff.MakePlots(cfg); err != nil {
		logrus.Fatal(err)
	}
}
