package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/decibelcooper/tnpeff"
)

var (
	printTable = flag.Bool("print", false, "print the summary as a table")
	show       = flag.Bool("show", false, "print the table of an existing results file instead of building one")
	results    = flag.String("o", "", "results file, overrides results_filename")
	verbose    = flag.Bool("v", false, "verbose output")
	binnings   = tnpeff.BinningFlags{}
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <json-file>
       `+os.Args[0]+` -show <results-file>

Collects the DATA, MC and RATIO graphs of all input files into one ROOT
file and a YAML summary of every bin. Empty bins are removed from the
graphs and recorded as NaN.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(binnings, "binning", "binning of a scenario, as scenario=e0,e1,... (repeatable)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 {
		printUsage()
		logrus.Fatal("Invalid arguments")
	}
	tnpeff.SetVerbose(*verbose)

	if *show {
		sum, err := tnpeff.ReadSummaryFile(flag.Arg(0))
		if err != nil {
			logrus.Fatal(err)
		}
		sum.WriteTable(os.Stdout)
		return
	}

	var cfg tnpeff.SummaryConfig
	if err := tnpeff.LoadConfig(flag.Arg(0), &cfg); err != nil {
		logrus.Fatal(err)
	}
	if *results != "" {
		cfg.ResultsFile = *results
	}
	if len(binnings) > 0 && cfg.Binnings == nil {
		cfg.Binnings = make(map[string][]float64)
	}
	for name, edges := range binnings {
		cfg.Binnings[name] = edges
	}

	sum, err := tnpeff.BuildSummary(cfg)
	if *printTable {
		sum.WriteTable(os.Stdout)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}
