package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/decibelcooper/tnpeff"
)

var (
	nameRegex  = flag.String("nr", tnpeff.DefaultFitPattern, "regex the name of an object has to match in order to be saved")
	outputDir  = flag.String("o", "FitCanvasOutput/", "base directory under which all plots are saved")
	verbose    = flag.Bool("v", false, "verbose output")
	extensions = tnpeff.StringsFlag{Values: []string{"pdf"}}
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <root-input-files>...

Saves every fit result stored in the input files as a plot.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(&extensions, "f", "output file format (repeatable)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		logrus.Fatal("Invalid arguments")
	}
	tnpeff.SetVerbose(*verbose)

	logrus.Debugf("Saving extensions: %s", extensions.String())
	logrus.Debugf("Used regex to match object names: %s", *nameRegex)
	logrus.Debugf("Saving to directory: %s", *outputDir)

	failed := 0
	for _, ext := range extensions.Values {
		for _, fname := range flag.Args() {
			saver, err := tnpeff.NewCanvasSaver(*nameRegex, ext, tnpeff.OutputDirFor(fname, *outputDir))
			if err != nil {
				logrus.Fatal(err)
			}
			logrus.Debugf("Now processing %s", fname)
			if err := saver.SaveFile(fname); err != nil {
				logrus.Errorf("%s: %v", fname, err)
				failed++
				continue
			}
			logrus.Infof("%s: saved %d plots", fname, len(saver.Saved))
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
