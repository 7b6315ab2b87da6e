package main

import (
	"flag"
	"fmt"
	"github.com/marcusnizalvarez/LCVCFtools/stats"
	"github.com/vertgenlab/gonomics/exception"
	"log"
)

func plotStatsUsage(plotFlags *flag.FlagSet) {
	fmt.Print(
		"plotstats - plot the average DP and GQ curves of a table written by filter -sample-stats\n\n" +
			"Usage:\n" +
			"  lcvcftools plotstats [options] -i stats1.tsv\n" +
			"  lcvcftools plotstats [options] -i stats1.tsv -o stats.png\n\n" +
			"Options:\n")
	plotFlags.PrintDefaults()
}

func runPlotStats(args []string) {
	var err error
	plotFlags := flag.NewFlagSet("plotstats", flag.ExitOnError)

	input := plotFlags.String("i", "", "Statistics table written by filter -sample-stats.")
	output := plotFlags.String("o", "", "Output image file (.png, .svg, .pdf). If empty the curves are drawn to stdout.")
	ylim := plotFlags.Int("ylim", 100, "Highest DP/GQ level to plot.")

	err = plotFlags.Parse(args)
	exception.PanicOnErr(err)
	plotFlags.Usage = func() { plotStatsUsage(plotFlags) }

	if *input == "" {
		plotFlags.Usage()
		errExit("\nERROR: must have input for -i")
	}
	if *ylim <= 0 {
		plotFlags.Usage()
		errExit("\nERROR: -ylim must be greater than 0")
	}

	plotStats(*input, *output, *ylim)
}

func plotStats(input, output string, ylim int) {
	summaries, err := stats.ReadTable(input, ylim)
	if err != nil {
		log.Fatalln("ERROR:", err)
	}
	if len(summaries) == 0 {
		log.Fatalf("ERROR: no samples found in %s\n", input)
	}
	log.Printf("%d samples read from %s\n", len(summaries), input)

	if output == "" {
		fmt.Println(stats.ASCII(summaries))
		return
	}
	err = stats.SavePlot(output, summaries)
	exception.PanicOnErr(err)
}
