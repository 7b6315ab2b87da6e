package main

import (
	"flag"
	"fmt"
	"github.com/marcusnizalvarez/LCVCFtools/config"
	"github.com/marcusnizalvarez/LCVCFtools/samples"
	"github.com/marcusnizalvarez/LCVCFtools/session"
	"github.com/marcusnizalvarez/LCVCFtools/stats"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
)

func filterUsage(filterFlags *flag.FlagSet) {
	fmt.Print(
		"filter - filter records of a low coverage VCF and mask genotypes with low depth or quality\n\n" +
			"Usage:\n" +
			"  lcvcftools filter [options] -i input.vcf > output.vcf\n" +
			"  zcat input.vcf.gz | lcvcftools filter [options] -i - > output.vcf\n\n" +
			"Options:\n")
	filterFlags.PrintDefaults()
}

func runFilter(args []string) {
	var err error
	opts, err := config.Load()
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %s", err))
	}
	filterFlags := flag.NewFlagSet("filter", flag.ExitOnError)

	filterFlags.StringVar(&opts.Input, "i", "", "Input VCF file. Use '-' to read from stdin.")
	filterFlags.StringVar(&opts.Output, "o", opts.Output, "Output VCF file.")
	filterFlags.IntVar(&opts.MinDP, "minDP", opts.MinDP, "Minimum depth for a genotype call. Calls below are set to missing.")
	filterFlags.IntVar(&opts.MinGQ, "minGQ", opts.MinGQ, "Minimum genotype quality for a genotype call. Calls below are set to missing.")
	filterFlags.Float64Var(&opts.MinGCR, "minGCR", opts.MinGCR, "Minimum fraction of samples with a genotype call to keep a record.")
	filterFlags.Float64Var(&opts.MAF, "MAF", opts.MAF, "Minimum minor allele frequency, computed from AD. Set to 0 to disable.")
	filterFlags.Var(&opts.DepthRates, "minDPR", "Depth rate as LEVEL:RATE. Keep records where at least RATE of samples have DP >= LEVEL. May be repeated.")
	filterFlags.Var(&opts.QualityRates, "minGQR", "Quality rate as LEVEL:RATE. Keep records where at least RATE of samples have GQ >= LEVEL. May be repeated.")
	filterFlags.StringVar(&opts.Remove, "remove", "", "File with sample IDs to remove, one per line.")
	filterFlags.StringVar(&opts.Keep, "keep", "", "File with sample IDs to keep, one per line.")
	filterFlags.BoolVar(&opts.SampleStats, "sample-stats", opts.SampleStats, "Compute per-sample depth and quality statistics over kept records.")
	filterFlags.StringVar(&opts.StatsFile, "stats-file", opts.StatsFile, "Output table for -sample-stats.")
	filterFlags.StringVar(&opts.StatsPlot, "stats-plot", opts.StatsPlot, "Also render the -sample-stats average curves to this image file (.png, .svg, .pdf).")
	filterFlags.IntVar(&opts.Ylim, "ylim", opts.Ylim, "Highest DP/GQ level reported by -sample-stats.")
	filterFlags.Float64Var(&opts.Threshold, "ylim-threshold", opts.Threshold, "Omit statistics table rows with a value below this fraction.")
	filterFlags.BoolVar(&opts.KeepMultiallelic, "keep-multiallelic", opts.KeepMultiallelic, "Do not remove multiallelic records.")
	filterFlags.BoolVar(&opts.RewriteId, "ID", opts.RewriteId, "Rewrite the ID column as CHROM:POS:REF:ALT.")
	filterFlags.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "Log progress every -status-freq records.")
	filterFlags.IntVar(&opts.StatusFreq, "status-freq", opts.StatusFreq, "Number of records between progress messages with -verbose.")

	err = filterFlags.Parse(args)
	exception.PanicOnErr(err)
	filterFlags.Usage = func() { filterUsage(filterFlags) }

	if err = opts.Validate(); err != nil {
		filterFlags.Usage()
		errExit(fmt.Sprintf("\nERROR: %s", err))
	}

	lcvcfFilter(opts)
}

func lcvcfFilter(opts *config.Options) {
	var remove, keep map[string]bool
	if opts.Remove != "" {
		remove = samples.ReadList(opts.Remove)
		log.Printf("%d samples listed for removal...\n", len(remove))
	}
	if opts.Keep != "" {
		keep = samples.ReadList(opts.Keep)
		log.Printf("%d samples listed to keep...\n", len(keep))
	}

	input := opts.Input
	if input == "-" {
		input = "stdin"
	}
	output := opts.Output
	if output == "-" {
		output = "stdout"
	}
	in := fileio.EasyOpen(input)
	out := fileio.EasyCreate(output)

	s := session.New(opts, session.EasyLines{EasyReader: in}, out)
	if err := s.Run(remove, keep); err != nil {
		log.Fatalln("ERROR:", err)
	}

	err := in.Close()
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)

	if s.Stats != nil {
		writeStats(opts, s.Stats)
	}
	log.Println("Finished.")
}

func writeStats(opts *config.Options, acc *stats.Accumulator) {
	log.Println("Calculating sample statistics...")
	summaries := acc.Finalize()
	statsOut := fileio.EasyCreate(opts.StatsFile)
	err := stats.WriteTable(statsOut, summaries, opts.Threshold)
	exception.PanicOnErr(err)
	err = statsOut.Close()
	exception.PanicOnErr(err)
	log.Printf("Sample statistics written to %s\n", opts.StatsFile)

	if len(summaries) == 0 {
		return
	}
	if opts.StatsPlot != "" {
		err = stats.SavePlot(opts.StatsPlot, summaries)
		exception.PanicOnErr(err)
	}
	if opts.Verbose {
		log.Printf("Average fraction of records with DP/GQ >= level:\n%s\n", stats.ASCII(summaries))
	}
}
