package main

import (
	"flag"
	"fmt"
	"github.com/marcusnizalvarez/LCVCFtools/session"
	"os"
	"strings"
	"text/tabwriter"
)

const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands contains all valid subcommands.
var SubCommands = []*subcommand{
	{"filter", runFilter, "filter low coverage VCF records and mask unreliable calls"},
	{"plotstats", runPlotStats, "plot a per-sample statistics table written by filter"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: lcvcftools (tools for low coverage VCF files)\n" +
			"Version: " + session.Version + " (gonomics " + gonomicsVersion + ")\n" +
			"\nUsage:\tlcvcftools <command> [options]\n\n" +
			"Commands:\n")

	// add subcommand text via tabwriter so the columns align
	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

// commandMap builds a map of possible subcommands keyed on the name of the subcommand
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	flag.Usage = usage
	flag.Parse()

	// first argument selects the subcommand
	command := commandMap()[flag.Arg(0)]

	// unknown or missing subcommand prints the usage
	if command == nil {
		flag.Usage()
		return
	}

	// subcommands parse the remaining arguments with their own FlagSet
	command(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
