package config

import (
	"errors"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of the environment variables read by Load,
// e.g. LCVCF_MINDP or LCVCF_YLIM.
const EnvPrefix = "LCVCF"

// RatePair is a (level, rate) threshold: at least Rate of the samples
// must have a value >= Level.
type RatePair struct {
	Level int
	Rate  float64
}

// RatePairs is a custom type that gets filled by flag.Parse() from
// repeated LEVEL:RATE arguments.
type RatePairs []RatePair

// String to satisfy flag.Value interface
func (r *RatePairs) String() string {
	if r == nil {
		return ""
	}
	s := make([]string, len(*r))
	for i, p := range *r {
		s[i] = fmt.Sprintf("%d:%g", p.Level, p.Rate)
	}
	return strings.Join(s, " ")
}

// Set to satisfy flag.Value interface
func (r *RatePairs) Set(value string) error {
	words := strings.Split(value, ":")
	if len(words) != 2 {
		return fmt.Errorf("expected LEVEL:RATE, got %q", value)
	}
	level, err := strconv.Atoi(words[0])
	if err != nil {
		return fmt.Errorf("invalid level in %q: %w", value, err)
	}
	rate, err := strconv.ParseFloat(words[1], 64)
	if err != nil {
		return fmt.Errorf("invalid rate in %q: %w", value, err)
	}
	*r = append(*r, RatePair{Level: level, Rate: rate})
	return nil
}

// Filter holds the thresholds of the filter cascade.
type Filter struct {
	MinDP            int       `envconfig:"MINDP" default:"5"`
	MinGQ            int       `envconfig:"MINGQ" default:"20"`
	MinGCR           float64   `envconfig:"MINGCR" default:"0"`
	MAF              float64   `envconfig:"MAF" default:"0.1"`
	DepthRates       RatePairs `ignored:"true"`
	QualityRates     RatePairs `ignored:"true"`
	KeepMultiallelic bool      `envconfig:"KEEP_MULTIALLELIC" default:"false"`
	RewriteId        bool      `envconfig:"ID" default:"false"`
}

// Options holds every parameter of a filter run.
type Options struct {
	Filter
	Input       string  `ignored:"true"`
	Output      string  `envconfig:"OUTPUT" default:"stdout"`
	Remove      string  `ignored:"true"`
	Keep        string  `ignored:"true"`
	SampleStats bool    `envconfig:"SAMPLE_STATS" default:"false"`
	StatsFile   string  `envconfig:"STATS_FILE" default:"stats1.tsv"`
	StatsPlot   string  `envconfig:"STATS_PLOT"`
	Ylim        int     `envconfig:"YLIM" default:"100"`
	Threshold   float64 `envconfig:"YLIM_THRESHOLD" default:"0.001"`
	Verbose     bool    `envconfig:"VERBOSE" default:"false"`
	StatusFreq  int     `envconfig:"STATUS_FREQ" default:"10000"`
}

// Load returns Options filled with defaults, overridden by any LCVCF_*
// environment variables.
func Load() (*Options, error) {
	o := new(Options)
	if err := envconfig.Process(EnvPrefix, o); err != nil {
		return nil, err
	}
	return o, nil
}

var ErrConfig = errors.New("invalid configuration")

func invalid(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, a...))
}

// Validate checks ranges and combinations of options before any input
// is read.
func (o *Options) Validate() error {
	if o.Input == "" {
		return invalid("missing input file")
	}
	if o.MinDP <= 0 {
		return invalid("minDP must be greater than 0")
	}
	if o.MinGQ <= 0 {
		return invalid("minGQ must be greater than 0")
	}
	if o.MinGCR < 0 || o.MinGCR > 1 {
		return invalid("minGCR must be between 0 and 1")
	}
	if o.MAF < 0 || o.MAF > 1 {
		return invalid("MAF must be between 0 and 1")
	}
	if err := checkRates("minDPR", o.DepthRates); err != nil {
		return err
	}
	if err := checkRates("minGQR", o.QualityRates); err != nil {
		return err
	}
	if o.Remove != "" && o.Keep != "" {
		return invalid("remove and keep lists are mutually exclusive")
	}
	if o.Ylim <= 0 {
		return invalid("ylim must be greater than 0")
	}
	if o.Threshold < 0 || o.Threshold > 1 {
		return invalid("ylim threshold must be between 0 and 1")
	}
	if o.StatusFreq <= 0 {
		return invalid("status frequency must be greater than 0")
	}
	if o.StatsPlot != "" && !o.SampleStats {
		return invalid("stats plot requires sample statistics")
	}
	return nil
}

func checkRates(name string, pairs RatePairs) error {
	for _, p := range pairs {
		if p.Level < 0 {
			return invalid("level for %s must not be negative", name)
		}
		if p.Rate < 0 || p.Rate > 1 {
			return invalid("rate for %s must be between 0 and 1", name)
		}
	}
	return nil
}

// ParamString renders the filter thresholds as written to the output
// metadata line.
func (f *Filter) ParamString() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "minGQ=%d;minDP=%d;minGCR=%.2f;MAF=%.2f;", f.MinGQ, f.MinDP, f.MinGCR, f.MAF)
	for i, p := range f.DepthRates {
		fmt.Fprintf(s, "minDPR%d=[%d;%.2f];", i+1, p.Level, p.Rate)
	}
	for i, p := range f.QualityRates {
		fmt.Fprintf(s, "minGQR%d=[%d;%.2f];", i+1, p.Level, p.Rate)
	}
	return s.String()
}
