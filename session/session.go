package session

import (
	"errors"
	"fmt"
	"github.com/marcusnizalvarez/LCVCFtools/config"
	"github.com/marcusnizalvarez/LCVCFtools/filter"
	"github.com/marcusnizalvarez/LCVCFtools/record"
	"github.com/marcusnizalvarez/LCVCFtools/samples"
	"github.com/marcusnizalvarez/LCVCFtools/stats"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"log"
	"strings"
	"time"
)

const (
	ProgramName = "LCVCFtools"
	Version     = "1.0.4"
	DateLayout  = "02-01-2006 15:04:05"
)

var (
	ErrNoHeader     = errors.New("can't read VCF file, check the file format")
	ErrHeaderPrefix = errors.New("VCF header without '#' starting character")
	ErrDataComment  = errors.New("header line found among records")
)

// LineReader yields one line per call, without the line terminator.
// done is true once the input is exhausted.
type LineReader interface {
	NextLine() (line string, done bool)
}

// EasyLines adapts a gonomics EasyReader to LineReader.
type EasyLines struct {
	*fileio.EasyReader
}

func (e EasyLines) NextLine() (string, bool) {
	return fileio.EasyNextLine(e.EasyReader)
}

// Session is one filtering run. It owns the schema cache (through the
// record parser), the gate counters and the sample statistics.
type Session struct {
	Options   *config.Options
	Selection *samples.Selection
	Stats     *stats.Accumulator
	Date      string

	Input  int
	Output int

	in      LineReader
	out     io.Writer
	parser  *record.Parser
	cascade *filter.Cascade
	buf     strings.Builder
}

// New prepares a session reading from in and writing to out.
func New(opts *config.Options, in LineReader, out io.Writer) *Session {
	return &Session{
		Options: opts,
		Date:    time.Now().Format(DateLayout),
		in:      in,
		out:     out,
	}
}

// Run processes the whole input. remove and keep are optional sample
// sets; at most one may be non-nil.
func (s *Session) Run(remove, keep map[string]bool) error {
	log.Printf("Running %s v%s\n", ProgramName, Version)
	log.Printf("Running with parameters: %s\n", s.Options.ParamString())
	log.Println("Starting...")
	if err := s.ReadHeader(remove, keep); err != nil {
		return err
	}
	if err := s.ReadData(); err != nil {
		return err
	}
	log.Println(s.Status())
	return nil
}

// ReadHeader consumes meta-information lines and the #CHROM line,
// resolves the sample selection and writes the output header.
func (s *Session) ReadHeader(remove, keep map[string]bool) error {
	var line string
	var done bool
	var comments []string
	for {
		line, done = s.in.NextLine()
		if done {
			return ErrNoHeader
		}
		if !strings.HasPrefix(line, "#") {
			return ErrHeaderPrefix
		}
		if strings.HasPrefix(line, "#CHROM") {
			break
		}
		comments = append(comments, line)
	}

	names, err := samples.ParseHeader(line)
	if err != nil {
		return err
	}
	log.Printf("%d samples identified...\n", len(names))
	s.Selection, err = samples.Select(names, remove, keep)
	if err != nil {
		return err
	}
	if remove != nil || keep != nil {
		log.Printf("%d samples remaining after sample selection...\n", len(s.Selection.Retained))
	}

	s.parser = s.Selection.Parser()
	s.cascade = filter.New(s.Options.Filter, s.parser.Retained())
	if s.Options.SampleStats {
		s.Stats = stats.New(s.Selection.Retained, s.Options.Ylim)
	}

	for _, c := range comments {
		if err = s.writeLine(c); err != nil {
			return err
		}
	}
	if err = s.writeLine(s.MetaLine()); err != nil {
		return err
	}
	return s.writeLine(s.Selection.HeaderLine())
}

// MetaLine is the meta-information line describing this run.
func (s *Session) MetaLine() string {
	return fmt.Sprintf("##%s_v%s %sDate=%s", ProgramName, Version, s.Options.ParamString(), s.Date)
}

// ReadData filters every remaining line. It stops at the first
// malformed line.
func (s *Session) ReadData() error {
	var line string
	var done bool
	var sinceStatus int
	for line, done = s.in.NextLine(); !done; line, done = s.in.NextLine() {
		if line == "" {
			continue
		}
		s.Input++
		if line[0] == '#' {
			return fmt.Errorf("record %d: %w", s.Input, ErrDataComment)
		}
		kept, err := s.process(line)
		if err != nil {
			return fmt.Errorf("record %d: %w", s.Input, err)
		}
		if kept {
			s.Output++
		}
		if s.Options.Verbose {
			sinceStatus++
			if sinceStatus >= s.Options.StatusFreq {
				sinceStatus = 0
				log.Println(s.Status())
			}
		}
	}
	return nil
}

func (s *Session) process(line string) (bool, error) {
	rec, err := s.parser.Parse(line)
	if err != nil {
		return false, err
	}
	res, err := s.cascade.Apply(rec)
	if err != nil || !res.Kept {
		return false, err
	}
	if s.Stats != nil {
		s.Stats.Add(res.Depths, res.Qualities, res.Called)
	}
	s.buf.Reset()
	rec.Format(&s.buf)
	return true, s.writeLine(s.buf.String())
}

func (s *Session) writeLine(line string) error {
	if _, err := io.WriteString(s.out, line); err != nil {
		return err
	}
	_, err := io.WriteString(s.out, "\n")
	return err
}

// Counters returns the per-gate rejection counts so far.
func (s *Session) Counters() filter.Counters {
	if s.cascade == nil {
		return filter.Counters{}
	}
	return s.cascade.Counters
}

func percent(n, total int) float64 {
	return float64(n) / float64(total) * 100
}

// Status summarizes input/output counts and the share of records
// removed by each active gate.
func (s *Session) Status() string {
	if s.Input == 0 {
		return "Input=0;Output=0"
	}
	c := s.Counters()
	f := s.Options.Filter
	b := new(strings.Builder)
	fmt.Fprintf(b, "Input=%d;Output=%d(%.1f%%);Filtered:{", s.Input, s.Output, percent(s.Output, s.Input))
	if !f.KeepMultiallelic {
		fmt.Fprintf(b, "MAL=%.1f%%;", percent(c.Multiallelic, s.Input))
	}
	if f.MinGCR > 0 {
		fmt.Fprintf(b, "GCR=%.1f%%;", percent(c.CallRate, s.Input))
	}
	if f.MAF > 0 {
		fmt.Fprintf(b, "MAF=%.1f%%;", percent(c.MinorAllele, s.Input))
	}
	for i, p := range f.DepthRates {
		fmt.Fprintf(b, "DPR[%d,%.1f]=%.1f%%;", p.Level, p.Rate, percent(c.DepthRate[i], s.Input))
	}
	for i, p := range f.QualityRates {
		fmt.Fprintf(b, "GQR[%d,%.1f]=%.1f%%;", p.Level, p.Rate, percent(c.QualityRate[i], s.Input))
	}
	b.WriteString("}...")
	return b.String()
}
