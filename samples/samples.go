package samples

import (
	"errors"
	"fmt"
	"github.com/bits-and-blooms/bitset"
	"github.com/marcusnizalvarez/LCVCFtools/record"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"strings"
)

var (
	ErrHeader    = errors.New("invalid header line")
	ErrNoSamples = errors.New("no samples in VCF file")
	ErrExclusive = errors.New("remove and keep lists are mutually exclusive")
)

// HeaderColumns are the fixed columns expected on the #CHROM line.
var HeaderColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}

// Selection is the result of resolving remove/keep lists against the
// sample names of a header.
type Selection struct {
	Names    []string       // every sample in the header, in column order
	Retained []string       // samples kept in the output, in column order
	Exclude  *bitset.BitSet // zero based indices of dropped sample columns
}

// ReadList reads a file with one sample ID per line. Blank lines are
// ignored.
func ReadList(filename string) map[string]bool {
	var line string
	var done bool
	ans := make(map[string]bool)
	in := fileio.EasyOpen(filename)
	for line, done = fileio.EasyNextLine(in); !done; line, done = fileio.EasyNextLine(in) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ans[line] = true
	}
	cleanup(in)
	return ans
}

func cleanup(f *fileio.EasyReader) {
	err := f.Close()
	exception.PanicOnErr(err)
}

// ParseHeader checks the fixed columns of the #CHROM line and returns
// the sample names that follow them.
func ParseHeader(line string) ([]string, error) {
	words := strings.Split(line, "\t")
	if len(words) < len(HeaderColumns) {
		return nil, fmt.Errorf("%w: found %d columns, need at least %d", ErrHeader, len(words), len(HeaderColumns))
	}
	for i := range HeaderColumns {
		if words[i] != HeaderColumns[i] {
			return nil, fmt.Errorf("%w: %s column must be %s", ErrHeader, words[i], HeaderColumns[i])
		}
	}
	return words[len(HeaderColumns):], nil
}

// Select resolves the optional remove and keep sets against names. A
// nil set is inactive. Samples in remove, or absent from keep, are
// excluded. Names listed but absent from the header are ignored.
func Select(names []string, remove, keep map[string]bool) (*Selection, error) {
	if remove != nil && keep != nil {
		return nil, ErrExclusive
	}
	if len(names) == 0 {
		return nil, ErrNoSamples
	}
	s := &Selection{
		Names:   names,
		Exclude: bitset.New(uint(len(names))),
	}
	for i, name := range names {
		if (remove != nil && remove[name]) || (keep != nil && !keep[name]) {
			s.Exclude.Set(uint(i))
			continue
		}
		s.Retained = append(s.Retained, name)
	}
	if len(s.Retained) == 0 {
		return nil, fmt.Errorf("%w: all %d samples excluded", ErrNoSamples, len(names))
	}
	return s, nil
}

// Parser returns a record parser that drops the excluded columns.
func (s *Selection) Parser() *record.Parser {
	return record.NewParser(len(s.Names), s.Exclude)
}

// HeaderLine returns the #CHROM line for the retained samples.
func (s *Selection) HeaderLine() string {
	return strings.Join(HeaderColumns, "\t") + "\t" + strings.Join(s.Retained, "\t")
}
