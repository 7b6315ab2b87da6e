package stats

import (
	"errors"
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"strconv"
	"strings"
)

// Variables written to the statistics table.
const (
	NMR         = "NMR"
	GCR         = "GCR"
	MeanDepth   = "MeanDepth"
	MeanQuality = "MeanQuality"
	DP          = "DP"
	GQ          = "GQ"
)

const tableHeader = "## Sample Statistics Table\n" +
	"## NMR=Non-missing rate; GCR=Genotype call rate; MeanDepth/MeanQuality=Mean DP/GQ over levels 1..Ylim; DP/GQ=Fraction of records at or above a given level\n" +
	"Sample\tVariable\tLevel\tValue\n"

var ErrTable = errors.New("malformed statistics table")

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'e', 5, 64)
}

// WriteTable writes summaries as a Sample/Variable/Level/Value table.
// DP and GQ rows below threshold are left out.
func WriteTable(w io.Writer, summaries []Summary, threshold float64) error {
	var err error
	if _, err = io.WriteString(w, tableHeader); err != nil {
		return err
	}
	s := new(strings.Builder)
	for _, x := range summaries {
		s.Reset()
		fmt.Fprintf(s, "%s\t%s\t.\t%s\n", x.Name, NMR, formatValue(x.NMR))
		fmt.Fprintf(s, "%s\t%s\t.\t%s\n", x.Name, GCR, formatValue(x.GCR))
		fmt.Fprintf(s, "%s\t%s\t.\t%s\n", x.Name, MeanDepth, formatValue(x.MeanDepth))
		fmt.Fprintf(s, "%s\t%s\t.\t%s\n", x.Name, MeanQuality, formatValue(x.MeanQuality))
		writeLevels(s, x.Name, DP, x.Depth, threshold)
		writeLevels(s, x.Name, GQ, x.Quality, threshold)
		if _, err = io.WriteString(w, s.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeLevels(s *strings.Builder, name, variable string, values []float64, threshold float64) {
	for lvl := 1; lvl < len(values); lvl++ {
		if values[lvl] < threshold {
			continue
		}
		fmt.Fprintf(s, "%s\t%s\t%d\t%s\n", name, variable, lvl, formatValue(values[lvl]))
	}
}

// ReadTable reads a table written by WriteTable. Suppressed DP/GQ rows
// read back as zero; curves are sized by ylim.
func ReadTable(filename string, ylim int) ([]Summary, error) {
	var line string
	var done bool
	var lineNum int
	var ans []Summary
	idx := make(map[string]int)

	in := fileio.EasyOpen(filename)
	defer cleanup(in)
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		lineNum++
		if line == "" || strings.HasPrefix(line, "Sample\t") {
			continue
		}
		words := strings.Split(line, "\t")
		if len(words) != 4 {
			return nil, fmt.Errorf("%w: line %d has %d columns", ErrTable, lineNum, len(words))
		}
		i, found := idx[words[0]]
		if !found {
			i = len(ans)
			idx[words[0]] = i
			ans = append(ans, Summary{Name: words[0], Depth: make([]float64, ylim+1), Quality: make([]float64, ylim+1)})
		}
		v, err := strconv.ParseFloat(words[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrTable, lineNum, err)
		}
		switch words[1] {
		case NMR:
			ans[i].NMR = v
		case GCR:
			ans[i].GCR = v
		case MeanDepth:
			ans[i].MeanDepth = v
		case MeanQuality:
			ans[i].MeanQuality = v
		case DP, GQ:
			lvl, err := strconv.Atoi(words[2])
			if err != nil || lvl < 0 {
				return nil, fmt.Errorf("%w: line %d: bad level %q", ErrTable, lineNum, words[2])
			}
			if lvl > ylim {
				continue
			}
			if words[1] == DP {
				ans[i].Depth[lvl] = v
			} else {
				ans[i].Quality[lvl] = v
			}
		default:
			return nil, fmt.Errorf("%w: line %d: unknown variable %q", ErrTable, lineNum, words[1])
		}
	}
	return ans, nil
}

func cleanup(f io.Closer) {
	err := f.Close()
	exception.PanicOnErr(err)
}
