package stats

import (
	"github.com/vertgenlab/gonomics/numbers"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
	"math"
)

// Sample holds the running statistics of one retained sample. Depth
// and Quality are histograms with Ylim+1 buckets; values above Ylim
// land in the top bucket.
type Sample struct {
	Name       string
	Depth      []int
	Quality    []int
	NonMissing int
	Called     int
}

// Accumulator collects per-sample statistics over kept records.
type Accumulator struct {
	Samples []Sample
	Records int
	ylim    int
}

// New returns an Accumulator for the named samples.
func New(names []string, ylim int) *Accumulator {
	a := &Accumulator{Samples: make([]Sample, len(names)), ylim: ylim}
	for i := range names {
		a.Samples[i] = Sample{
			Name:    names[i],
			Depth:   make([]int, ylim+1),
			Quality: make([]int, ylim+1),
		}
	}
	return a
}

// Ylim is the top histogram bucket.
func (a *Accumulator) Ylim() int {
	return a.ylim
}

// Add updates the statistics with one kept record. depths and
// qualities are indexed like Samples; called may be nil.
func (a *Accumulator) Add(depths, qualities []int, called []bool) {
	a.Records++
	for i := range a.Samples {
		s := &a.Samples[i]
		s.Depth[a.clamp(depths[i])]++
		s.Quality[a.clamp(qualities[i])]++
		if depths[i] > 0 {
			s.NonMissing++
		}
		if called != nil && called[i] {
			s.Called++
		}
	}
}

func (a *Accumulator) clamp(v int) int {
	return numbers.Min(numbers.Max(v, 0), a.ylim)
}

// Summary is the finalized statistics of one sample. Depth[i] and
// Quality[i] are the fraction of kept records with a value >= i.
type Summary struct {
	Name        string
	NMR         float64
	GCR         float64
	MeanDepth   float64
	MeanQuality float64
	Depth       []float64
	Quality     []float64
}

// Finalize computes one Summary per sample, sorted by descending
// non-missing rate. The Accumulator is left unchanged.
func (a *Accumulator) Finalize() []Summary {
	ans := make([]Summary, len(a.Samples))
	for i := range a.Samples {
		s := &a.Samples[i]
		ans[i] = Summary{
			Name:        s.Name,
			NMR:         fraction(s.NonMissing, a.Records),
			GCR:         fraction(s.Called, a.Records),
			MeanDepth:   bucketMean(s.Depth),
			MeanQuality: bucketMean(s.Quality),
			Depth:       atLeast(s.Depth, a.Records),
			Quality:     atLeast(s.Quality, a.Records),
		}
	}
	slices.SortStableFunc(ans, func(x, y Summary) int {
		switch {
		case x.NMR > y.NMR:
			return -1
		case x.NMR < y.NMR:
			return 1
		default:
			return 0
		}
	})
	return ans
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// bucketMean is the mean of the bucket index weighted by bucket count,
// ignoring bucket 0.
func bucketMean(hist []int) float64 {
	if len(hist) < 2 {
		return 0
	}
	levels := make([]float64, len(hist)-1)
	weights := make([]float64, len(hist)-1)
	for i := 1; i < len(hist); i++ {
		levels[i-1] = float64(i)
		weights[i-1] = float64(hist[i])
	}
	m := stat.Mean(levels, weights)
	if math.IsNaN(m) {
		return 0
	}
	return m
}

// atLeast converts a histogram into the fraction of total at or above
// each bucket by summing from the top bucket down.
func atLeast(hist []int, total int) []float64 {
	ans := make([]float64, len(hist))
	var sum int
	for i := len(hist) - 1; i >= 0; i-- {
		sum += hist[i]
		ans[i] = fraction(sum, total)
	}
	return ans
}

// Average returns the mean cumulative depth and quality curves over
// all samples.
func Average(s []Summary) (depth, quality []float64) {
	if len(s) == 0 {
		return nil, nil
	}
	depth = make([]float64, len(s[0].Depth))
	quality = make([]float64, len(s[0].Quality))
	col := make([]float64, len(s))
	for lvl := range depth {
		for i := range s {
			col[i] = valueAt(s[i].Depth, lvl)
		}
		depth[lvl] = stat.Mean(col, nil)
	}
	for lvl := range quality {
		for i := range s {
			col[i] = valueAt(s[i].Quality, lvl)
		}
		quality[lvl] = stat.Mean(col, nil)
	}
	return depth, quality
}

func valueAt(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}
