package filter

import (
	"errors"
	"fmt"
	"github.com/marcusnizalvarez/LCVCFtools/record"
	"golang.org/x/exp/slices"
	"strings"
)

var ErrAlleleDepthCount = errors.New("AD count mismatches allele count")

// AlleleFreq is the accumulated read fraction of one allele. Index 0 is
// the REF allele.
type AlleleFreq struct {
	Index int
	Freq  float64
}

// Alleles accumulates per-sample allele depth fractions for one record.
type Alleles []AlleleFreq

// NewAlleles returns an accumulator for n alleles, REF included.
func NewAlleles(n int) Alleles {
	a := make(Alleles, n)
	for i := range a {
		a[i].Index = i
	}
	return a
}

// AddDepths adds the AD field of one sample. Each allele receives its
// share of the sample's total depth, so every sample with reads weighs
// the same. A sample whose AD sums to zero adds nothing. Missing
// entries inside a list count as zero reads, but the list must carry
// one entry per allele, so a bare "." is an error.
func (a Alleles) AddDepths(ad string) error {
	words := strings.Split(ad, ",")
	if len(words) != len(a) {
		return fmt.Errorf("%w: AD %q has %d values, site has %d alleles", ErrAlleleDepthCount, ad, len(words), len(a))
	}
	depths := make([]int, len(words))
	var sum, v int
	var err error
	for i := range words {
		v, err = record.ParseInt(words[i])
		if err != nil {
			return err
		}
		if v > 0 {
			depths[i] = v
			sum += v
		}
	}
	if sum == 0 {
		return nil
	}
	for i := range depths {
		a[i].Freq += float64(depths[i]) / float64(sum)
	}
	return nil
}

// Sum of all accumulated frequencies.
func (a Alleles) Sum() float64 {
	var sum float64
	for i := range a {
		sum += a[i].Freq
	}
	return sum
}

// Normalize scales frequencies to sum to one. It reports false, and
// leaves a untouched, when nothing was accumulated.
func (a Alleles) Normalize() bool {
	sum := a.Sum()
	if sum == 0 {
		return false
	}
	for i := range a {
		a[i].Freq /= sum
	}
	return true
}

// Sort orders alleles by descending frequency. Ties keep the lower
// allele index first.
func (a Alleles) Sort() {
	slices.SortStableFunc(a, func(x, y AlleleFreq) int {
		switch {
		case x.Freq > y.Freq:
			return -1
		case x.Freq < y.Freq:
			return 1
		default:
			return x.Index - y.Index
		}
	})
}

// Major returns the most frequent allele. Sort must have been called.
func (a Alleles) Major() AlleleFreq {
	return a[0]
}
