package filter

import (
	"fmt"
	"github.com/marcusnizalvarez/LCVCFtools/config"
	"github.com/marcusnizalvarez/LCVCFtools/record"
)

// Gate identifies the step of the cascade that rejected a record.
type Gate int

const (
	Pass Gate = iota
	Multiallelic
	CallRate
	DepthRate
	QualityRate
	MinorAllele
)

func (g Gate) String() string {
	switch g {
	case Pass:
		return "PASS"
	case Multiallelic:
		return "MAL"
	case CallRate:
		return "GCR"
	case DepthRate:
		return "DPR"
	case QualityRate:
		return "GQR"
	case MinorAllele:
		return "MAF"
	default:
		return fmt.Sprintf("Gate(%d)", int(g))
	}
}

// Missing genotype written over calls that fail minDP or minGQ.
const MissingGT = "./."

// Counters holds the number of records rejected by each gate. DepthRate
// and QualityRate have one entry per configured pair.
type Counters struct {
	Multiallelic int
	CallRate     int
	MinorAllele  int
	DepthRate    []int
	QualityRate  []int
}

// Result is the outcome of Apply. The slices are owned by the Cascade
// and are only valid until the next call to Apply.
type Result struct {
	Kept bool
	Gate Gate
	Pair int // index of the rejecting DPR/GQR pair

	// per retained sample: parsed DP (-1 when missing), GQ (0 when DP
	// is 0), and whether the call passed minDP and minGQ.
	Depths    []int
	Qualities []int
	Called    []bool

	CallRate float64
	Alleles  Alleles
}

// Cascade applies the filter gates in order to one record at a time.
type Cascade struct {
	cfg      config.Filter
	Counters Counters

	depths    []int
	qualities []int
	called    []bool
}

// New returns a Cascade for records carrying nSamples samples.
func New(cfg config.Filter, nSamples int) *Cascade {
	return &Cascade{
		cfg: cfg,
		Counters: Counters{
			DepthRate:   make([]int, len(cfg.DepthRates)),
			QualityRate: make([]int, len(cfg.QualityRates)),
		},
		depths:    make([]int, nSamples),
		qualities: make([]int, nSamples),
		called:    make([]bool, nSamples),
	}
}

// Apply runs the cascade on rec, editing sample fields in place. A
// rejected record is reported through Result, not as an error; errors
// are reserved for malformed data.
func (c *Cascade) Apply(rec *record.Record) (Result, error) {
	var err error
	var res Result

	if !c.cfg.KeepMultiallelic && rec.AlleleCount() > 2 {
		c.Counters.Multiallelic++
		res.Gate = Multiallelic
		return res, nil
	}

	n := len(rec.Sample)
	if cap(c.depths) < n {
		c.depths = make([]int, n)
		c.qualities = make([]int, n)
		c.called = make([]bool, n)
	}
	res.Depths = c.depths[:n]
	res.Qualities = c.qualities[:n]
	res.Called = c.called[:n]
	res.Alleles = NewAlleles(rec.AlleleCount())

	var called, dp, gq int
	for i := range rec.Sample {
		s := &rec.Sample[i]
		if dp, err = record.ParseInt(s.DP()); err != nil {
			return res, fmt.Errorf("DP of sample %d: %w", i+1, err)
		}
		if gq, err = record.ParseInt(s.GQ()); err != nil {
			return res, fmt.Errorf("GQ of sample %d: %w", i+1, err)
		}
		res.Called[i] = false

		if dp == 0 {
			s.SetGT(MissingGT)
			s.SetGQ("0")
			s.SetPL(record.ZeroList(s.PL()))
			s.SetAD(record.ZeroList(s.AD()))
			gq = 0
		} else {
			if dp >= c.cfg.MinDP && gq >= c.cfg.MinGQ {
				called++
				res.Called[i] = true
			} else {
				s.SetGT(MissingGT)
			}
			if err = res.Alleles.AddDepths(s.AD()); err != nil {
				return res, fmt.Errorf("sample %d: %w", i+1, err)
			}
		}
		res.Depths[i] = dp
		res.Qualities[i] = gq
	}

	if n > 0 {
		res.CallRate = float64(called) / float64(n)
	}
	if res.CallRate < c.cfg.MinGCR {
		c.Counters.CallRate++
		res.Gate = CallRate
		return res, nil
	}

	for i, p := range c.cfg.DepthRates {
		if belowRate(res.Depths, p) {
			c.Counters.DepthRate[i]++
			res.Gate, res.Pair = DepthRate, i
			return res, nil
		}
	}
	for i, p := range c.cfg.QualityRates {
		if belowRate(res.Qualities, p) {
			c.Counters.QualityRate[i]++
			res.Gate, res.Pair = QualityRate, i
			return res, nil
		}
	}

	if c.cfg.MAF > 0 {
		if !res.Alleles.Normalize() {
			c.Counters.MinorAllele++
			res.Gate = MinorAllele
			return res, nil
		}
		res.Alleles.Sort()
		if 1-res.Alleles.Major().Freq < c.cfg.MAF {
			c.Counters.MinorAllele++
			res.Gate = MinorAllele
			return res, nil
		}
	}

	if c.cfg.RewriteId {
		rec.Id = rec.SiteId()
	}
	res.Kept = true
	return res, nil
}

// belowRate reports whether the fraction of values >= p.Level is
// strictly less than p.Rate.
func belowRate(values []int, p config.RatePair) bool {
	if len(values) == 0 {
		return false
	}
	var count int
	for _, v := range values {
		if v >= p.Level {
			count++
		}
	}
	return float64(count)/float64(len(values)) < p.Rate
}
