package filter

import (
	"errors"
	"github.com/marcusnizalvarez/LCVCFtools/config"
	"github.com/marcusnizalvarez/LCVCFtools/record"
	"math"
	"strings"
	"testing"
)

func defaultConfig() config.Filter {
	return config.Filter{MinDP: 5, MinGQ: 20, MAF: 0}
}

func parse(t *testing.T, alt string, samples ...string) *record.Record {
	t.Helper()
	line := "chr1\t100\trs1\tA\t" + alt + "\t50\tPASS\t.\tGT:AD:DP:GQ:PL\t" + strings.Join(samples, "\t")
	r, err := record.NewParser(len(samples), nil).Parse(line)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestZeroDepth(t *testing.T) {
	c := New(defaultConfig(), 2)
	r := parse(t, "G", "0/1:3,2:0:30:40,0,40", "0/1:5,5:10:30:40,0,40")
	res, err := c.Apply(r)
	if err != nil {
		t.Fatal(err)
	}
	s := r.Sample[0]
	if s.GT() != "./." || s.GQ() != "0" || s.PL() != "0,0,0" || s.AD() != "0,0" || s.DP() != "0" {
		t.Error("problem zeroing sample with DP=0", s.Fields)
	}
	if r.Sample[1].GT() != "0/1" {
		t.Error("passing sample was masked", r.Sample[1].Fields)
	}
	if res.Qualities[0] != 0 || res.Depths[0] != 0 || res.Called[0] || !res.Called[1] {
		t.Error("problem with per-sample values", res.Depths, res.Qualities, res.Called)
	}
	if res.CallRate != 0.5 {
		t.Error("expected call rate 0.5, got", res.CallRate)
	}
}

func TestLowDepthMasksGenotypeOnly(t *testing.T) {
	c := New(defaultConfig(), 2)
	r := parse(t, "G", "0/1:1,2:3:25:40,0,40", "0/1:5,5:10:15:40,0,40")
	res, err := c.Apply(r)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Kept {
		t.Error("record should be kept, rejected by", res.Gate)
	}
	s := r.Sample[0]
	if s.GT() != "./." || s.GQ() != "25" || s.DP() != "3" || s.AD() != "1,2" || s.PL() != "40,0,40" {
		t.Error("low depth sample changed beyond GT", s.Fields)
	}
	if r.Sample[1].GT() != "./." || r.Sample[1].GQ() != "15" {
		t.Error("low quality sample not masked", r.Sample[1].Fields)
	}
	if res.CallRate != 0 {
		t.Error("expected call rate 0, got", res.CallRate)
	}
}

func TestMultiallelic(t *testing.T) {
	c := New(defaultConfig(), 1)
	r := parse(t, "G,T", "0/1:5,5,0:10:30:40,0,40,40,40,40")
	res, err := c.Apply(r)
	if err != nil {
		t.Fatal(err)
	}
	if res.Kept || res.Gate != Multiallelic || c.Counters.Multiallelic != 1 {
		t.Error("multiallelic record not rejected", res.Gate, c.Counters)
	}
	if r.Sample[0].GT() != "0/1" {
		t.Error("rejected multiallelic record was modified")
	}

	cfg := defaultConfig()
	cfg.KeepMultiallelic = true
	c = New(cfg, 1)
	if res, _ = c.Apply(parse(t, "G,T", "0/1:5,5,0:10:30:40,0,40,40,40,40")); !res.Kept {
		t.Error("multiallelic record rejected with keep option", res.Gate)
	}
}

func TestCallRate(t *testing.T) {
	cfg := defaultConfig()
	cfg.MinGCR = 0.6
	c := New(cfg, 2)
	res, _ := c.Apply(parse(t, "G", "0/1:1,2:3:25:40,0,40", "0/1:5,5:10:30:40,0,40"))
	if res.Kept || res.Gate != CallRate || c.Counters.CallRate != 1 {
		t.Error("expected call rate rejection", res.Gate)
	}
	cfg.MinGCR = 0.5
	c = New(cfg, 2)
	if res, _ = c.Apply(parse(t, "G", "0/1:1,2:3:25:40,0,40", "0/1:5,5:10:30:40,0,40")); !res.Kept {
		t.Error("call rate equal to minimum should pass", res.Gate)
	}
}

func TestDepthRateBoundary(t *testing.T) {
	cfg := defaultConfig()
	cfg.DepthRates = config.RatePairs{{Level: 10, Rate: 0.5}}
	c := New(cfg, 2)
	// exactly half the samples have DP >= 10
	res, _ := c.Apply(parse(t, "G", "0/1:5,5:10:30:40,0,40", "0/1:3,3:6:30:40,0,40"))
	if !res.Kept {
		t.Error("fraction equal to rate must pass", res.Gate)
	}

	cfg.DepthRates = config.RatePairs{{Level: 1, Rate: 0}, {Level: 10, Rate: 0.51}}
	c = New(cfg, 2)
	res, _ = c.Apply(parse(t, "G", "0/1:5,5:10:30:40,0,40", "0/1:3,3:6:30:40,0,40"))
	if res.Kept || res.Gate != DepthRate || res.Pair != 1 || c.Counters.DepthRate[1] != 1 || c.Counters.DepthRate[0] != 0 {
		t.Error("expected rejection by second depth pair", res.Gate, res.Pair, c.Counters.DepthRate)
	}
}

func TestQualityRate(t *testing.T) {
	cfg := defaultConfig()
	cfg.QualityRates = config.RatePairs{{Level: 30, Rate: 1}}
	c := New(cfg, 2)
	// sample 2 has DP=0 so its GQ counts as 0
	res, _ := c.Apply(parse(t, "G", "0/1:5,5:10:30:40,0,40", "0/1:0,0:0:99:40,0,40"))
	if res.Kept || res.Gate != QualityRate || c.Counters.QualityRate[0] != 1 {
		t.Error("expected quality rate rejection", res.Gate)
	}
}

func TestMinorAlleleFrequency(t *testing.T) {
	cfg := defaultConfig()
	cfg.MAF = 0.1
	c := New(cfg, 1)
	res, _ := c.Apply(parse(t, "G", "0/0:95,5:100:30:0,40,400"))
	if res.Kept || res.Gate != MinorAllele || c.Counters.MinorAllele != 1 {
		t.Error("expected MAF rejection for 0.95/0.05", res.Gate)
	}

	c = New(cfg, 2)
	res, _ = c.Apply(parse(t, "G", "0/0:9,1:10:30:0,40,400", "0/1:5,5:10:30:40,0,40"))
	if !res.Kept {
		t.Error("expected MAF pass", res.Gate)
	}
	if res.Alleles[0].Index != 0 || math.Abs(res.Alleles[0].Freq-0.7) > 1e-9 {
		t.Error("problem normalizing alleles", res.Alleles)
	}
}

func TestMinorAlleleZeroSum(t *testing.T) {
	cfg := defaultConfig()
	cfg.MAF = 0.1
	c := New(cfg, 1)
	res, _ := c.Apply(parse(t, "G", "0/0:0,0:10:30:0,40,400"))
	if res.Kept || res.Gate != MinorAllele {
		t.Error("zero allele sum should be rejected when MAF is active", res.Gate)
	}

	cfg.MAF = 0
	c = New(cfg, 1)
	if res, _ = c.Apply(parse(t, "G", "0/0:0,0:10:30:0,40,400")); !res.Kept {
		t.Error("zero allele sum should pass when MAF is disabled", res.Gate)
	}
}

func TestAlleleTieBreak(t *testing.T) {
	a := Alleles{{0, 0.25}, {1, 0.5}, {2, 0.5}, {3, 0}}
	a.Sort()
	if a.Major().Index != 1 || a[1].Index != 2 || a[2].Index != 0 || a[3].Index != 3 {
		t.Error("tie not broken toward lower index", a)
	}
	a = Alleles{{0, 0.5}, {1, 0.5}}
	a.Sort()
	if a.Major().Index != 0 {
		t.Error("tie not broken toward REF", a)
	}
}

func TestAlleleDepthCount(t *testing.T) {
	c := New(defaultConfig(), 1)
	_, err := c.Apply(parse(t, "G", "0/1:5,5,1:10:30:40,0,40"))
	if !errors.Is(err, ErrAlleleDepthCount) {
		t.Error("expected AD count error, got", err)
	}
	if _, err = c.Apply(parse(t, "G", "0/1:.,3:10:30:40,0,40")); err != nil {
		t.Error("unexpected error for missing AD entry", err)
	}
}

func TestMissingAlleleDepth(t *testing.T) {
	c := New(defaultConfig(), 2)
	res, err := c.Apply(parse(t, "G", "0/1:.:10:30:40,0,40", "0/1:5,5:10:30:40,0,40"))
	if !errors.Is(err, ErrAlleleDepthCount) {
		t.Error("expected AD count error for bare missing AD, got", err)
	}
	if res.Kept {
		t.Error("record with bare missing AD was kept")
	}
}

func TestBadInteger(t *testing.T) {
	c := New(defaultConfig(), 1)
	if _, err := c.Apply(parse(t, "G", "0/1:5,5:ten:30:40,0,40")); !errors.Is(err, record.ErrInteger) {
		t.Error("expected integer error, got", err)
	}
}

func TestRewriteId(t *testing.T) {
	cfg := defaultConfig()
	cfg.RewriteId = true
	c := New(cfg, 1)
	r := parse(t, "G", "0/1:5,5:10:30:40,0,40")
	if res, _ := c.Apply(r); !res.Kept || r.Id != "chr1:100:A:G" {
		t.Error("problem rewriting ID", r.Id)
	}
}

func TestMissingDepth(t *testing.T) {
	c := New(defaultConfig(), 1)
	r := parse(t, "G", "0/1:5,5:.:.:40,0,40")
	res, err := c.Apply(r)
	if err != nil {
		t.Fatal(err)
	}
	if res.Depths[0] != -1 || res.Qualities[0] != -1 || r.Sample[0].GT() != "./." {
		t.Error("problem with missing DP/GQ", res.Depths, res.Qualities, r.Sample[0].Fields)
	}
}
