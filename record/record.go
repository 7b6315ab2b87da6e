package record

import (
	"fmt"
	"strconv"
	"strings"
)

// FixedColumns is the number of leading columns shared by every VCF
// data line (CHROM through FORMAT).
const FixedColumns = 9

// Missing is returned by ParseInt for the "." missing value.
const Missing = -1

// Record is one variant line. The first eight columns are never
// interpreted and are written back exactly as read.
type Record struct {
	Chr    string
	Pos    string
	Id     string
	Ref    string
	Alt    string
	Qual   string
	Filter string
	Info   string
	Schema *Schema
	Sample []Sample
}

// Sample holds the colon separated values of one sample column in the
// order given by the record Schema.
type Sample struct {
	Fields []string
	schema *Schema
}

func (s *Sample) GT() string { return s.Fields[s.schema.gt] }
func (s *Sample) DP() string { return s.Fields[s.schema.dp] }
func (s *Sample) AD() string { return s.Fields[s.schema.ad] }
func (s *Sample) GQ() string { return s.Fields[s.schema.gq] }
func (s *Sample) PL() string { return s.Fields[s.schema.pl] }

func (s *Sample) SetGT(v string) { s.Fields[s.schema.gt] = v }
func (s *Sample) SetAD(v string) { s.Fields[s.schema.ad] = v }
func (s *Sample) SetGQ(v string) { s.Fields[s.schema.gq] = v }
func (s *Sample) SetPL(v string) { s.Fields[s.schema.pl] = v }

// AlleleCount is the number of alleles at the site, REF included.
func (r *Record) AlleleCount() int {
	return strings.Count(r.Alt, ",") + 2
}

// SiteId is the generic CHR:POS:REF:ALT identifier.
func (r *Record) SiteId() string {
	return r.Chr + ":" + r.Pos + ":" + r.Ref + ":" + r.Alt
}

// ParseInt converts a DP, GQ or AD value to an integer. Any value
// containing a '.' is treated as missing and returns Missing (-1); it
// is never read as a fraction.
func ParseInt(s string) (int, error) {
	if strings.IndexByte(s, '.') >= 0 {
		return Missing, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInteger, s)
	}
	return v, nil
}

// ZeroList returns a comma separated list of zeros with the same
// number of entries as list.
func ZeroList(list string) string {
	n := strings.Count(list, ",")
	var b strings.Builder
	b.Grow(2*n + 1)
	b.WriteByte('0')
	for ; n > 0; n-- {
		b.WriteString(",0")
	}
	return b.String()
}
