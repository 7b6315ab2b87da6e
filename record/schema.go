package record

import (
	"fmt"
	"golang.org/x/exp/slices"
	"strings"
)

// Required FORMAT tags. A record block missing any of these cannot be filtered.
const (
	TagGT = "GT"
	TagDP = "DP"
	TagAD = "AD"
	TagGQ = "GQ"
	TagPL = "PL"
)

var requiredTags = []string{TagGT, TagDP, TagAD, TagGQ, TagPL}

// Schema describes the FORMAT column of a block of records. A Schema is
// never modified once built; a new FORMAT string produces a new Schema.
type Schema struct {
	Raw   string
	Tags  []string
	Index map[string]int

	gt, dp, ad, gq, pl int
}

// NewSchema builds the schema for a raw FORMAT string.
func NewSchema(format string) (*Schema, error) {
	s := &Schema{
		Raw:   format,
		Tags:  strings.Split(format, ":"),
		Index: make(map[string]int),
	}
	for i := range s.Tags {
		s.Index[s.Tags[i]] = i
	}

	var missing []string
	for _, tag := range requiredTags {
		if _, found := s.Index[tag]; !found {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingTag, strings.Join(missing, "; "))
	}

	s.gt = s.Index[TagGT]
	s.dp = s.Index[TagDP]
	s.ad = s.Index[TagAD]
	s.gq = s.Index[TagGQ]
	s.pl = s.Index[TagPL]
	return s, nil
}

// Len is the number of fields each sample must carry.
func (s *Schema) Len() int {
	return len(s.Tags)
}
