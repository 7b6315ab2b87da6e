package record

import (
	"fmt"
	"github.com/bits-and-blooms/bitset"
	"strings"
)

// Parser turns data lines into Records. It remembers the last FORMAT
// string so that a run of records sharing one FORMAT column builds its
// Schema only once.
type Parser struct {
	nSamples int
	exclude  *bitset.BitSet
	retained int
	schema   *Schema
}

// NewParser returns a Parser for lines carrying nSamples sample columns.
// Sample columns whose zero based index is set in exclude are dropped
// before they are split. exclude may be nil.
func NewParser(nSamples int, exclude *bitset.BitSet) *Parser {
	p := &Parser{nSamples: nSamples, exclude: exclude, retained: nSamples}
	if exclude != nil {
		for i := 0; i < nSamples; i++ {
			if exclude.Test(uint(i)) {
				p.retained--
			}
		}
	}
	return p
}

// Retained is the number of samples each parsed Record carries.
func (p *Parser) Retained() int {
	return p.retained
}

// Schema returns the schema of the last parsed record, or nil.
func (p *Parser) Schema() *Schema {
	return p.schema
}

// Parse splits one data line into a Record.
func (p *Parser) Parse(line string) (*Record, error) {
	var err error
	words := strings.Split(line, "\t")
	if len(words) < FixedColumns {
		return nil, fmt.Errorf("%w: found %d, need at least %d", ErrColumnCount, len(words), FixedColumns)
	}
	if len(words)-FixedColumns != p.nSamples {
		return nil, fmt.Errorf("%w: found %d sample columns, header has %d", ErrColumnCount, len(words)-FixedColumns, p.nSamples)
	}

	if p.schema == nil || p.schema.Raw != words[8] {
		p.schema, err = NewSchema(words[8])
		if err != nil {
			p.schema = nil
			return nil, err
		}
	}

	r := &Record{
		Chr:    words[0],
		Pos:    words[1],
		Id:     words[2],
		Ref:    words[3],
		Alt:    words[4],
		Qual:   words[5],
		Filter: words[6],
		Info:   words[7],
		Schema: p.schema,
		Sample: make([]Sample, 0, p.retained),
	}

	for i, col := range words[FixedColumns:] {
		if col == "" {
			return nil, fmt.Errorf("%w: sample column %d", ErrEmptySample, i+1)
		}
		if p.exclude != nil && p.exclude.Test(uint(i)) {
			continue
		}
		fields := strings.Split(col, ":")
		if len(fields) != p.schema.Len() {
			return nil, fmt.Errorf("%w: sample column %d has %d fields, FORMAT has %d", ErrFieldCount, i+1, len(fields), p.schema.Len())
		}
		r.Sample = append(r.Sample, Sample{Fields: fields, schema: p.schema})
	}
	return r, nil
}
