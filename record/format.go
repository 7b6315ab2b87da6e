package record

import "strings"

// Format appends the tab delimited text of r, without a trailing
// newline, to b.
func (r *Record) Format(b *strings.Builder) {
	b.WriteString(r.Chr)
	b.WriteByte('\t')
	b.WriteString(r.Pos)
	b.WriteByte('\t')
	b.WriteString(r.Id)
	b.WriteByte('\t')
	b.WriteString(r.Ref)
	b.WriteByte('\t')
	b.WriteString(r.Alt)
	b.WriteByte('\t')
	b.WriteString(r.Qual)
	b.WriteByte('\t')
	b.WriteString(r.Filter)
	b.WriteByte('\t')
	b.WriteString(r.Info)
	b.WriteByte('\t')
	b.WriteString(strings.Join(r.Schema.Tags, ":"))
	for i := range r.Sample {
		b.WriteByte('\t')
		b.WriteString(strings.Join(r.Sample[i].Fields, ":"))
	}
}

// String returns the formatted record.
func (r *Record) String() string {
	var b strings.Builder
	r.Format(&b)
	return b.String()
}
