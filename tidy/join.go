package tidy

import (
	"math"

	"github.com/countscape/countscape/expr"
)

// Observation is one row of the denormalized table: a long-table
// observation augmented with the sample's metadata attributes. Attrs is
// parallel to the table's AttrNames. Matched is false when the row's
// counterpart was absent on the other side of the join: a sample with no
// metadata record keeps empty attributes, and a metadata record with no
// observations appears once with an empty gene and a NaN count. Neither
// case is an error; mismatches are retained and surfaced, never dropped.
type Observation struct {
	Gene    string
	Sample  string
	Count   float64
	Attrs   []string
	Matched bool
}

// ObservationTable is the result of joining a long table with sample
// metadata: one row per (gene, sample) observation, plus one row per
// metadata-only sample.
type ObservationTable struct {
	KeyName   string
	AttrNames []string
	Rows      []Observation
}

// Join combines the long table with sample metadata by equality of the
// long table's sample identifier and the metadata's key column. The join
// is a full outer join: every long row appears exactly once in the output
// in its original order, and metadata records whose sample never occurs in
// the long table are appended afterwards in metadata order.
func (l Long) Join(info *expr.SampleInfo) (*ObservationTable, error) {
	if info == nil {
		return nil, expr.ErrNoKeyColumn
	}

	attrNames := info.AttrNames()
	out := &ObservationTable{
		KeyName:   info.KeyName(),
		AttrNames: attrNames,
		Rows:      make([]Observation, 0, len(l)),
	}

	seen := make(map[string]bool, info.Len())
	for _, row := range l {
		obs := Observation{
			Gene:   row.Gene,
			Sample: row.Sample,
			Count:  row.Count,
		}

		if attrs, exists := info.Attrs(row.Sample); exists {
			obs.Attrs = attrs
			obs.Matched = true
			seen[row.Sample] = true
		} else {
			obs.Attrs = make([]string, len(attrNames))
		}

		out.Rows = append(out.Rows, obs)
	}

	for _, id := range info.Samples() {
		if seen[id] {
			continue
		}
		attrs, _ := info.Attrs(id)
		out.Rows = append(out.Rows, Observation{
			Sample: id,
			Count:  math.NaN(),
			Attrs:  attrs,
		})
	}

	return out, nil
}

// Matched returns only the rows that found a counterpart on both sides of
// the join, which is the entire table when matrix and metadata agree.
func (t *ObservationTable) Matched() []Observation {
	out := make([]Observation, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.Matched {
			out = append(out, row)
		}
	}
	return out
}

// Attr returns the named attribute value for one observation row.
func (t *ObservationTable) Attr(obs Observation, name string) (string, bool) {
	for i, attr := range t.AttrNames {
		if attr == name {
			return obs.Attrs[i], true
		}
	}
	return "", false
}
