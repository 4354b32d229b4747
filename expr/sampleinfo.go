package expr

import (
	"errors"
	"fmt"
)

// ErrNoKeyColumn is returned when sample metadata is constructed without a
// named sample-identifier column to join on.
var ErrNoKeyColumn = errors.New("expr: sample metadata has no key column name")

// SampleInfo holds one metadata record per sample: the sample identifier
// plus categorical or ordinal attributes such as strain, timepoint, or
// replicate. The identifier column keeps its original header name (KeyName)
// because metadata files rarely agree with the count matrix on what to call
// it ("sample", "run", "SRR accession", ...).
type SampleInfo struct {
	keyName   string
	attrNames []string
	order     []string
	attrs     map[string][]string
}

// NewSampleInfo builds a SampleInfo from the key column's header name, the
// attribute column names, the ordered sample identifiers, and one attribute
// row per identifier. The sample identifier must be a unique key.
func NewSampleInfo(keyName string, attrNames []string, ids []string, values [][]string) (*SampleInfo, error) {
	if keyName == "" {
		return nil, ErrNoKeyColumn
	}
	if len(values) != len(ids) {
		return nil, fmt.Errorf("expr: %d attribute rows for %d samples", len(values), len(ids))
	}

	attrs := make(map[string][]string, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("expr: empty sample identifier in metadata row %d", i)
		}
		if _, exists := attrs[id]; exists {
			return nil, fmt.Errorf("expr: duplicate sample identifier %q in metadata", id)
		}
		if len(values[i]) != len(attrNames) {
			return nil, fmt.Errorf("expr: sample %q has %d attribute values for %d attribute columns", id, len(values[i]), len(attrNames))
		}
		attrs[id] = append([]string(nil), values[i]...)
	}

	return &SampleInfo{
		keyName:   keyName,
		attrNames: append([]string(nil), attrNames...),
		order:     append([]string(nil), ids...),
		attrs:     attrs,
	}, nil
}

// KeyName returns the header name of the sample-identifier column.
func (s *SampleInfo) KeyName() string { return s.keyName }

// Len reports the number of sample records.
func (s *SampleInfo) Len() int { return len(s.order) }

// Samples returns the sample identifiers in file order.
func (s *SampleInfo) Samples() []string { return append([]string(nil), s.order...) }

// AttrNames returns the attribute column names in file order.
func (s *SampleInfo) AttrNames() []string { return append([]string(nil), s.attrNames...) }

// Has reports whether the sample identifier is present.
func (s *SampleInfo) Has(id string) bool {
	_, exists := s.attrs[id]
	return exists
}

// Attrs returns the attribute values for the sample identifier, in
// AttrNames order. The second return is false for unknown identifiers.
func (s *SampleInfo) Attrs(id string) ([]string, bool) {
	v, exists := s.attrs[id]
	if !exists {
		return nil, false
	}
	return append([]string(nil), v...), true
}

// Attr returns a single named attribute value for the sample identifier.
func (s *SampleInfo) Attr(id, name string) (string, bool) {
	v, exists := s.attrs[id]
	if !exists {
		return "", false
	}
	for i, attr := range s.attrNames {
		if attr == name {
			return v[i], true
		}
	}
	return "", false
}
