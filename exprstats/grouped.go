package exprstats

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonum/stat"

	"github.com/countscape/countscape/tidy"
)

// GroupStat is the count mean and standard deviation within one level of a
// metadata attribute (e.g., all observations where strain=mut).
type GroupStat struct {
	Level  string
	N      int
	Mean   float64
	StdDev float64
}

// GroupMeans aggregates the observation table's counts by the levels of
// the named metadata attribute. Rows that did not match a metadata record
// are grouped under their empty attribute value; metadata-only rows (NaN
// counts) are skipped. Levels are returned in sorted order.
func GroupMeans(table *tidy.ObservationTable, attr string) ([]GroupStat, error) {
	attrIdx := -1
	for i, name := range table.AttrNames {
		if name == attr {
			attrIdx = i
			break
		}
	}
	if attrIdx == -1 {
		return nil, fmt.Errorf("exprstats: observation table has no attribute %q", attr)
	}

	groups := make(map[string][]float64)
	for _, row := range table.Rows {
		if math.IsNaN(row.Count) {
			continue
		}
		level := row.Attrs[attrIdx]
		groups[level] = append(groups[level], row.Count)
	}

	levels := make([]string, 0, len(groups))
	for level := range groups {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	out := make([]GroupStat, 0, len(levels))
	for _, level := range levels {
		counts := groups[level]
		m, s := stat.MeanStdDev(counts, nil)
		out = append(out, GroupStat{
			Level:  level,
			N:      len(counts),
			Mean:   m,
			StdDev: s,
		})
	}

	return out, nil
}
