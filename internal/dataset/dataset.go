// Package dataset defines the record batch types produced by the generators
// and consumed by post-processing, export and storage.
package dataset

import (
	"sort"

	"dataforge/internal/schema"
)

// Record is one generated row: field name to scalar value. Values are
// strings, ints, float64s, bools, or nil (an injected or inherent null).
// There are no nested structures; address fields are flattened strings.
type Record = map[string]any

// Dataset is an ordered batch of records sharing one schema. It is immutable
// once handed to a caller.
type Dataset struct {
	Industry schema.Industry
	Records  []Record
}

// Columns returns the ordered column names for the dataset's schema.
func (d *Dataset) Columns() []string {
	return schema.FieldNames(d.Industry)
}

// Len returns the row count.
func (d *Dataset) Len() int { return len(d.Records) }

// SortByField orders records ascending by a string-valued field. Date and
// datetime fields are formatted as YYYY-MM-DD[ HH:MM:SS], so lexicographic
// order equals chronological order. Records whose field is nil or not a
// string sort first.
func SortByField(records []Record, field string) {
	sort.SliceStable(records, func(i, j int) bool {
		a, aok := records[i][field].(string)
		b, bok := records[j][field].(string)
		if !aok || !bok {
			return !aok && bok
		}
		return a < b
	})
}
