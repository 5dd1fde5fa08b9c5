package model

// Row is a single stats record keyed by column name.
// Stats tables are wide and owned by an external loader, so rows are kept
// untyped and passed through to clients as-is.
type Row map[string]any

// Clone returns a shallow copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
