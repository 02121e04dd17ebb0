package extract

import "strconv"

// Record is one parsed entry; fields follow the pattern's column order.
type Record []string

// Result holds the records parsed from one member file.
type Result struct {
	Member  string
	Columns []string
	Records []Record
	Shape   Shape

	// Err is set when the member could not be read or decoded. Records is
	// always empty in that case.
	Err error
}

// Empty reports whether no records were parsed.
func (r Result) Empty() bool { return len(r.Records) == 0 }

// Len returns the number of records.
func (r Result) Len() int { return len(r.Records) }

// Columnar returns the records as column -> row index -> value, with row
// indices rendered as decimal strings starting at "0".
func (r Result) Columnar() map[string]map[string]string {
	out := make(map[string]map[string]string, len(r.Columns))
	for _, col := range r.Columns {
		out[col] = make(map[string]string, len(r.Records))
	}
	for i, rec := range r.Records {
		idx := strconv.Itoa(i)
		for j, col := range r.Columns {
			if j < len(rec) {
				out[col][idx] = rec[j]
			}
		}
	}
	return out
}

// Maps returns each record as a column -> value map, in record order.
func (r Result) Maps() []map[string]string {
	out := make([]map[string]string, len(r.Records))
	for i, rec := range r.Records {
		row := make(map[string]string, len(r.Columns))
		for j, col := range r.Columns {
			if j < len(rec) {
				row[col] = rec[j]
			}
		}
		out[i] = row
	}
	return out
}
