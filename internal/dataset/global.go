package dataset

import "sort"

// GlobalSeries aggregates one column across all subjects by date. A date's
// value is the sum of the subjects that reported; a date no subject reported
// stays a gap.
func (t *Table) GlobalSeries(col Column) (dates []string, values []*float64, err error) {
	sums := make(map[string]float64)
	seen := make(map[string]bool)

	for _, subject := range t.subjects {
		rows := t.rows[subject]
		vals, verr := Values(rows, col)
		if verr != nil {
			return nil, nil, verr
		}
		for i, v := range vals {
			key := rows[i].Date.Format("2006-01-02")
			if v != nil {
				sums[key] += *v
				seen[key] = true
			} else if _, ok := seen[key]; !ok {
				seen[key] = false
			}
		}
	}

	dates = make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	values = make([]*float64, len(dates))
	for i, d := range dates {
		if seen[d] {
			v := sums[d]
			values[i] = &v
		}
	}
	return dates, values, nil
}
