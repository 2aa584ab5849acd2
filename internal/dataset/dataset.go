package dataset

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"covidcast/internal/models"
)

// ErrSubjectNotFound is returned when a country requested by a chart control
// is not present in the table. Callers must surface it, never substitute a
// default subject.
var ErrSubjectNotFound = errors.New("subject not found")

// ErrUnknownColumn is returned for a series definition naming a column the
// table does not carry.
var ErrUnknownColumn = errors.New("unknown column")

// Column identifies one of the numeric columns of the joined table.
// The names match the source dataset headers so series definitions can be
// configured with the same strings.
type Column string

const (
	ColNewCases         Column = "New_cases"
	ColNewDeaths        Column = "New_deaths"
	ColCumulativeCases  Column = "Cumulative_cases"
	ColCumulativeDeaths Column = "Cumulative_deaths"
)

// Row is one country's joined figures for a single day. Nil values are gaps:
// the country did not report that figure, which is distinct from zero.
type Row struct {
	Date             time.Time
	NewCases         *float64
	CumulativeCases  *float64
	NewDeaths        *float64
	CumulativeDeaths *float64
	GDPPerCapita     *float64
}

// Table is the joined COVID/GDP dataset keyed by (country, date).
// It is read-only after construction; every accessor returns fresh slices so
// callers can never corrupt the underlying data.
type Table struct {
	subjects []string
	rows     map[string][]Row
	gdp      map[string]float64
	codes    map[string]string
	latest   time.Time
}

// New builds a table from covid records joined with GDP per capita, by
// country code first and country name as fallback since the two sources
// do not share a code scheme. Rows are grouped per country and sorted by
// date ascending. The default subject, when present, is moved to the front
// of the subject order so it is pre-selected on initial render.
func New(covid []models.CovidRecord, gdp []models.GDPRecord, defaultSubject string) *Table {
	gdpByCode := make(map[string]float64, len(gdp))
	gdpByName := make(map[string]float64, len(gdp))
	for _, g := range gdp {
		gdpByCode[g.CountryCode] = g.GDPPerCapita
		gdpByName[g.Country] = g.GDPPerCapita
	}

	t := &Table{
		rows:  make(map[string][]Row),
		gdp:   make(map[string]float64),
		codes: make(map[string]string),
	}

	for _, rec := range covid {
		row := Row{
			Date:             rec.Date,
			NewCases:         rec.NewCases,
			CumulativeCases:  rec.CumulativeCases,
			NewDeaths:        rec.NewDeaths,
			CumulativeDeaths: rec.CumulativeDeaths,
		}
		v, ok := gdpByCode[rec.CountryCode]
		if !ok {
			v, ok = gdpByName[rec.Country]
		}
		if ok {
			row.GDPPerCapita = models.Float(v)
			t.gdp[rec.Country] = v
		}
		t.rows[rec.Country] = append(t.rows[rec.Country], row)
		t.codes[rec.Country] = rec.CountryCode
		if rec.Date.After(t.latest) {
			t.latest = rec.Date
		}
	}

	for country := range t.rows {
		rows := t.rows[country]
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Date.Before(rows[j].Date)
		})
		t.subjects = append(t.subjects, country)
	}
	sort.Strings(t.subjects)

	// Move the default subject to the front so it is pre-selected
	for i, s := range t.subjects {
		if s == defaultSubject && i > 0 {
			copy(t.subjects[1:i+1], t.subjects[:i])
			t.subjects[0] = defaultSubject
			break
		}
	}

	return t
}

// Subjects returns the ordered country names, default subject first
func (t *Table) Subjects() []string {
	out := make([]string, len(t.subjects))
	copy(out, t.subjects)
	return out
}

// HasSubject reports whether the table has rows for the given country
func (t *Table) HasSubject(name string) bool {
	_, ok := t.rows[name]
	return ok
}

// SubjectRows returns the date-ordered rows for one country.
// An unknown country is a lookup failure, not an empty result.
func (t *Table) SubjectRows(name string) ([]Row, error) {
	rows, ok := t.rows[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSubjectNotFound, name)
	}
	out := make([]Row, len(rows))
	copy(out, rows)
	return out, nil
}

// CountryCode returns the ISO code the source data reported for a country
func (t *Table) CountryCode(name string) string {
	return t.codes[name]
}

// GDPPerCapita returns the joined GDP per capita for a country, if any
func (t *Table) GDPPerCapita(name string) (float64, bool) {
	v, ok := t.gdp[name]
	return v, ok
}

// LatestDate returns the most recent reporting date in the table
func (t *Table) LatestDate() time.Time {
	return t.latest
}

// Values extracts one numeric column from a row slice, preserving gaps
func Values(rows []Row, col Column) ([]*float64, error) {
	out := make([]*float64, len(rows))
	for i, r := range rows {
		switch col {
		case ColNewCases:
			out[i] = r.NewCases
		case ColNewDeaths:
			out[i] = r.NewDeaths
		case ColCumulativeCases:
			out[i] = r.CumulativeCases
		case ColCumulativeDeaths:
			out[i] = r.CumulativeDeaths
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
	}
	return out, nil
}

// Dates formats the row dates for chart axes
func Dates(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Date.Format("2006-01-02")
	}
	return out
}

// KnownColumn reports whether name is one of the table's numeric columns
func KnownColumn(name string) bool {
	switch Column(name) {
	case ColNewCases, ColNewDeaths, ColCumulativeCases, ColCumulativeDeaths:
		return true
	}
	return false
}
