package dataset

import (
	"errors"
	"testing"
	"time"

	"covidcast/internal/models"
)

func day(d string) time.Time {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		panic(err)
	}
	return t
}

func testRecords() []models.CovidRecord {
	return []models.CovidRecord{
		// Deliberately out of date order to exercise sorting
		{Date: day("2020-03-02"), CountryCode: "IT", Country: "Italy", NewCases: models.Float(7), NewDeaths: models.Float(2)},
		{Date: day("2020-03-01"), CountryCode: "IT", Country: "Italy", NewCases: models.Float(5), NewDeaths: models.Float(1)},
		{Date: day("2020-03-01"), CountryCode: "DE", Country: "Germany", NewCases: models.Float(10), NewDeaths: models.Float(0)},
	}
}

func TestNewSortsRowsByDate(t *testing.T) {
	table := New(testRecords(), nil, "Italy")

	rows, err := table.SubjectRows("Italy")
	if err != nil {
		t.Fatalf("SubjectRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows for Italy, got %d", len(rows))
	}
	if !rows[0].Date.Before(rows[1].Date) {
		t.Error("Expected rows sorted by date ascending")
	}
}

func TestSubjectsDefaultFirst(t *testing.T) {
	table := New(testRecords(), nil, "Italy")

	subjects := table.Subjects()
	if len(subjects) != 2 {
		t.Fatalf("Expected 2 subjects, got %d", len(subjects))
	}
	if subjects[0] != "Italy" {
		t.Errorf("Expected default subject first, got %v", subjects)
	}
	if subjects[1] != "Germany" {
		t.Errorf("Expected remaining subjects in stable order, got %v", subjects)
	}
}

func TestSubjectsDefaultAbsent(t *testing.T) {
	table := New(testRecords(), nil, "Atlantis")

	subjects := table.Subjects()
	if len(subjects) != 2 {
		t.Fatalf("Expected 2 subjects, got %d", len(subjects))
	}
	// Absent default leaves alphabetical order untouched
	if subjects[0] != "Germany" || subjects[1] != "Italy" {
		t.Errorf("Expected alphabetical order, got %v", subjects)
	}
}

func TestSubjectRowsUnknown(t *testing.T) {
	table := New(testRecords(), nil, "Italy")

	_, err := table.SubjectRows("Atlantis")
	if err == nil {
		t.Fatal("Expected error for unknown subject, got nil")
	}
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("Expected ErrSubjectNotFound, got: %v", err)
	}
}

func TestGDPJoin(t *testing.T) {
	gdp := []models.GDPRecord{
		{Country: "Italy", CountryCode: "IT", Year: 2020, GDPPerCapita: 31714.0},
	}
	table := New(testRecords(), gdp, "Italy")

	v, ok := table.GDPPerCapita("Italy")
	if !ok {
		t.Fatal("Expected GDP per capita for Italy")
	}
	if v != 31714.0 {
		t.Errorf("Expected GDP 31714.0, got %f", v)
	}

	// Countries missing from the GDP side keep their covid rows with a gap
	if _, ok := table.GDPPerCapita("Germany"); ok {
		t.Error("Expected no GDP per capita for Germany")
	}
	rows, err := table.SubjectRows("Germany")
	if err != nil {
		t.Fatalf("SubjectRows failed: %v", err)
	}
	if rows[0].GDPPerCapita != nil {
		t.Error("Expected nil GDP in unjoined rows")
	}
}

func TestValues(t *testing.T) {
	table := New(testRecords(), nil, "Italy")
	rows, _ := table.SubjectRows("Italy")

	values, err := Values(rows, ColNewCases)
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("Expected 2 values, got %d", len(values))
	}
	if *values[0] != 5 || *values[1] != 7 {
		t.Errorf("Expected [5 7] (date order), got [%v %v]", *values[0], *values[1])
	}
}

func TestValuesUnknownColumn(t *testing.T) {
	table := New(testRecords(), nil, "Italy")
	rows, _ := table.SubjectRows("Italy")

	_, err := Values(rows, Column("Vaccinations"))
	if err == nil {
		t.Fatal("Expected error for unknown column, got nil")
	}
	if !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Expected ErrUnknownColumn, got: %v", err)
	}
}

func TestDates(t *testing.T) {
	table := New(testRecords(), nil, "Italy")
	rows, _ := table.SubjectRows("Italy")

	dates := Dates(rows)
	if dates[0] != "2020-03-01" || dates[1] != "2020-03-02" {
		t.Errorf("Unexpected date formatting: %v", dates)
	}
}

func TestLatestDate(t *testing.T) {
	table := New(testRecords(), nil, "Italy")
	if got := table.LatestDate(); !got.Equal(day("2020-03-02")) {
		t.Errorf("Expected latest date 2020-03-02, got %s", got)
	}
}
