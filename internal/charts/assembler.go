package charts

import (
	"fmt"
	"strings"

	"covidcast/internal/dataset"
)

// SeriesDef defines one derived series of the country explorer chart: a
// named trailing rolling-average transform of a raw dataset column.
type SeriesDef struct {
	Name   string
	Column dataset.Column
}

// SeriesDefsFromNames resolves configured series names against the dataset
// columns. Unknown names fail here, before any chart is assembled.
func SeriesDefsFromNames(names []string) ([]SeriesDef, error) {
	defs := make([]SeriesDef, 0, len(names))
	for _, name := range names {
		if !dataset.KnownColumn(name) {
			return nil, fmt.Errorf("%w: %q", dataset.ErrUnknownColumn, name)
		}
		defs = append(defs, SeriesDef{Name: name, Column: dataset.Column(name)})
	}
	return defs, nil
}

// Label is the human-readable form of the series name
func (d SeriesDef) Label() string {
	return strings.ReplaceAll(d.Name, "_", " ")
}

// TraceData is the bulk data-replacement payload for a single trace: the
// x/y arrays plus per-point hover labels. Nil y values are gaps and must be
// rendered as breaks, never as zero.
type TraceData struct {
	X      []string   `json:"x"`
	Y      []*float64 `json:"y"`
	Labels []string   `json:"labels"`
}

// Trace is one subject's one series, materialized as parallel arrays plus
// display state. Traces are built once for the default subject; subject
// switches replace their data without changing count or order.
type Trace struct {
	Name    string     `json:"name"`
	X       []string   `json:"x"`
	Y       []*float64 `json:"y"`
	Labels  []string   `json:"labels"`
	Visible bool       `json:"visible"`
	Fill    bool       `json:"fill"`
	Color   string     `json:"color,omitempty"`
}

// ControlType distinguishes the two control layouts
type ControlType string

const (
	ControlButtons  ControlType = "buttons"
	ControlDropdown ControlType = "dropdown"
)

// Position places a control relative to the chart area (fractions of width/height)
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SeriesButton toggles exactly one trace visible. Visibility is a restyle
// payload: same data, a different visibility vector.
type SeriesButton struct {
	Label      string `json:"label"`
	Visibility []bool `json:"visibility"`
}

// SeriesSelector is the series-toggle control: one button per series,
// exactly one active at a time.
type SeriesSelector struct {
	Type     ControlType    `json:"type"`
	Position Position       `json:"position"`
	Active   int            `json:"active"`
	Buttons  []SeriesButton `json:"buttons"`
}

// SubjectEntry carries one subject's full replacement payload: one TraceData
// per trace, in trace order. Order is load-bearing: controls address traces
// by positional index.
type SubjectEntry struct {
	Subject string      `json:"subject"`
	Data    []TraceData `json:"data"`
}

// SubjectSelector is the subject-switch control: selecting an entry replaces
// the data of every trace simultaneously and leaves visibility untouched.
type SubjectSelector struct {
	Type     ControlType    `json:"type"`
	Position Position       `json:"position"`
	Entries  []SubjectEntry `json:"entries"`
}

// ChartSpec is the immutable, fully materialized specification of the
// country explorer chart. Builders return fresh values; nothing here is
// shared mutable state.
type ChartSpec struct {
	Title           string          `json:"title"`
	RollingWindow   int             `json:"rolling_window"`
	DefaultSubject  string          `json:"default_subject"`
	Traces          []Trace         `json:"traces"`
	SeriesSelector  SeriesSelector  `json:"series_selector"`
	SubjectSelector SubjectSelector `json:"subject_selector"`
}

// Assembler builds chart specifications from the joined dataset
type Assembler struct {
	table  *dataset.Table
	window int
}

// NewAssembler creates an assembler. A non-positive rolling window is a
// configuration failure and is rejected before any trace can be built.
func NewAssembler(table *dataset.Table, window int) (*Assembler, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling window must be positive, got %d", window)
	}
	return &Assembler{table: table, window: window}, nil
}

// tracePalette matches the series order; extra series wrap around
var tracePalette = []string{"#5470c6", "#ee6666", "#91cc75", "#fac858", "#73c0de", "#3ba272"}

// BuildTraces produces one trace per series definition for the default
// subject, in definition order. The trace at index 0 is visible, all others
// hidden. The output length always equals len(defs): controls address traces
// by positional index, so the ordering contract is load-bearing.
func (a *Assembler) BuildTraces(defs []SeriesDef, defaultSubject string) ([]Trace, error) {
	data, err := a.subjectData(defaultSubject, defs)
	if err != nil {
		return nil, err
	}

	traces := make([]Trace, len(defs))
	for i, def := range defs {
		traces[i] = Trace{
			Name:    def.Label(),
			X:       data[i].X,
			Y:       data[i].Y,
			Labels:  data[i].Labels,
			Visible: i == 0,
			Fill:    true,
			Color:   tracePalette[i%len(tracePalette)],
		}
	}
	return traces, nil
}

// BuildSeriesSelector produces the series-toggle control: button i carries a
// visibility vector of len(defs) that is true only at i. It never touches
// trace data.
func (a *Assembler) BuildSeriesSelector(defs []SeriesDef, pos Position) SeriesSelector {
	buttons := make([]SeriesButton, len(defs))
	for i, def := range defs {
		visibility := make([]bool, len(defs))
		visibility[i] = true
		buttons[i] = SeriesButton{
			Label:      def.Label(),
			Visibility: visibility,
		}
	}
	return SeriesSelector{
		Type:     ControlButtons,
		Position: pos,
		Active:   0,
		Buttons:  buttons,
	}
}

// BuildSubjectSelector produces the subject-switch control: one entry per
// subject, each carrying replacement arrays for every trace in trace order.
// Hidden traces are updated too, so toggling series after a subject change
// never shows stale data.
func (a *Assembler) BuildSubjectSelector(subjects []string, defs []SeriesDef, pos Position) (SubjectSelector, error) {
	entries := make([]SubjectEntry, 0, len(subjects))
	for _, subject := range subjects {
		data, err := a.subjectData(subject, defs)
		if err != nil {
			return SubjectSelector{}, err
		}
		entries = append(entries, SubjectEntry{Subject: subject, Data: data})
	}
	return SubjectSelector{
		Type:     ControlDropdown,
		Position: pos,
		Entries:  entries,
	}, nil
}

// Assemble builds the complete chart specification for all subjects in the
// table, with the table's front subject pre-selected.
func (a *Assembler) Assemble(title string, defs []SeriesDef) (*ChartSpec, error) {
	subjects := a.table.Subjects()
	if len(subjects) == 0 {
		return nil, fmt.Errorf("dataset has no subjects")
	}
	defaultSubject := subjects[0]

	traces, err := a.BuildTraces(defs, defaultSubject)
	if err != nil {
		return nil, err
	}

	seriesSel := a.BuildSeriesSelector(defs, Position{X: 0.0, Y: 1.15})

	subjectSel, err := a.BuildSubjectSelector(subjects, defs, Position{X: 1.0, Y: 1.15})
	if err != nil {
		return nil, err
	}

	return &ChartSpec{
		Title:           title,
		RollingWindow:   a.window,
		DefaultSubject:  defaultSubject,
		Traces:          traces,
		SeriesSelector:  seriesSel,
		SubjectSelector: subjectSel,
	}, nil
}

// subjectData computes the filtered, rolling-averaged arrays for one subject,
// one TraceData per series definition in definition order
func (a *Assembler) subjectData(subject string, defs []SeriesDef) ([]TraceData, error) {
	rows, err := a.table.SubjectRows(subject)
	if err != nil {
		return nil, err
	}

	dates := dataset.Dates(rows)
	out := make([]TraceData, len(defs))
	for i, def := range defs {
		raw, err := dataset.Values(rows, def.Column)
		if err != nil {
			return nil, err
		}
		smoothed, err := dataset.RollingMean(raw, a.window)
		if err != nil {
			return nil, err
		}

		labels := make([]string, len(smoothed))
		for j, v := range smoothed {
			labels[j] = RowLabel(subject, dates[j], v)
		}

		out[i] = TraceData{X: dates, Y: smoothed, Labels: labels}
	}
	return out, nil
}

// RowLabel maps one (subject, date, value) tuple to its hover label.
// A gap produces an explicit "no data" label rather than a zero.
func RowLabel(subject, date string, value *float64) string {
	if value == nil {
		return fmt.Sprintf("%s<br/>%s: no data", subject, date)
	}
	return fmt.Sprintf("%s<br/>%s: %.1f", subject, date, *value)
}
