package chart

import "moodlog/client"

// ============================================================================
// Mood Chart
//
// Projects mood history into the declarative line-chart configuration the
// dashboard's canvas renderer consumes. The renderer is opaque to us — we
// build the config, it draws.
// ============================================================================

// Series holds the two parallel sequences the chart consumes. Labels[i]
// always corresponds to Values[i], and both are the same length as the
// source records.
type Series struct {
	Labels []string
	Values []float64
}

// BuildSeries projects records into a Series, preserving the order they
// were received in. Empty input yields empty, non-nil slices so an
// empty chart renders rather than failing.
func BuildSeries(records []client.MoodRecord) Series {
	labels := make([]string, 0, len(records))
	values := make([]float64, 0, len(records))
	for _, r := range records {
		labels = append(labels, r.Date)
		values = append(values, r.Mood)
	}
	return Series{Labels: labels, Values: values}
}

// LineChart is the top-level chart configuration, shaped for a
// Chart.js-style renderer.
type LineChart struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Data pairs the label axis with one or more datasets.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one plotted line.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Fill            bool      `json:"fill"`
	Tension         float64   `json:"tension"`
}

// Options carries the axis configuration.
type Options struct {
	Scales Scales `json:"scales"`
}

// Scales configures the chart axes; only the y axis needs settings.
type Scales struct {
	Y Axis `json:"y"`
}

// Axis configures a single axis.
type Axis struct {
	BeginAtZero bool  `json:"beginAtZero"`
	Ticks       Ticks `json:"ticks"`
}

// Ticks configures axis tick spacing.
type Ticks struct {
	StepSize float64 `json:"stepSize"`
}

// Mood line styling. The translucent fill matches the stroke so the
// area under the line reads as a tint of it.
const (
	moodLineLabel  = "Mood Over Time"
	moodLineStroke = "rgba(75, 192, 192, 1)"
	moodLineFill   = "rgba(75, 192, 192, 0.2)"
	moodLineCurve  = 0.4 // smoothing tension
)

// MoodLine builds the mood-over-time line chart for a series: a single
// smoothed dataset with the fixed mood palette, y axis starting at zero
// with integer tick steps.
func MoodLine(s Series) LineChart {
	return LineChart{
		Type: "line",
		Data: Data{
			Labels: s.Labels,
			Datasets: []Dataset{{
				Label:           moodLineLabel,
				Data:            s.Values,
				BorderColor:     moodLineStroke,
				BackgroundColor: moodLineFill,
				Fill:            true,
				Tension:         moodLineCurve,
			}},
		},
		Options: Options{
			Scales: Scales{
				Y: Axis{
					BeginAtZero: true,
					Ticks:       Ticks{StepSize: 1},
				},
			},
		},
	}
}
