package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/collidedeform/deform"
)

var outcomeOrder = []deform.Outcome{deform.Snapped, deform.Swelled, deform.Untouched, deform.Missed}

// Summary describes how far an evaluation moved vertices away from their displaced positions.
type Summary struct {
	Vertices   int
	Counts     map[deform.Outcome]int
	MeanOffset float64
	MaxOffset  float64
	P95Offset  float64
	// CurveSamples are response curve values at evenly spaced ratios from 0 to 1.
	CurveSamples []float64
}

// Summarize compares out against base moved by displacement.
func Summarize(base, out *deform.Mesh, displacement r3.Vector, outcomes []deform.Outcome) (Summary, error) {
	if base == nil || out == nil || len(base.Positions) != len(out.Positions) {
		return Summary{}, errors.New("base and output meshes must have the same vertex count")
	}
	summary := Summary{
		Vertices: len(out.Positions),
		Counts:   lo.CountValues(outcomes),
	}
	if summary.Vertices == 0 {
		return summary, nil
	}

	offsets := stats.Float64Data(lo.Map(out.Positions, func(p r3.Vector, i int) float64 {
		return p.Sub(base.Positions[i].Add(displacement)).Norm()
	}))
	var err error
	if summary.MeanOffset, err = stats.Mean(offsets); err != nil {
		return Summary{}, errors.Wrap(err, "mean offset")
	}
	if summary.MaxOffset, err = stats.Max(offsets); err != nil {
		return Summary{}, errors.Wrap(err, "max offset")
	}
	if summary.P95Offset, err = stats.Percentile(offsets, 95); err != nil {
		return Summary{}, errors.Wrap(err, "p95 offset")
	}
	return summary, nil
}

// String renders the summary as a table of vertex counts and offset statistics.
func (s Summary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"vertices", s.Vertices})
	for _, outcome := range outcomeOrder {
		t.AppendRow(table.Row{outcome.String(), s.Counts[outcome]})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"mean offset", fmt.Sprintf("%.6f", s.MeanOffset)})
	t.AppendRow(table.Row{"max offset", fmt.Sprintf("%.6f", s.MaxOffset)})
	t.AppendRow(table.Row{"p95 offset", fmt.Sprintf("%.6f", s.P95Offset)})
	if len(s.CurveSamples) > 0 {
		t.AppendSeparator()
		samples := lo.Map(s.CurveSamples, func(v float64, _ int) string {
			return fmt.Sprintf("%.3f", v)
		})
		t.AppendRow(table.Row{"curve", strings.Join(samples, " ")})
	}
	return t.Render()
}

// Print writes the summary table to w.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, s.String())
}
