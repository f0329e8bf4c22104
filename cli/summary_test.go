package cli

import (
	"bytes"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collidedeform/deform"
)

func TestSummarize(t *testing.T) {
	base := &deform.Mesh{Positions: []r3.Vector{{}, {X: 1}, {X: 2}}}
	out := &deform.Mesh{Positions: []r3.Vector{{Y: 1}, {X: 1, Y: 3}, {X: 2, Y: 1.5}}}
	outcomes := []deform.Outcome{deform.Untouched, deform.Snapped, deform.Swelled}

	summary, err := Summarize(base, out, r3.Vector{Y: 1}, outcomes)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Vertices, test.ShouldEqual, 3)
	test.That(t, summary.MeanOffset, test.ShouldAlmostEqual, 2.5/3)
	test.That(t, summary.MaxOffset, test.ShouldAlmostEqual, 2.0)
	test.That(t, summary.P95Offset, test.ShouldAlmostEqual, 1.25)
	test.That(t, summary.Counts[deform.Snapped], test.ShouldEqual, 1)
	test.That(t, summary.Counts[deform.Missed], test.ShouldEqual, 0)

	var buf bytes.Buffer
	summary.Print(&buf)
	for _, row := range []string{"| vertices", "| snapped", "| swelled", "| untouched", "| missed", "| max offset", "2.000000", "1.250000"} {
		test.That(t, buf.String(), test.ShouldContainSubstring, row)
	}

	test.That(t, buf.String(), test.ShouldNotContainSubstring, "| curve")
	summary.CurveSamples = []float64{0, 0.5, 1}
	test.That(t, summary.String(), test.ShouldContainSubstring, "0.000 0.500 1.000")

	t.Run("empty", func(t *testing.T) {
		summary, err := Summarize(&deform.Mesh{}, &deform.Mesh{}, r3.Vector{}, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, summary.Vertices, test.ShouldEqual, 0)
		test.That(t, summary.MaxOffset, test.ShouldEqual, 0.0)
	})

	t.Run("mismatched", func(t *testing.T) {
		_, err := Summarize(base, &deform.Mesh{}, r3.Vector{}, nil)
		test.That(t, err, test.ShouldNotBeNil)
		_, err = Summarize(nil, out, r3.Vector{}, nil)
		test.That(t, err, test.ShouldNotBeNil)
	})
}
