package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corefuzz/corefuzz/pool"
	"github.com/corefuzz/corefuzz/report"
)

func TestTableRendersEveryPoolAsAColumn(t *testing.T) {
	a := pool.Stats{Name: "counter_maximizing", Fields: []pool.StatField{{Name: "inputs", Value: "3"}}}
	b := pool.Stats{Name: "maximise_observation", Fields: []pool.StatField{{Name: "has_best", Value: "true"}}}

	out := report.Table(a, b)
	assert.Contains(t, out, "counter_maximizing")
	assert.Contains(t, out, "maximise_observation")
	assert.Contains(t, out, "inputs")
	assert.Contains(t, out, "has_best")
}

func TestTableFillsMissingFieldsWithPlaceholder(t *testing.T) {
	a := pool.Stats{Name: "a", Fields: []pool.StatField{{Name: "x", Value: "1"}}}
	b := pool.Stats{Name: "b", Fields: []pool.StatField{{Name: "y", Value: "2"}}}

	out := report.Table(a, b)
	assert.Contains(t, out, "-", "pool b has no field named x, so its column should show the placeholder")
}

func TestCSVProducesOneLinePerPool(t *testing.T) {
	a := pool.Stats{Name: "a", Fields: []pool.StatField{{Name: "n", Value: "1"}}}
	b := pool.Stats{Name: "b", Fields: []pool.StatField{{Name: "n", Value: "2"}}}

	out := report.CSV(a, b)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "a,n=1", lines[0])
	assert.Equal(t, "b,n=2", lines[1])
}

func TestSummaryFormatsProgressLine(t *testing.T) {
	out := report.Summary(1000, 42, "1m0s")
	assert.Equal(t, "iterations=1000 corpus=42 elapsed=1m0s", out)
}
