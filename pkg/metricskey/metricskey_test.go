package metricskey

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsDefinitions(t *testing.T) {
	for _, m := range Metrics {
		assert.NotEmpty(t, m.Name, "Metric name should not be empty")
		assert.NotEmpty(t, m.Help, "Metric help text should not be empty")
		assert.NotEmpty(t, m.RequiredTags, "Metric should have required tags")
	}

	names := make([]string, 0, len(Metrics))
	seen := map[string]bool{}
	for _, m := range Metrics {
		assert.False(t, seen[m.Name], "Duplicate metric name: %s", m.Name)
		seen[m.Name] = true
		names = append(names, m.Name)
	}
	assert.True(t, sort.StringsAreSorted(names), "Metrics slice should be sorted by name")
}
