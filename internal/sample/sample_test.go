package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufdrinsight/ufdrinsight/internal/aggregate"
	"github.com/ufdrinsight/ufdrinsight/internal/risk"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdr"
)

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(42)
	require.NoError(t, err)
	b, err := Generate(42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_FullPipeline(t *testing.T) {
	data, err := Generate(1)
	require.NoError(t, err)

	result, err := ufdr.Parse(data)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Messages)
	assert.Len(t, result.Calls, 20)
	assert.Len(t, result.Contacts, 5)
	assert.Equal(t, "iPhone 13 Pro", result.Metadata["model"])
	assert.Zero(t, result.DroppedRecords)

	report := aggregate.Aggregate(result.Messages, result.Calls, result.Metadata)
	assert.Equal(t, len(result.Messages), report.TotalMessages)
	assert.Equal(t, 5, report.UniqueContacts)
	// The generator plants a 60-message spike on Feb 12.
	assert.Equal(t, "2024-02-12", report.SpikeDate)
	assert.Equal(t, 60, report.SpikeCount)
	// The first five days carry no traffic, so activity starts on Jan 6.
	assert.NotContains(t, report.DailyVolume, "2024-01-01")
	assert.Contains(t, report.DailyVolume, "2024-01-06")

	signals := risk.Detect(report)
	require.NotEmpty(t, signals)
	flags := make(map[string]bool, len(signals))
	for _, s := range signals {
		flags[s.Flag] = true
	}
	assert.True(t, flags["Dominant Contact Relationship"], "John Doe dominates the sample")
}
