package sprints_services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_TimeProgress_ClampsToRange(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, TimeProgress(start.Add(-time.Hour), start, end))
	assert.Equal(t, 100.0, TimeProgress(end.Add(time.Hour), start, end))

	halfway := start.Add(5 * 24 * time.Hour)
	assert.InDelta(t, 50.0, TimeProgress(halfway, start, end), 0.01)
}

func Test_TimeProgress_ZeroLengthSprint_ReturnsZero(t *testing.T) {
	moment := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, TimeProgress(moment, moment, moment))
}
