package reverify

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Record(BatchStats{Verified: 25})
	tracker.Record(BatchStats{Verified: 20, Failed: 5})
	tracker.Record(BatchStats{Verified: 50})

	current, failed := tracker.Processed()
	assert.Equal(t, 100, current)
	assert.Equal(t, 5, failed)
	assert.Greater(t, tracker.Elapsed(), time.Duration(0), "elapsed time should be positive")

	output := buf.String()
	assert.Contains(t, output, "100/100", "should show completion")
	assert.Contains(t, output, "100.0%", "should show 100%")
	assert.Contains(t, output, "5 failed")
	assert.Contains(t, output, "nodes/s", "should show rate")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Record(BatchStats{Verified: 75})
	buf.Reset()
	tracker.Finish()

	output := buf.String()
	assert.Contains(t, output, "75/100", "finish reports what was processed")
	assert.Contains(t, output, "\n", "finish should print newline")
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 10)

	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0", "should handle zero total")
}

func TestProgressTracker_RecordBeyondTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Record(BatchStats{Verified: 150})

	assert.Contains(t, buf.String(), "100/100", "should not exceed total")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Record(BatchStats{Verified: 10})
	tracker.Finish()

	assert.Equal(t, "", buf.String(), "should have no output when not started")
	assert.Zero(t, tracker.Elapsed())
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1000, 100)

	tracker.Start()

	tracker.Record(BatchStats{Verified: 50})
	assert.Equal(t, "", buf.String(), "should not print under interval")

	tracker.Record(BatchStats{Verified: 50})
	assert.NotEmpty(t, buf.String(), "should print at interval")

	buf.Reset()
	tracker.Record(BatchStats{Verified: 99})
	assert.Equal(t, "", buf.String(), "interval counts from the last report")
}
