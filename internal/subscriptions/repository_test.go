package subscriptions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/memberhq/backend/internal/models"
)

func TestPeriodFor(t *testing.T) {
	now := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		interval string
		wantEnd  time.Time
	}{
		{models.IntervalWeek, time.Date(2026, time.February, 7, 12, 0, 0, 0, time.UTC)},
		{models.IntervalMonth, time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)}, // Jan 31 + 1 month normalizes past Feb
		{models.IntervalYear, time.Date(2027, time.January, 31, 12, 0, 0, 0, time.UTC)},
		{"bogus", time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		start, end := PeriodFor(tt.interval, now)
		assert.Equal(t, now, start, tt.interval)
		assert.Equal(t, tt.wantEnd, end, tt.interval)
	}
}
