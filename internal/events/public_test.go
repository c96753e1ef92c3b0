package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestIsFull(t *testing.T) {
	tests := []struct {
		name     string
		capacity *int
		count    int
		want     bool
	}{
		{"no capacity is never full", nil, 1000, false},
		{"below capacity", intPtr(50), 49, false},
		{"exactly at capacity", intPtr(50), 50, true},
		{"over capacity", intPtr(50), 51, true},
		{"zero attendees", intPtr(50), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFull(tt.capacity, tt.count))
		})
	}
}
