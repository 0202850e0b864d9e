package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceSquared(t *testing.T) {
	assert.InDelta(t, 25.0, DistanceSquared(0, 0, 3, 4), 1e-9)
	assert.InDelta(t, 25.0, DistanceSquared(3, 4, 0, 0), 1e-9)
}

func TestPointInCircle(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"center", 100, 50, true},
		{"near center", 95, 50, true},
		{"on rim", 125, 50, false},
		{"outside", 130, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointInCircle(tt.px, tt.py, 100, 50, 25))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 25.0, Clamp(10, 25, 775))
	assert.Equal(t, 775.0, Clamp(800, 25, 775))
	assert.Equal(t, 300.0, Clamp(300, 25, 775))
	assert.Equal(t, 25.0, Clamp(10, 25, 5))
}
