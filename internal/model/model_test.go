package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLightFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		percentage float64
		want       TrafficLight
	}{
		{"zero", 0, TrafficRed},
		{"just below yellow", 39.9, TrafficRed},
		{"yellow boundary", 40.0, TrafficYellow},
		{"mid yellow", 58.4, TrafficYellow},
		{"just below green", 69.9, TrafficYellow},
		{"green boundary", 70.0, TrafficGreen},
		{"full", 100.0, TrafficGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LightFor(tt.percentage))
		})
	}
}

func TestRound1(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact hundred", 100.0, 100.0},
		{"two thirds of 100", 200.0 / 3.0, 66.7},
		{"midpoint rounds up", 58.35, 58.4},
		{"no drift at thirds", (100.0 + 200.0/3.0) / 2, 83.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Round1(tt.in), 1e-9)
		})
	}
}

func TestMaturityLevelValid(t *testing.T) {
	t.Parallel()

	assert.True(t, LevelNone.Valid())
	assert.True(t, LevelFull.Valid())
	assert.False(t, MaturityLevel(-1).Valid())
	assert.False(t, MaturityLevel(4).Valid())
}

func TestPriorityRank(t *testing.T) {
	t.Parallel()

	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, Priority("bogus").Rank(), PriorityLow.Rank())
}
