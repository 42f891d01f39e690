package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

func legs(hIn, hOut, outDistance float64) []models.RouteWaypoint {
	return []models.RouteWaypoint{
		{DistanceToNextNm: 1, BearingToNextDeg: &hIn},
		{DistanceToNextNm: outDistance, BearingToNextDeg: &hOut},
		{},
	}
}

func TestSynthesizeDirectionsClassification(t *testing.T) {
	tests := []struct {
		name        string
		hIn, hOut   float64
		maneuver    models.Maneuver
		instruction string
	}{
		{"straight", 90, 90, models.ManeuverContinue, "Continue on course 90° for 2.5 nm"},
		{"just under threshold", 90, 104.9, models.ManeuverContinue, "Continue on course 90° for 2.5 nm"},
		{"slight right", 90, 105, models.ManeuverTurnSlightRight, "Bear to starboard onto course 105° for 2.5 nm"},
		{"right", 0, 90, models.ManeuverTurnRight, "Turn starboard onto course 90° for 2.5 nm"},
		{"exact reversal", 0, 180, models.ManeuverNone, ""},
		{"left", 0, 200, models.ManeuverTurnLeft, "Turn port onto course 200° for 2.5 nm"},
		{"slight left", 0, 300, models.ManeuverTurnSlightLeft, "Bear to port onto course 300° for 2.5 nm"},
		{"wraps north", 350, 5, models.ManeuverTurnSlightRight, "Bear to starboard onto course 5° for 2.5 nm"},
		{"rounds to north", 359.6, 359.8, models.ManeuverContinue, "Continue on course 0° for 2.5 nm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := SynthesizeDirections(legs(tt.hIn, tt.hOut, 2.5))
			require.Len(t, out, 3)
			assert.Equal(t, tt.maneuver, out[1].Maneuver)
			assert.Equal(t, tt.instruction, out[1].Instruction)
		})
	}
}

func TestSynthesizeDirectionsEnds(t *testing.T) {
	out := SynthesizeDirections(legs(10, 20, 1))
	assert.Equal(t, models.ManeuverDepart, out[0].Maneuver)
	assert.Equal(t, "Begin navigation", out[0].Instruction)
	assert.Equal(t, models.ManeuverArrive, out[2].Maneuver)
	assert.Equal(t, "Arrive at destination", out[2].Instruction)

	assert.Empty(t, SynthesizeDirections(nil))

	single := SynthesizeDirections([]models.RouteWaypoint{{}})
	assert.Equal(t, models.ManeuverDepart, single[0].Maneuver)
}

func TestSynthesizeDirectionsDeterministic(t *testing.T) {
	waypoints := Annotate(RawPath{Waypoints: []models.GeoPoint{
		sgOrigin, sgMid, {Lat: 1.27, Lng: 103.87}, {Lat: 1.24, Lng: 103.86}, sgDestination,
	}})

	first := SynthesizeDirections(waypoints)
	for i := 0; i < 5; i++ {
		again := SynthesizeDirections(waypoints)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Instruction, again[j].Instruction)
			assert.Equal(t, first[j].Maneuver, again[j].Maneuver)
		}
	}
	for _, wp := range waypoints {
		assert.Empty(t, wp.Instruction, "input must not be modified")
	}
}

func TestAnnotate(t *testing.T) {
	out := Annotate(RawPath{Waypoints: []models.GeoPoint{sgOrigin, sgMid, sgDestination}})
	require.Len(t, out, 3)

	assert.InDelta(t, 1.92, out[0].DistanceToNextNm, 0.01)
	require.NotNil(t, out[0].BearingToNextDeg)
	assert.InDelta(t, 128.6, *out[0].BearingToNextDeg, 0.5)

	assert.Zero(t, out[2].DistanceToNextNm)
	assert.Nil(t, out[2].BearingToNextDeg)
}

func TestDurationMinutes(t *testing.T) {
	assert.InDelta(t, 60.0, DurationMinutes(15, 15), 1e-9)
	assert.InDelta(t, 90.0, DurationMinutes(30, 20), 1e-9)
	assert.Zero(t, DurationMinutes(30, 0))
}
