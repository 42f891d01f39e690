package services

import (
	"fmt"
	"math"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// classifyTurn maps the clockwise turn angle to a maneuver. An angle of
// exactly 180 has no branch and yields ManeuverNone.
func classifyTurn(turnAngle float64) models.Maneuver {
	switch {
	case turnAngle < 15:
		return models.ManeuverContinue
	case turnAngle < 90:
		return models.ManeuverTurnSlightRight
	case turnAngle < 180:
		return models.ManeuverTurnRight
	case turnAngle > 180 && turnAngle < 270:
		return models.ManeuverTurnLeft
	case turnAngle >= 270:
		return models.ManeuverTurnSlightLeft
	}
	return models.ManeuverNone
}

func course(deg float64) int {
	return int(math.Round(deg)) % 360
}

func instructionFor(m models.Maneuver, hIn, hOut, distanceNm float64) string {
	switch m {
	case models.ManeuverDepart:
		return "Begin navigation"
	case models.ManeuverArrive:
		return "Arrive at destination"
	case models.ManeuverContinue:
		return fmt.Sprintf("Continue on course %d° for %.1f nm", course(hIn), distanceNm)
	case models.ManeuverTurnSlightRight:
		return fmt.Sprintf("Bear to starboard onto course %d° for %.1f nm", course(hOut), distanceNm)
	case models.ManeuverTurnRight:
		return fmt.Sprintf("Turn starboard onto course %d° for %.1f nm", course(hOut), distanceNm)
	case models.ManeuverTurnLeft:
		return fmt.Sprintf("Turn port onto course %d° for %.1f nm", course(hOut), distanceNm)
	case models.ManeuverTurnSlightLeft:
		return fmt.Sprintf("Bear to port onto course %d° for %.1f nm", course(hOut), distanceNm)
	case models.ManeuverNone:
		return ""
	}
	return ""
}

// SynthesizeDirections labels annotated waypoints with maneuvers and
// instructions. The input is not modified.
func SynthesizeDirections(waypoints []models.RouteWaypoint) []models.RouteWaypoint {
	out := make([]models.RouteWaypoint, len(waypoints))
	copy(out, waypoints)
	n := len(out)
	if n == 0 {
		return out
	}

	for i := 1; i < n-1; i++ {
		if out[i-1].BearingToNextDeg == nil || out[i].BearingToNextDeg == nil {
			continue
		}
		hIn := *out[i-1].BearingToNextDeg
		hOut := *out[i].BearingToNextDeg
		turnAngle := math.Mod(hOut-hIn+360, 360)

		m := classifyTurn(turnAngle)
		out[i].Maneuver = m
		out[i].Instruction = instructionFor(m, hIn, hOut, out[i].DistanceToNextNm)
	}

	out[0].Maneuver = models.ManeuverDepart
	out[0].Instruction = instructionFor(models.ManeuverDepart, 0, 0, 0)
	if n > 1 {
		out[n-1].Maneuver = models.ManeuverArrive
		out[n-1].Instruction = instructionFor(models.ManeuverArrive, 0, 0, 0)
	}
	return out
}
