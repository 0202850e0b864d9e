package object

import (
	"math/rand"

	"github.com/tomz197/balloons/internal/loop/config"
)

// BalloonCap returns how many balloons may be alive at once on a level.
func BalloonCap(level int) int {
	return min(level+1, config.MaxBalloons)
}

// BalloonSpeed returns the rise speed for balloons spawned on a level.
func BalloonSpeed(level int) float64 {
	return config.BalloonBaseSpeed + float64(level-1)*config.BalloonLevelSpeed
}

// TrySpawn creates a balloon below the bottom edge unless the level's cap is
// already reached. The x position is sampled in [50, width-50], re-rolled while
// it falls inside the arrow safe zone, with a fixed fallback so it always ends.
func TrySpawn(rng *rand.Rand, level, currentCount int, screen Screen) (*Balloon, bool) {
	if currentCount >= BalloonCap(level) {
		return nil, false
	}

	lo := config.BalloonSpawnMargin
	hi := screen.Width - config.BalloonSpawnMargin

	var x float64
	tries := 0
	for {
		x = lo + rng.Float64()*(hi-lo)
		tries++
		if x >= config.SpawnSafeZone || tries >= config.SpawnMaxTries {
			break
		}
	}
	if x < config.SpawnSafeZone {
		x = config.SpawnSafeZone + config.SpawnFallbackGap
	}

	swayDir := 1.0
	if rng.Float64() < 0.5 {
		swayDir = -1.0
	}

	return &Balloon{
		X:       x,
		Y:       screen.Height + config.BalloonSpawnDepth,
		Radius:  config.BalloonRadius,
		Speed:   BalloonSpeed(level),
		Hue:     rng.Float64() * 360,
		Sway:    config.BalloonMinSway + rng.Float64()*(config.BalloonMaxSway-config.BalloonMinSway),
		SwayDir: swayDir,
	}, true
}
