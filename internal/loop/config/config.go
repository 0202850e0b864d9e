// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// Session
const (
	InitialLives = 10
	InitialLevel = 1
	PopsPerLevel = 5 // Every 5th pop raises the level
)

// Projectiles (arrows)
const (
	MaxProjectiles   = 3
	ProjectileWidth  = 50.0
	ProjectileHeight = 6.0
	ProjectileSpeed  = 10.0  // Logical pixels per frame
	ProjectileStartX = -60.0 // Just outside the left edge
)

// Balloons
const (
	MaxBalloons        = 10
	BalloonRadius      = 25.0
	BalloonBaseSpeed   = 2.0 // Logical pixels per frame at level 1
	BalloonLevelSpeed  = 0.3 // Added per level above 1
	BalloonSpawnMargin = 50.0
	BalloonSpawnDepth  = 40.0 // Spawn this far below the bottom edge
	BalloonMinSway     = 0.5
	BalloonMaxSway     = 2.0
	SpawnSafeZone      = 50.0 // Band near the firing origin balloons avoid
	SpawnFallbackGap   = 20.0 // Fallback x is SpawnSafeZone + SpawnFallbackGap
	SpawnMaxTries      = 20
)

// Playfield layout, in logical pixels. A terminal cell is CellWidth x CellHeight
// and holds two square sub-pixels stacked vertically.
const (
	CellWidth                 = 8.0
	CellHeight                = 16.0
	NarrowViewportWidth       = 768.0
	PlayfieldWidthRatio       = 0.5
	NarrowPlayfieldWidthRatio = 0.95
	PlayfieldHeightRatio      = 0.6
)

// Background
const (
	CloudCount      = 5
	CloudSpacing    = 200.0
	CloudDriftDivMs = 50.0 // Clouds drift one pixel per 50ms of wall clock
	CloudTop        = 50.0
	CloudStep       = 30.0
)

// Tuning holds runtime parameters that can be overridden from a TOML file.
// Gameplay rules stay fixed; only pacing and render limits are tunable.
type Tuning struct {
	FrameRate       int `toml:"frame_rate"`        // Frames per second
	SpawnIntervalMs int `toml:"spawn_interval_ms"` // Milliseconds between spawn attempts
	MaxTermWidth    int `toml:"max_term_width"`    // Max render columns
	MaxTermHeight   int `toml:"max_term_height"`   // Max render rows
}

// DefaultTuning returns the stock pacing: 60 fps, one spawn attempt per second.
func DefaultTuning() Tuning {
	return Tuning{
		FrameRate:       60,
		SpawnIntervalMs: 1000,
		MaxTermWidth:    400,
		MaxTermHeight:   120,
	}
}

// FrameTime returns the duration of one frame.
func (t Tuning) FrameTime() time.Duration {
	return time.Second / time.Duration(t.FrameRate)
}

// SpawnInterval returns the time between spawn attempts.
func (t Tuning) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnIntervalMs) * time.Millisecond
}

// Validate reports the first out-of-range field.
func (t Tuning) Validate() error {
	switch {
	case t.FrameRate <= 0 || t.FrameRate > 240:
		return fmt.Errorf("frame_rate %d out of range (1-240)", t.FrameRate)
	case t.SpawnIntervalMs <= 0:
		return fmt.Errorf("spawn_interval_ms must be positive, got %d", t.SpawnIntervalMs)
	case t.MaxTermWidth <= 0 || t.MaxTermHeight <= 0:
		return fmt.Errorf("max terminal size must be positive, got %dx%d", t.MaxTermWidth, t.MaxTermHeight)
	}
	return nil
}

// LoadTuning reads overrides from a TOML file on top of DefaultTuning.
// An empty path or a missing file yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultTuning(), nil
		}
		return DefaultTuning(), fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}
