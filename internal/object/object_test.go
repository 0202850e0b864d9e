package object

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/balloons/internal/draw"
)

var testScreen = Screen{Width: 800, Height: 600}

func TestTryFireRespectsCap(t *testing.T) {
	for count := 0; count < 3; count++ {
		p, ok := TryFire(count, testScreen)
		require.True(t, ok, "count %d", count)
		assert.Equal(t, -60.0, p.X)
		assert.Equal(t, 300.0, p.Y)
		assert.Equal(t, 50.0, p.Width)
		assert.Equal(t, 6.0, p.Height)
		assert.Equal(t, 10.0, p.Speed)
	}

	p, ok := TryFire(3, testScreen)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestProjectileTravelsRightUntilOffscreen(t *testing.T) {
	p := NewProjectile(testScreen)
	ctx := UpdateContext{Screen: testScreen}

	frames := 0
	last := p.X
	for {
		remove, err := p.Update(ctx)
		require.NoError(t, err)
		frames++
		assert.Greater(t, p.X, last)
		last = p.X
		if remove {
			break
		}
		require.Less(t, frames, 1000)
	}
	// -60 + 87*10 = 810 is the first x beyond 800.
	assert.Equal(t, 87, frames)
	assert.Equal(t, 810.0, p.X)

	x, y := p.Tip()
	assert.Equal(t, 860.0, x)
	assert.Equal(t, 303.0, y)
}

func TestBalloonRisesAndSways(t *testing.T) {
	b := &Balloon{X: 400, Y: 640, Radius: 25, Speed: 2, Sway: 1, SwayDir: 1}
	remove, err := b.Update(UpdateContext{Screen: testScreen})
	require.NoError(t, err)
	assert.False(t, remove)
	assert.Equal(t, 638.0, b.Y)
	assert.Equal(t, 401.0, b.X)
	assert.Equal(t, 1.0, b.SwayDir)
}

func TestBalloonBouncesOffWalls(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		dir     float64
		wantX   float64
		wantDir float64
	}{
		{"left wall", 25.5, -1, 25, 1},
		{"right wall", 774.5, 1, 775, -1},
		{"inside", 400, -1, 399, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Balloon{X: tt.x, Y: 300, Radius: 25, Speed: 2, Sway: 1, SwayDir: tt.dir}
			_, err := b.Update(UpdateContext{Screen: testScreen})
			require.NoError(t, err)
			assert.Equal(t, tt.wantX, b.X)
			assert.Equal(t, tt.wantDir, b.SwayDir)
		})
	}
}

func TestBalloonEscapesOnlyWhenFullyAbove(t *testing.T) {
	ctx := UpdateContext{Screen: testScreen}

	b := &Balloon{X: 400, Y: -23, Radius: 25, Speed: 2, Sway: 0.5, SwayDir: 1}
	remove, err := b.Update(ctx)
	require.NoError(t, err)
	assert.False(t, remove, "y+r == 0 is still on screen")

	remove, err = b.Update(ctx)
	require.NoError(t, err)
	assert.True(t, remove)
}

func TestBalloonHitBy(t *testing.T) {
	b := &Balloon{X: 100, Y: 300, Radius: 25}
	assert.True(t, b.HitBy(95, 300))
	assert.False(t, b.HitBy(125, 300))
	assert.False(t, b.HitBy(40, 303))
}

func TestBalloonCap(t *testing.T) {
	for level := 1; level <= 12; level++ {
		assert.Equal(t, min(level+1, 10), BalloonCap(level), "level %d", level)
	}
}

func TestBalloonSpeed(t *testing.T) {
	assert.InDelta(t, 2.0, BalloonSpeed(1), 1e-9)
	assert.InDelta(t, 2.3, BalloonSpeed(2), 1e-9)
	assert.InDelta(t, 4.7, BalloonSpeed(10), 1e-9)
}

func TestTrySpawn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		b, ok := TrySpawn(rng, 3, 0, testScreen)
		require.True(t, ok)
		assert.GreaterOrEqual(t, b.X, 50.0)
		assert.LessOrEqual(t, b.X, 750.0)
		assert.Equal(t, 640.0, b.Y)
		assert.Equal(t, 25.0, b.Radius)
		assert.InDelta(t, 2.6, b.Speed, 1e-9)
		assert.GreaterOrEqual(t, b.Hue, 0.0)
		assert.Less(t, b.Hue, 360.0)
		assert.GreaterOrEqual(t, b.Sway, 0.5)
		assert.Less(t, b.Sway, 2.0)
		assert.Contains(t, []float64{-1, 1}, b.SwayDir)
	}
}

func TestTrySpawnAtCap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, ok := TrySpawn(rng, 1, 2, testScreen)
	assert.False(t, ok)

	_, ok = TrySpawn(rng, 20, 10, testScreen)
	assert.False(t, ok)

	_, ok = TrySpawn(rng, 20, 9, testScreen)
	assert.True(t, ok)
}

func TestTrySpawnFallsBackOnNarrowScreen(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Every sample lands in (30, 50], left of the safe zone.
	b, ok := TrySpawn(rng, 1, 0, Screen{Width: 80, Height: 200})
	require.True(t, ok)
	assert.Equal(t, 70.0, b.X)
}

func TestTrySpawnIsDeterministic(t *testing.T) {
	a, _ := TrySpawn(rand.New(rand.NewSource(42)), 1, 0, testScreen)
	b, _ := TrySpawn(rand.New(rand.NewSource(42)), 1, 0, testScreen)
	assert.Equal(t, a, b)
}

func TestCloudX(t *testing.T) {
	assert.Equal(t, 0.0, CloudX(0, 0, 800))
	assert.Equal(t, 400.0, CloudX(2, 0, 800))
	assert.Equal(t, 20.0, CloudX(0, 1000, 800))
	assert.Equal(t, 20.0, CloudX(4, 1000, 800))
	assert.Equal(t, 0.0, CloudX(1, 1000, 0))
}

func TestDrawPaintsEntities(t *testing.T) {
	canvas := draw.NewScaledCanvas(100, 38, 800, 600)
	ctx := DrawContext{Canvas: canvas, Screen: testScreen, Now: time.UnixMilli(0)}

	require.NoError(t, Sky{}.Draw(ctx))
	sky := canvas.At(400, 590)
	assert.InDelta(t, 1.0, sky.R, 0.05)

	b := &Balloon{X: 400, Y: 300, Radius: 25, Hue: 0}
	require.NoError(t, b.Draw(ctx))
	center := canvas.At(400, 300)
	assert.Greater(t, center.R, center.G, "red balloon")

	p := NewProjectile(Screen{Width: 800, Height: 200})
	p.X = 100
	require.NoError(t, p.Draw(ctx))
	assert.Equal(t, mustHex("#a52a2a").Hex(), canvas.At(110, 102).Hex())
}
