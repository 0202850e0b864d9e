package object

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/physics"
)

var tetherColor = mustHex("#555555")

// tetherLength is how far the string hangs below the balloon.
const tetherLength = 20.0

// Balloon rises at a fixed speed while swaying sideways.
type Balloon struct {
	X, Y    float64 // Center
	Radius  float64
	Speed   float64 // Upward logical pixels per frame, fixed at spawn
	Hue     float64 // Degrees, [0, 360)
	Sway    float64 // Horizontal pixels per frame
	SwayDir float64 // +1 or -1
}

// Escaped reports whether the balloon is fully above the top edge.
func (b *Balloon) Escaped() bool {
	return b.Y+b.Radius < 0
}

// Update moves the balloon up and sideways, bouncing off the side walls.
// Returns true once the balloon has escaped through the top.
func (b *Balloon) Update(ctx UpdateContext) (bool, error) {
	b.Y -= b.Speed

	left := b.Radius
	right := ctx.Screen.Width - b.Radius
	b.X += b.Sway * b.SwayDir
	if b.X < left || b.X > right {
		b.SwayDir = -b.SwayDir
		b.X = physics.Clamp(b.X, left, right)
	}

	return b.Escaped(), nil
}

// HitBy reports whether the point (x, y) is strictly inside the balloon.
func (b *Balloon) HitBy(x, y float64) bool {
	return physics.PointInCircle(x, y, b.X, b.Y, b.Radius)
}

// Draw renders a shaded circle with a tether line beneath it.
func (b *Balloon) Draw(ctx DrawContext) error {
	shade := draw.RadialGradient{
		FocusX:      b.X - b.Radius/3,
		FocusY:      b.Y - b.Radius/3,
		InnerRadius: 5,
		OuterRadius: b.Radius,
		Inner:       colorful.Hsl(b.Hue, 1.0, 0.8),
		Outer:       colorful.Hsl(b.Hue, 0.7, 0.4),
	}
	ctx.Canvas.FillCircle(b.X, b.Y, b.Radius, shade.At)

	ctx.Canvas.DrawLine(
		draw.Point{X: b.X, Y: b.Y + b.Radius},
		draw.Point{X: b.X, Y: b.Y + b.Radius + tetherLength},
		tetherColor,
	)
	return nil
}
