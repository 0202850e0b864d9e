package object

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/loop/config"
)

var (
	shaftColor = mustHex("#a52a2a") // brown
	tipColor   = colorful.Color{}                 // black
)

// Projectile is an arrow flying left to right. Size and speed never change.
type Projectile struct {
	X, Y   float64 // Top-left corner of the shaft
	Width  float64
	Height float64
	Speed  float64 // Logical pixels per frame
}

// NewProjectile creates an arrow just outside the left edge, vertically centered.
func NewProjectile(screen Screen) *Projectile {
	return &Projectile{
		X:      config.ProjectileStartX,
		Y:      screen.Height / 2,
		Width:  config.ProjectileWidth,
		Height: config.ProjectileHeight,
		Speed:  config.ProjectileSpeed,
	}
}

// TryFire creates a projectile unless currentCount arrows are already in flight
// at the cap. Rejections are silent.
func TryFire(currentCount int, screen Screen) (*Projectile, bool) {
	if currentCount >= config.MaxProjectiles {
		return nil, false
	}
	return NewProjectile(screen), true
}

// Tip returns the collision point at the front of the shaft.
func (p *Projectile) Tip() (float64, float64) {
	return p.X + p.Width, p.Y + p.Height/2
}

// Update moves the arrow right. It is removed once past the right edge.
func (p *Projectile) Update(ctx UpdateContext) (bool, error) {
	p.X += p.Speed
	return p.X > ctx.Screen.Width, nil
}

// Draw renders the shaft as a rectangle with a triangular head.
func (p *Projectile) Draw(ctx DrawContext) error {
	ctx.Canvas.FillRect(p.X, p.Y, p.Width, p.Height, shaftColor)

	front := p.X + p.Width
	ctx.Canvas.FillPolygon([]draw.Point{
		{X: front, Y: p.Y - 8},
		{X: front + 15, Y: p.Y + 3},
		{X: front, Y: p.Y + 14},
	}, tipColor)

	return nil
}
