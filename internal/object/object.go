// Package object holds the game entities: arrows, balloons and the sky behind them.
package object

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloons/internal/draw"
)

// Screen is the playfield size in logical pixels.
type Screen struct {
	Width  float64
	Height float64
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Screen Screen
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // Color canvas (2x vertical)
	Screen Screen
	Now    time.Time // Wall clock, drives cosmetic animation only
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object one frame. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw paints the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// mustHex parses a "#rrggbb" color literal, panicking on malformed input.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
