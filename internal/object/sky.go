package object

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/loop/config"
)

var (
	skyTop     = mustHex("#a0e9ff")
	skyBottom  = mustHex("#ffffff")
	cloudColor = colorful.Color{R: 1, G: 1, B: 1}
	cloudAlpha = 0.7
	cloudPuffs = [3]draw.Ellipse{{RX: 40, RY: 20}, {CX: 30, CY: 5, RX: 35, RY: 18}, {CX: -30, CY: 5, RX: 35, RY: 18}}
)

var _ Object = Sky{}

// Sky is the background: a vertical gradient with clouds drifting right.
// Cloud positions come from the wall clock and never affect gameplay.
type Sky struct{}

// Update is a no-op; the sky is never removed.
func (Sky) Update(UpdateContext) (bool, error) {
	return false, nil
}

// CloudX returns the horizontal center of cloud i at the given wall-clock time.
func CloudX(i int, nowMillis int64, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return math.Mod(float64(i)*config.CloudSpacing+float64(nowMillis)/config.CloudDriftDivMs, width)
}

// Draw paints the gradient and the clouds.
func (Sky) Draw(ctx DrawContext) error {
	ctx.Canvas.FillVerticalGradient(skyTop, skyBottom)

	now := ctx.Now.UnixMilli()
	var puffs [len(cloudPuffs)]draw.Ellipse
	for i := 0; i < config.CloudCount; i++ {
		x := CloudX(i, now, ctx.Screen.Width)
		y := config.CloudTop + float64(i)*config.CloudStep
		for j, p := range cloudPuffs {
			puffs[j] = draw.Ellipse{CX: x + p.CX, CY: y + p.CY, RX: p.RX, RY: p.RY}
		}
		// One cloud is a single shape; puffs overlap without stacking opacity.
		ctx.Canvas.FillEllipses(puffs[:], cloudColor, cloudAlpha)
	}
	return nil
}
