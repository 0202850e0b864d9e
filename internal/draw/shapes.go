package draw

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// BlockUpperHalf is the character every canvas cell is drawn with.
const BlockUpperHalf = '▀'

// FillVerticalGradient paints the whole canvas, blending from top to bottom.
func (c *Canvas) FillVerticalGradient(top, bottom colorful.Color) {
	for py := 0; py < c.subPixelHeight; py++ {
		_, ly := c.pixelCenter(0, py)
		col := top.BlendRgb(bottom, clamp01(ly/c.logicalHeight))
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for i := range row {
			row[i] = col
		}
	}
}

// FillRect fills every pixel the logical rectangle overlaps.
// Thin rectangles still cover at least one pixel row and column.
func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color) {
	x0, y0 := c.toPixel(x, y)
	x1 := int(math.Ceil((x+w)*c.scaleX)) - 1
	y1 := int(math.Ceil((y+h)*c.scaleY)) - 1
	x1 = max(x1, x0)
	y1 = max(y1, y0)

	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col colorful.Color) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygon fills a polygon and draws its outline so small shapes stay visible.
func (c *Canvas) FillPolygon(points []Point, col colorful.Color) {
	if len(points) < 3 {
		return
	}

	c.fillPolygon(points, col)

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col colorful.Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// Ellipse is an axis-aligned ellipse in logical coordinates.
type Ellipse struct {
	CX, CY float64 // Center
	RX, RY float64 // Radii
}

// contains reports whether the logical point (x, y) lies inside e.
func (e Ellipse) contains(x, y float64) bool {
	nx := (x - e.CX) / e.RX
	ny := (y - e.CY) / e.RY
	return nx*nx+ny*ny <= 1
}

// FillEllipses blends col once over every pixel whose center lies inside any
// of the ellipses, so overlapping parts are no more opaque than alpha (0..1).
func (c *Canvas) FillEllipses(shapes []Ellipse, col colorful.Color, alpha float64) {
	if len(shapes) == 0 {
		return
	}

	minX, minY := shapes[0].CX-shapes[0].RX, shapes[0].CY-shapes[0].RY
	maxX, maxY := shapes[0].CX+shapes[0].RX, shapes[0].CY+shapes[0].RY
	for _, e := range shapes[1:] {
		minX = math.Min(minX, e.CX-e.RX)
		minY = math.Min(minY, e.CY-e.RY)
		maxX = math.Max(maxX, e.CX+e.RX)
		maxY = math.Max(maxY, e.CY+e.RY)
	}

	x0, y0 := c.toPixel(minX, minY)
	x1, y1 := c.toPixel(maxX, maxY)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.termWidth-1), min(y1, c.subPixelHeight-1)

	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			lx, ly := c.pixelCenter(px, py)
			for _, e := range shapes {
				if e.contains(lx, ly) {
					c.blendPixel(px, py, col, alpha)
					break
				}
			}
		}
	}
}

// FillCircle paints every pixel whose center lies inside the circle, taking each
// pixel's color from shade. A circle smaller than a pixel still paints its center.
func (c *Canvas) FillCircle(cx, cy, r float64, shade func(x, y float64) colorful.Color) {
	x0, y0 := c.toPixel(cx-r, cy-r)
	x1, y1 := c.toPixel(cx+r, cy+r)

	painted := false
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			lx, ly := c.pixelCenter(px, py)
			dx := lx - cx
			dy := ly - cy
			if dx*dx+dy*dy < r*r {
				c.setPixel(px, py, shade(lx, ly))
				painted = true
			}
		}
	}

	if !painted {
		c.Set(cx, cy, shade(cx, cy))
	}
}

// RadialGradient blends Inner to Outer by distance from a focus point:
// Inner up to InnerRadius, Outer from OuterRadius on.
type RadialGradient struct {
	FocusX, FocusY float64
	InnerRadius    float64
	OuterRadius    float64
	Inner          colorful.Color
	Outer          colorful.Color
}

// At returns the gradient color at a logical point.
func (g RadialGradient) At(x, y float64) colorful.Color {
	span := g.OuterRadius - g.InnerRadius
	if span <= 0 {
		return g.Outer
	}
	dx := x - g.FocusX
	dy := y - g.FocusY
	t := (math.Sqrt(dx*dx+dy*dy) - g.InnerRadius) / span
	return g.Inner.BlendRgb(g.Outer, clamp01(t))
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
