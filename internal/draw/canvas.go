package draw

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a color drawing buffer with 2x vertical resolution using half-block characters.
// Each terminal cell shows two stacked pixels: the upper one as foreground of '▀',
// the lower one as background. Supports scaling from logical coordinates to pixels.
type Canvas struct {
	termWidth      int              // Render columns
	termHeight     int              // Render rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]

	// Last rendered cell contents, used to skip unchanged cells.
	prev []cell

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for placing the render area inside the terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
}

// rgb is a quantized 24-bit color as sent to the terminal.
type rgb struct {
	r, g, b uint8
}

// cell is what a terminal cell currently displays.
type cell struct {
	top, bottom rgb
	drawn       bool
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the render dimensions in terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight, logicalWidth, logicalHeight)
	return c
}

// Resize updates the render size and the logical coordinate space.
// Reallocating the pixel buffer forces a full redraw on the next Render.
func (c *Canvas) Resize(termWidth, termHeight int, logicalWidth, logicalHeight float64) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]colorful.Color, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
	}

	c.logicalWidth = logicalWidth
	c.logicalHeight = logicalHeight
	c.scaleX = float64(termWidth) / logicalWidth
	c.scaleY = float64(c.subPixelHeight) / logicalHeight
}

// SetOffset sets the column and row offset of the render area.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared or text was drawn over the canvas.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// Clear fills every pixel with col.
func (c *Canvas) Clear(col colorful.Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// setPixel sets a pixel at actual pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col colorful.Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// blendPixel mixes col over the existing pixel with the given opacity.
func (c *Canvas) blendPixel(x, y int, col colorful.Color, alpha float64) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
	}
}

// toPixel converts logical coordinates to the pixel containing them.
func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Floor(x * c.scaleX)), int(math.Floor(y * c.scaleY))
}

// pixelCenter returns the logical coordinates of a pixel's center.
func (c *Canvas) pixelCenter(px, py int) (float64, float64) {
	return (float64(px) + 0.5) / c.scaleX, (float64(py) + 0.5) / c.scaleY
}

// Set sets the pixel containing the logical point (x, y).
func (c *Canvas) Set(x, y float64, col colorful.Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, col)
}

// At returns the color of the pixel containing the logical point (x, y).
// Points outside the canvas read as black.
func (c *Canvas) At(x, y float64) colorful.Color {
	px, py := c.toPixel(x, y)
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return colorful.Color{}
	}
	return c.pixels[py*c.termWidth+px]
}

// Render writes changed cells to w using half-block characters and truecolor escapes.
// Cells identical to the previous Render are skipped.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	var fg, bg rgb
	styled := false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		cursorAt := -1 // Column the terminal cursor sits on, -1 if unknown

		for col := 0; col < c.termWidth; col++ {
			next := cell{
				top:    quantize(c.pixels[topOffset+col]),
				bottom: quantize(c.pixels[bottomOffset+col]),
				drawn:  true,
			}
			idx := row*c.termWidth + col
			if c.prev[idx] == next {
				continue // Unchanged since last frame
			}
			c.prev[idx] = next

			if cursorAt != col {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if !styled || next.top != fg {
				c.writeColor(38, next.top)
				fg = next.top
			}
			if !styled || next.bottom != bg {
				c.writeColor(48, next.bottom)
				bg = next.bottom
			}
			styled = true

			c.renderBuf.WriteRune(BlockUpperHalf)
			cursorAt = col + 1
		}
	}

	if styled {
		c.renderBuf.WriteString(resetStyle)
	}
	io.WriteString(w, c.renderBuf.String())
}

// moveCursor appends an absolute cursor position sequence (1-based).
func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor appends a truecolor SGR sequence; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, col rgb) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.r), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.g), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.b), 10))
	c.renderBuf.WriteByte('m')
}

func quantize(col colorful.Color) rgb {
	r, g, b := col.Clamped().RGB255()
	return rgb{r, g, b}
}
