// Package loop runs one balloon-shooting game on a terminal.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/input"
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/object"
	"github.com/tomz197/balloons/internal/store"
)

// Options configures a Game. Zero values fall back to defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Store        store.Store   // Best score, in-memory when nil
	Logger       *log.Logger   // Discards when nil
	Tuning       config.Tuning // DefaultTuning when zero
	Rand         *rand.Rand
	Now          func() time.Time // Wall clock for cosmetic animation
}

// Game drives one State: it reads input, ticks the simulation and renders.
type Game struct {
	state        *State
	canvas       *draw.Canvas
	cw           *draw.ChunkWriter
	stream       *input.Stream
	termSizeFunc draw.TermSizeFunc
	tuning       config.Tuning
	now          func() time.Time
	logger       *log.Logger

	layout       Layout
	prevGameOver bool
}

// NewGame creates a game reading raw terminal bytes from r and drawing to w.
// The input reader goroutine starts immediately.
func NewGame(r io.ByteReader, w io.Writer, opts Options) *Game {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory(0)
	}
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.DefaultTuning()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	g := &Game{
		state:        NewState(opts.Store, opts.Logger, opts.Rand),
		cw:           draw.NewChunkWriter(w),
		stream:       input.StartStream(r),
		termSizeFunc: opts.TermSizeFunc,
		tuning:       opts.Tuning,
		now:          opts.Now,
		logger:       opts.Logger,
	}
	g.canvas = draw.NewScaledCanvas(1, 1, config.CellWidth, config.CellHeight)
	g.updateScreen()
	return g
}

// State returns the game state. Only safe to inspect once Run has returned.
func (g *Game) State() *State {
	return g.state
}

// Run plays until the player quits, the input ends or ctx is done.
// Only terminal write failures are returned as errors.
func (g *Game) Run(ctx context.Context) error {
	draw.HideCursor(g.cw)
	draw.EnableMouse(g.cw)
	draw.ClearScreen(g.cw)
	defer func() {
		draw.DisableMouse(g.cw)
		draw.ShowCursor(g.cw)
		draw.ClearScreen(g.cw)
		_ = g.cw.Flush()
	}()

	g.logger.Info("game started", "best", g.state.BestScore)

	for {
		quit, err := g.play(ctx)
		if err != nil || quit {
			return err
		}

		quit, err = g.waitForRestart(ctx)
		if err != nil || quit {
			return err
		}
		g.state.Restart()
		g.logger.Info("game restarted")
	}
}

// play runs the frame and spawn tickers until the game is over.
// Returns true when the session should end.
func (g *Game) play(ctx context.Context) (bool, error) {
	frame := time.NewTicker(g.tuning.FrameTime())
	defer frame.Stop()
	spawn := time.NewTicker(g.tuning.SpawnInterval())
	defer spawn.Stop()

	if err := g.drawFrame(); err != nil {
		return true, err
	}

	for {
		select {
		case <-ctx.Done():
			return true, nil
		case <-spawn.C:
			g.state.Spawn()
		case <-frame.C:
			quit, err := g.tick()
			if err != nil || quit {
				return true, err
			}
			if g.state.GameOver {
				return false, nil
			}
		}
	}
}

// tick handles one frame: input, resize, simulation, render.
func (g *Game) tick() (bool, error) {
	in := input.ReadInput(g.stream)
	if in.Quit {
		return true, nil
	}
	for i := 0; i < in.Fire; i++ {
		g.state.Fire()
	}

	g.updateScreen()

	if err := g.state.Step(); err != nil {
		return true, fmt.Errorf("step: %w", err)
	}
	return false, g.drawFrame()
}

// waitForRestart blocks on input while the game-over screen is shown.
// Returns true when the session should end instead of restarting.
func (g *Game) waitForRestart(ctx context.Context) (bool, error) {
	for {
		if err := g.stream.Wait(ctx); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return true, nil
			}
			return true, err
		}

		in := input.ReadInput(g.stream)
		switch {
		case in.Quit:
			return true, nil
		case in.Restart:
			return false, nil
		}

		// Any other key repaints, picking up a resized terminal.
		g.updateScreen()
		if err := g.drawFrame(); err != nil {
			return true, err
		}
	}
}

// Layout places the playfield inside the terminal. Offsets are 0-based cells.
type Layout struct {
	TermCols, TermRows     int
	CanvasCols, CanvasRows int
	OffsetCol, OffsetRow   int
	Screen                 object.Screen
}

// Rows kept for the title and status line above the canvas
// and the best score below it.
const (
	hudRowsAbove = 2
	hudRowsBelow = 1
)

// PlayfieldFor sizes the playfield for a terminal of cols x rows cells.
// The viewport is measured in logical pixels (one cell is 8x16); the playfield
// takes half its width (95% on narrow viewports) and 60% of its height,
// limited by the maximum render size, and is centered.
func PlayfieldFor(cols, rows int, tuning config.Tuning) Layout {
	cols = max(cols, 1)
	rows = max(rows, 1)

	viewWidth := float64(cols) * config.CellWidth
	ratio := config.PlayfieldWidthRatio
	if viewWidth <= config.NarrowViewportWidth {
		ratio = config.NarrowPlayfieldWidthRatio
	}

	canvasCols := cells(float64(cols) * ratio)
	canvasRows := cells(float64(rows) * config.PlayfieldHeightRatio)
	canvasCols = max(min(canvasCols, tuning.MaxTermWidth), 1)
	canvasRows = max(min(canvasRows, tuning.MaxTermHeight, rows-hudRowsAbove-hudRowsBelow), 1)

	offsetRow := max((rows-canvasRows)/2, hudRowsAbove)

	return Layout{
		TermCols:   cols,
		TermRows:   rows,
		CanvasCols: canvasCols,
		CanvasRows: canvasRows,
		OffsetCol:  (cols - canvasCols) / 2,
		OffsetRow:  offsetRow,
		Screen: object.Screen{
			Width:  float64(canvasCols) * config.CellWidth,
			Height: float64(canvasRows) * config.CellHeight,
		},
	}
}

// cells truncates a fractional cell count, tolerating float error just below
// a whole number.
func cells(v float64) int {
	return int(math.Floor(v + 1e-9))
}

// updateScreen re-reads the terminal size and resizes the playfield when it changed.
func (g *Game) updateScreen() {
	cols, rows, err := g.termSizeFunc()
	if err != nil {
		return
	}
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == g.layout.TermCols && rows == g.layout.TermRows {
		return
	}

	g.layout = PlayfieldFor(cols, rows, g.tuning)
	g.state.Screen = g.layout.Screen
	g.canvas.Resize(g.layout.CanvasCols, g.layout.CanvasRows, g.layout.Screen.Width, g.layout.Screen.Height)
	g.canvas.SetOffset(g.layout.OffsetCol, g.layout.OffsetRow)
	g.canvas.ForceRedraw()
	g.cw.WriteString(clearScreen)
	g.logger.Debug("playfield resized", "cols", cols, "rows", rows,
		"width", g.layout.Screen.Width, "height", g.layout.Screen.Height)
}

// drawFrame paints the sky, arrows and balloons, then the text around them.
func (g *Game) drawFrame() error {
	// On game-over transitions, clear so the overlay text doesn't persist.
	if g.state.GameOver != g.prevGameOver {
		g.cw.WriteString(clearScreen)
		g.canvas.ForceRedraw()
		g.prevGameOver = g.state.GameOver
	}

	ctx := object.DrawContext{
		Canvas: g.canvas,
		Screen: g.state.Screen,
		Now:    g.now(),
	}

	if err := (object.Sky{}).Draw(ctx); err != nil {
		return err
	}
	for _, p := range g.state.Projectiles {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	for _, b := range g.state.Balloons {
		if err := b.Draw(ctx); err != nil {
			return err
		}
	}

	g.canvas.Render(g.cw)
	g.drawUI()

	if err := g.cw.Flush(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
