package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/object"
	"github.com/tomz197/balloons/internal/store"
)

func TestPlayfieldFor(t *testing.T) {
	tuning := config.DefaultTuning()

	tests := []struct {
		name       string
		cols, rows int
		want       Layout
	}{
		{
			name: "wide terminal uses half the width",
			cols: 200, rows: 50,
			want: Layout{
				TermCols: 200, TermRows: 50,
				CanvasCols: 100, CanvasRows: 30,
				OffsetCol: 50, OffsetRow: 10,
				Screen: object.Screen{Width: 800, Height: 480},
			},
		},
		{
			name: "narrow terminal uses almost all of it",
			cols: 80, rows: 24,
			want: Layout{
				TermCols: 80, TermRows: 24,
				CanvasCols: 76, CanvasRows: 14,
				OffsetCol: 2, OffsetRow: 5,
				Screen: object.Screen{Width: 608, Height: 224},
			},
		},
		{
			name: "768 px is still narrow",
			cols: 96, rows: 40,
			want: Layout{
				TermCols: 96, TermRows: 40,
				CanvasCols: 91, CanvasRows: 24,
				OffsetCol: 2, OffsetRow: 8,
				Screen: object.Screen{Width: 728, Height: 384},
			},
		},
		{
			name: "tiny terminal keeps room for text",
			cols: 10, rows: 4,
			want: Layout{
				TermCols: 10, TermRows: 4,
				CanvasCols: 9, CanvasRows: 1,
				OffsetCol: 0, OffsetRow: 2,
				Screen: object.Screen{Width: 72, Height: 16},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayfieldFor(tt.cols, tt.rows, tuning))
		})
	}
}

func TestPlayfieldForMaxRenderSize(t *testing.T) {
	tuning := config.DefaultTuning()
	tuning.MaxTermWidth = 100
	tuning.MaxTermHeight = 20

	l := PlayfieldFor(1000, 300, tuning)
	assert.Equal(t, 100, l.CanvasCols)
	assert.Equal(t, 20, l.CanvasRows)
	assert.Equal(t, 450, l.OffsetCol)
	assert.Equal(t, object.Screen{Width: 800, Height: 320}, l.Screen)
}

// syncBuffer is a bytes.Buffer safe to read while the game writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testGame struct {
	game *Game
	out  *syncBuffer
	in   *io.PipeWriter
	done chan error
}

func startGame(t *testing.T, ctx context.Context, st store.Store, setup func(*State)) *testGame {
	t.Helper()

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	tuning := config.DefaultTuning()
	tuning.SpawnIntervalMs = 60_000

	out := &syncBuffer{}
	g := NewGame(bufio.NewReader(pr), out, Options{
		TermSizeFunc: func() (int, int, error) { return 120, 40, nil },
		Store:        st,
		Logger:       log.New(io.Discard),
		Tuning:       tuning,
		Rand:         rand.New(rand.NewSource(1)),
		Now:          func() time.Time { return time.UnixMilli(0) },
	})
	if setup != nil {
		setup(g.State())
	}

	tg := &testGame{game: g, out: out, in: pw, done: make(chan error, 1)}
	go func() { tg.done <- g.Run(ctx) }()
	return tg
}

func (tg *testGame) send(t *testing.T, s string) {
	t.Helper()
	_, err := tg.in.Write([]byte(s))
	require.NoError(t, err)
}

func (tg *testGame) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-tg.done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("game did not stop")
		return nil
	}
}

func TestRunQuits(t *testing.T) {
	tg := startGame(t, context.Background(), nil, nil)

	require.Eventually(t, func() bool {
		return strings.Contains(tg.out.String(), "Balloon Shooter")
	}, time.Second, 5*time.Millisecond)

	tg.send(t, "q")
	require.NoError(t, tg.wait(t))

	out := tg.out.String()
	assert.Contains(t, out, "Score: 0   Level: 1   Lives: 10")
	assert.Contains(t, out, "Best Score: 0")
	assert.Contains(t, out, "\033[?1000h", "mouse reporting enabled")
	assert.Contains(t, out, "\033[?1000l", "mouse reporting restored")
	assert.Equal(t, object.Screen{Width: 480, Height: 384}, tg.game.State().Screen)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tg := startGame(t, ctx, nil, nil)

	cancel()
	require.NoError(t, tg.wait(t))
}

func TestRunStopsWhenInputEnds(t *testing.T) {
	tg := startGame(t, context.Background(), nil, nil)

	require.NoError(t, tg.in.Close())
	require.NoError(t, tg.wait(t))
}

func TestRunFiresOnClick(t *testing.T) {
	tg := startGame(t, context.Background(), nil, nil)
	frames := func() int { return strings.Count(tg.out.String(), "Balloon Shooter") }

	before := frames()
	tg.send(t, "\033[<0;10;5M\033[<0;10;5m ")
	require.Eventually(t, func() bool {
		return frames() > before+2
	}, time.Second, 5*time.Millisecond)

	tg.send(t, "q")
	require.NoError(t, tg.wait(t))
	assert.Len(t, tg.game.State().Projectiles, 2)
}

func TestRunGameOverAndRestart(t *testing.T) {
	mem := store.NewMemory(0)
	tg := startGame(t, context.Background(), mem, func(s *State) {
		s.Score = 4
		s.Lives = 1
		s.Balloons = append(s.Balloons, &object.Balloon{X: 100, Y: -24, Radius: 25, Speed: 2, Sway: 1, SwayDir: 1})
	})

	require.Eventually(t, func() bool {
		return strings.Contains(tg.out.String(), "GAME OVER")
	}, time.Second, 5*time.Millisecond)

	// Fire is ignored while the game is over.
	tg.send(t, " r")
	require.Eventually(t, func() bool {
		out := tg.out.String()
		return strings.Contains(out[strings.Index(out, "GAME OVER"):], "Lives: 10")
	}, time.Second, 5*time.Millisecond)

	tg.send(t, "q")
	require.NoError(t, tg.wait(t))

	s := tg.game.State()
	assert.False(t, s.GameOver)
	assert.Equal(t, 10, s.Lives)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 4, s.BestScore)
	best, err := mem.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, best)
}

func TestRunGameOverIdlesAfterEscape(t *testing.T) {
	tg := startGame(t, context.Background(), nil, func(s *State) {
		s.Lives = 1
		s.Balloons = append(s.Balloons, &object.Balloon{X: 100, Y: -24, Radius: 25, Speed: 2, Sway: 1, SwayDir: 1})
	})

	require.Eventually(t, func() bool {
		return strings.Contains(tg.out.String(), "GAME OVER")
	}, time.Second, 5*time.Millisecond)

	// A lone ESC repaints at most once, then the loop waits for more input.
	tg.send(t, "\x1b")
	time.Sleep(50 * time.Millisecond)
	settled := len(tg.out.String())
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, settled, len(tg.out.String()))

	tg.send(t, "q")
	require.NoError(t, tg.wait(t))
	assert.True(t, tg.game.State().GameOver)
}
