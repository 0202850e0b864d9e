package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/balloons/internal/config"
	"github.com/tomz197/balloons/internal/draw"
	"github.com/tomz197/balloons/internal/loop"
	gameconfig "github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/store"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultScoreFile   = "/app/data/balloons.ini"
	shutdownTimeout    = 5 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "balloons-ssh",
	})

	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}
	if lvl, err := log.ParseLevel(config.GetEnv("BALLOONS_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scoreFile := config.GetEnv("BALLOONS_SCORE_FILE", defaultScoreFile)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	tuning, err := gameconfig.LoadTuning(config.GetEnv("BALLOONS_TUNING_FILE", ""))
	if err != nil {
		logger.Warn("using default tuning", "err", err)
	}

	h := &handler{
		scores: store.OpenFile(scoreFile),
		tuning: tuning,
		logger: logger,
	}
	logger.Info("Score file", "path", h.scores.Path())

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
	logger.Info("Server stopped")
}

// handler runs one independent game per SSH session. All sessions share the
// best-score file, one key per SSH user.
type handler struct {
	scores *store.File
	tuning gameconfig.Tuning
	logger *log.Logger
}

// middleware handles SSH sessions and runs the game.
func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			wish.Fatalln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		game := loop.NewGame(bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Store:        h.scores.Player(sess.User()),
			Logger:       logger,
			Tuning:       h.tuning,
		})
		if err := game.Run(sess.Context()); err != nil {
			logger.Error("Game error", "err", err)
		}

		st := game.State()
		logger.Info("Session ended", "score", st.Score, "level", st.Level, "best", st.BestScore)
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
