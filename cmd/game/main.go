package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/tomz197/balloons/internal/config"
	"github.com/tomz197/balloons/internal/loop"
	gameconfig "github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/store"
	"golang.org/x/term"
)

const defaultScoreFile = "balloons.ini"

var (
	errColor  = color.New(color.FgRed, color.Bold)
	infoColor = color.New(color.FgCyan)
)

func main() {
	if err := run(); err != nil {
		errColor.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	tuning, err := gameconfig.LoadTuning(config.GetEnv("BALLOONS_TUNING_FILE", ""))
	if err != nil {
		logger.Warn("using default tuning", "err", err)
	}

	scores := store.OpenFile(config.GetEnv("BALLOONS_SCORE_FILE", defaultScoreFile))
	player := config.GetEnv("BALLOONS_PLAYER", os.Getenv("USER"))
	logger.Info("score file", "path", scores.Path(), "player", player)

	seed := int64(config.GetEnvInt("BALLOONS_SEED", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := loop.NewGame(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Store:  scores.Player(player),
		Logger: logger,
		Tuning: tuning,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	if err := game.Run(ctx); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	_ = term.Restore(fd, oldState)
	s := game.State()
	infoColor.Printf("Score: %d  Level: %d  Best Score: %d\n", s.Score, s.Level, s.BestScore)
	return nil
}

// newLogger logs to BALLOONS_LOG_FILE when set; the terminal belongs to the game.
func newLogger() (*log.Logger, func(), error) {
	path := config.GetEnv("BALLOONS_LOG_FILE", "")
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "balloons",
	})
	if lvl, err := log.ParseLevel(config.GetEnv("BALLOONS_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, func() { _ = f.Close() }, nil
}
