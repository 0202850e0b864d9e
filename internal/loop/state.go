package loop

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/object"
	"github.com/tomz197/balloons/internal/store"
)

// Session holds the counters of one play-through.
type Session struct {
	Score     int
	BestScore int // Persisted, survives restarts
	Level     int
	Lives     int
	Popped    int // Balloons popped this session
	GameOver  bool
}

// NewSession returns the counters of a fresh game.
func NewSession(best int) Session {
	return Session{
		BestScore: best,
		Level:     config.InitialLevel,
		Lives:     config.InitialLives,
	}
}

// State is everything one game owns: counters, live entities and the playfield.
// It is not safe for concurrent use; the loop goroutine owns it.
type State struct {
	Session
	Screen      object.Screen
	Balloons    []*object.Balloon
	Projectiles []*object.Projectile

	store  store.Store
	logger *log.Logger
	rng    *rand.Rand
}

// NewState creates a game and reads the best score from st.
// A failed read starts from 0.
func NewState(st store.Store, logger *log.Logger, rng *rand.Rand) *State {
	best, err := st.Load()
	if err != nil {
		logger.Warn("best score unreadable, starting from 0", "err", err)
		best = 0
	}
	return &State{
		Session: NewSession(best),
		store:   st,
		logger:  logger,
		rng:     rng,
	}
}

// Restart clears all entities and counters. The best score is kept.
func (s *State) Restart() {
	s.Session = NewSession(s.BestScore)
	s.Balloons = s.Balloons[:0]
	s.Projectiles = s.Projectiles[:0]
}

// Fire launches an arrow. Returns false when the arrow cap is reached or the
// game is over.
func (s *State) Fire() bool {
	if s.GameOver {
		return false
	}
	p, ok := object.TryFire(len(s.Projectiles), s.Screen)
	if !ok {
		return false
	}
	s.Projectiles = append(s.Projectiles, p)
	return true
}

// Spawn adds a balloon unless the level's cap is reached or the game is over.
func (s *State) Spawn() bool {
	if s.GameOver {
		return false
	}
	b, ok := object.TrySpawn(s.rng, s.Level, len(s.Balloons), s.Screen)
	if !ok {
		return false
	}
	s.Balloons = append(s.Balloons, b)
	return true
}

// UpdateContext creates an UpdateContext from the current state.
func (s *State) UpdateContext() object.UpdateContext {
	return object.UpdateContext{Screen: s.Screen}
}

// saveBest persists the best score. Failures are logged and otherwise ignored.
func (s *State) saveBest() {
	if err := s.store.Save(s.BestScore); err != nil {
		s.logger.Warn("failed to save best score", "best", s.BestScore, "err", err)
	}
}
