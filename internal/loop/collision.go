package loop

import (
	"github.com/tomz197/balloons/internal/loop/config"
	"github.com/tomz197/balloons/internal/object"
)

// resolveCollisions pops every balloon touched by an arrow tip. Arrows are not
// consumed, so one arrow can pop several balloons. A balloon hit by several
// arrows in the same frame still counts once.
func (s *State) resolveCollisions() {
	kept := s.Balloons[:0]
	for _, b := range s.Balloons {
		if hitByAny(b, s.Projectiles) {
			s.pop()
			continue
		}
		kept = append(kept, b)
	}
	clear(s.Balloons[len(kept):])
	s.Balloons = kept
}

// hitByAny reports whether any arrow tip lies strictly inside the balloon.
func hitByAny(b *object.Balloon, projectiles []*object.Projectile) bool {
	for _, p := range projectiles {
		if b.HitBy(p.Tip()) {
			return true
		}
	}
	return false
}

// pop scores one balloon and raises the level on every fifth pop.
func (s *State) pop() {
	s.Score++
	s.Popped++

	if s.Score > s.BestScore {
		s.BestScore = s.Score
		s.saveBest()
	}

	if s.Popped%config.PopsPerLevel == 0 {
		s.Level++
		s.logger.Debug("level up", "level", s.Level, "popped", s.Popped)
	}
}
