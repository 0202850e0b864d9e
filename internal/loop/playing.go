package loop

// Step advances the simulation by one frame: arrows fly, balloons rise and sway,
// escaped balloons cost a life, then hits are resolved. Collisions are skipped in
// the frame that ends the game, so the final score is the one at game over.
func (s *State) Step() error {
	if s.GameOver {
		return nil
	}

	if err := s.updateProjectiles(); err != nil {
		return err
	}
	if err := s.updateBalloons(); err != nil {
		return err
	}
	if s.GameOver {
		return nil
	}

	s.resolveCollisions()
	return nil
}

// updateProjectiles moves every arrow and drops those past the right edge.
func (s *State) updateProjectiles() error {
	ctx := s.UpdateContext()

	kept := s.Projectiles[:0] // reuse backing array
	for _, p := range s.Projectiles {
		remove, err := p.Update(ctx)
		if err != nil {
			return err
		}
		if !remove {
			kept = append(kept, p)
		}
	}
	clear(s.Projectiles[len(kept):])
	s.Projectiles = kept
	return nil
}

// updateBalloons moves every balloon. Each one that escapes through the top
// is removed and costs a life.
func (s *State) updateBalloons() error {
	ctx := s.UpdateContext()

	kept := s.Balloons[:0]
	for _, b := range s.Balloons {
		escaped, err := b.Update(ctx)
		if err != nil {
			return err
		}
		if escaped {
			s.loseLife()
			continue
		}
		kept = append(kept, b)
	}
	clear(s.Balloons[len(kept):])
	s.Balloons = kept
	return nil
}

// loseLife takes one life. At zero the game ends and the best score is saved
// if this session beat it.
func (s *State) loseLife() {
	s.Lives--
	if s.Lives > 0 {
		return
	}
	s.Lives = 0
	if s.GameOver {
		return
	}

	if s.Score > s.BestScore {
		s.BestScore = s.Score
		s.saveBest()
	}
	s.GameOver = true
	s.logger.Info("game over", "score", s.Score, "best", s.BestScore, "level", s.Level)
}
