// ABOUTME: Rest timer for the active workout session.
// ABOUTME: Stores an absolute deadline and derives remaining time from the clock.
package session

import (
	"context"
	"time"
)

// StartRestTimer sets the rest deadline d from now. A non-positive d uses the
// current default. The duration becomes the new default.
func (s *Session) StartRestTimer(d time.Duration) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startRestTimer(d)
}

func (s *Session) startRestTimer(d time.Duration) time.Time {
	if d <= 0 {
		d = s.restDuration
	}
	s.restDuration = d
	s.restDeadline = s.now().Add(d)
	return s.restDeadline
}

// ClearRestTimer stops any running rest timer.
func (s *Session) ClearRestTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restDeadline = time.Time{}
}

// RestoreRestTimer reinstates a deadline saved by an earlier process. A
// deadline already in the past clears the timer.
func (s *Session) RestoreRestTimer(deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if deadline.After(s.now()) {
		s.restDeadline = deadline
		return
	}
	s.restDeadline = time.Time{}
}

// RestDeadline returns the deadline of a running timer.
func (s *Session) RestDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restDeadline.IsZero() || !s.restDeadline.After(s.now()) {
		return time.Time{}, false
	}
	return s.restDeadline, true
}

// RestRemaining is the time left on the rest timer, or zero.
func (s *Session) RestRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restRemaining()
}

func (s *Session) restRemaining() time.Duration {
	if s.restDeadline.IsZero() {
		return 0
	}
	return max(s.restDeadline.Sub(s.now()), 0)
}

// SetRestDuration changes the default rest period.
func (s *Session) SetRestDuration(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidDuration
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restDuration = d
	return nil
}

// RestDuration is the default rest period.
func (s *Session) RestDuration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restDuration
}

// WatchRest emits the remaining rest time immediately and then on every tick.
// The channel closes after emitting zero or when ctx is done.
func (s *Session) WatchRest(ctx context.Context, tick time.Duration) <-chan time.Duration {
	out := make(chan time.Duration, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for {
			remaining := s.RestRemaining()
			select {
			case out <- remaining:
			case <-ctx.Done():
				return
			}
			if remaining <= 0 {
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
