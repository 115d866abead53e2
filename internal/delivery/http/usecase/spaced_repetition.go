package usecase

import (
	"math"
	"time"

	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
)

const (
	initialEasiness = 2.5
	minEasiness     = 1.3

	// correctQualityThreshold splits review qualities into correct
	// (>=3) and incorrect.
	correctQualityThreshold = 3
)

// SpacedRepetition implements the SM-2 recurrence over flashcard
// schedule state. Review is a deterministic state transition with no
// I/O; the caller persists the returned state.
type SpacedRepetition struct {
	// Now is injectable for tests.
	Now func() time.Time
}

func NewSpacedRepetition() *SpacedRepetition {
	return &SpacedRepetition{Now: time.Now}
}

// NewScheduleState is the state of a freshly generated flashcard: due
// immediately, one-day interval, default easiness.
func (s *SpacedRepetition) NewScheduleState() entity.ScheduleState {
	return entity.ScheduleState{
		IntervalDays:       1,
		EasinessFactor:     initialEasiness,
		ConsecutiveCorrect: 0,
		NextReviewAt:       s.Now(),
	}
}

// Review applies one quality rating to the state and returns the next
// state. Quality outside 0..5 is rejected with ErrInvalidQuality.
func (s *SpacedRepetition) Review(state entity.ScheduleState, quality int) (entity.ScheduleState, error) {
	if quality < 0 || quality > 5 {
		return entity.ScheduleState{}, ErrInvalidQuality
	}

	next := state

	if quality >= correctQualityThreshold {
		switch state.ConsecutiveCorrect {
		case 0:
			next.IntervalDays = 1
		case 1:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(state.IntervalDays) * state.EasinessFactor))
		}
		next.ConsecutiveCorrect = state.ConsecutiveCorrect + 1
	} else {
		next.IntervalDays = 1
		next.ConsecutiveCorrect = 0
	}

	next.EasinessFactor = state.EasinessFactor + (0.1 - float64(5-quality)*0.08)
	if next.EasinessFactor < minEasiness {
		next.EasinessFactor = minEasiness
	}

	if next.IntervalDays < 1 {
		next.IntervalDays = 1
	}
	next.NextReviewAt = s.Now().AddDate(0, 0, next.IntervalDays)

	return next, nil
}
