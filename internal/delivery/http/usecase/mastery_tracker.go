package usecase

import (
	"time"

	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
	internalEntity "github.com/nclexly/nclexly-be/internal/entity"
)

// MasteryTracker maintains the per user x category running aggregate
// that backs cheap difficulty recommendation, independent of the full
// window analysis. Aggregates only ever grow.
type MasteryTracker struct {
	Now func() time.Time
}

func NewMasteryTracker() *MasteryTracker {
	return &MasteryTracker{Now: time.Now}
}

// Apply folds one response into the aggregate and recomputes the
// derived fields.
func (t *MasteryTracker) Apply(agg *internalEntity.StudyAggregate, isCorrect bool, timeTakenSeconds float64) {
	agg.TotalQuestions++
	if isCorrect {
		agg.CorrectAnswers++
	}
	agg.TotalTimeSeconds += timeTakenSeconds
	agg.AvgTimePerQuestion = agg.TotalTimeSeconds / float64(agg.TotalQuestions)
	agg.AccuracyRate = 100 * float64(agg.CorrectAnswers) / float64(agg.TotalQuestions)
	agg.LastActivityAt = t.Now()
}

// RecommendedDifficulty maps an aggregate's accuracy to a content tier.
// No data means start at the bottom.
func RecommendedDifficulty(agg *internalEntity.StudyAggregate) entity.Difficulty {
	if agg == nil || agg.TotalQuestions == 0 {
		return entity.DifficultyBeginner
	}
	switch {
	case agg.AccuracyRate >= 80:
		return entity.DifficultyAdvanced
	case agg.AccuracyRate >= 60:
		return entity.DifficultyIntermediate
	default:
		return entity.DifficultyBeginner
	}
}
