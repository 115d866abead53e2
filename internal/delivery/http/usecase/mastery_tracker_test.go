package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
	internalEntity "github.com/nclexly/nclexly-be/internal/entity"
)

func TestApplyUpdatesAggregate(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	tracker := NewMasteryTracker()
	tracker.Now = func() time.Time { return now }

	agg := &internalEntity.StudyAggregate{UserID: "u1", Category: "Pharmacology"}

	tracker.Apply(agg, true, 40)
	assert.Equal(t, 1, agg.TotalQuestions)
	assert.Equal(t, 1, agg.CorrectAnswers)
	assert.InDelta(t, 100.0, agg.AccuracyRate, epsilon)
	assert.InDelta(t, 40.0, agg.AvgTimePerQuestion, epsilon)
	assert.Equal(t, now, agg.LastActivityAt)

	tracker.Apply(agg, false, 20)
	assert.Equal(t, 2, agg.TotalQuestions)
	assert.Equal(t, 1, agg.CorrectAnswers)
	assert.InDelta(t, 50.0, agg.AccuracyRate, epsilon)
	assert.InDelta(t, 60.0, agg.TotalTimeSeconds, epsilon)
	assert.InDelta(t, 30.0, agg.AvgTimePerQuestion, epsilon)
}

func TestRecommendedDifficulty(t *testing.T) {
	tests := []struct {
		name string
		agg  *internalEntity.StudyAggregate
		want entity.Difficulty
	}{
		{name: "nil aggregate", agg: nil, want: entity.DifficultyBeginner},
		{name: "no data", agg: &internalEntity.StudyAggregate{}, want: entity.DifficultyBeginner},
		{
			name: "high accuracy",
			agg:  &internalEntity.StudyAggregate{TotalQuestions: 10, AccuracyRate: 80},
			want: entity.DifficultyAdvanced,
		},
		{
			name: "just below advanced",
			agg:  &internalEntity.StudyAggregate{TotalQuestions: 10, AccuracyRate: 79.9},
			want: entity.DifficultyIntermediate,
		},
		{
			name: "mid accuracy",
			agg:  &internalEntity.StudyAggregate{TotalQuestions: 10, AccuracyRate: 60},
			want: entity.DifficultyIntermediate,
		},
		{
			name: "low accuracy",
			agg:  &internalEntity.StudyAggregate{TotalQuestions: 10, AccuracyRate: 59.9},
			want: entity.DifficultyBeginner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendedDifficulty(tt.agg))
		})
	}
}
