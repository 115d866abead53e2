package usecase

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
)

// fakeContentQuery records the tiers the selector asked for and serves
// canned pools.
type fakeContentQuery struct {
	primary []entity.ContentCard
	sample  []entity.ContentCard

	gotPrimaryTier  entity.Difficulty
	gotPrimaryTopic string
	gotSampleTiers  []entity.Difficulty
	gotSampleSize   int
}

func (f *fakeContentQuery) ByDifficulty(_ context.Context, difficulty entity.Difficulty, topic string) ([]entity.ContentCard, error) {
	f.gotPrimaryTier = difficulty
	f.gotPrimaryTopic = topic
	return f.primary, nil
}

func (f *fakeContentQuery) RandomSample(_ context.Context, difficulties []entity.Difficulty, n int) ([]entity.ContentCard, error) {
	f.gotSampleTiers = difficulties
	f.gotSampleSize = n
	return f.sample, nil
}

func card(id string, difficulty entity.Difficulty) entity.ContentCard {
	return entity.ContentCard{ContentID: id, Category: "Pharmacology", Difficulty: difficulty}
}

func snapshotWith(overall, topicMastery float64) *entity.PatternSnapshot {
	return &entity.PatternSnapshot{
		Accuracy: entity.AccuracyStats{Overall: overall},
		TopicMastery: entity.TopicMasteryStats{
			MasteryLevels: map[string]entity.MasteryRecord{
				"Pharmacology": {OverallAccuracy: topicMastery, TotalAttempts: 10},
			},
		},
	}
}

func TestPerformanceScore(t *testing.T) {
	assert.Equal(t, 0.0, PerformanceScore(nil, "Pharmacology"))

	snapshot := snapshotWith(80, 90)
	assert.InDelta(t, 83.0, PerformanceScore(snapshot, "Pharmacology"), epsilon)

	// unknown or absent topic contributes nothing
	assert.InDelta(t, 56.0, PerformanceScore(snapshot, "Pediatrics"), epsilon)
	assert.InDelta(t, 56.0, PerformanceScore(snapshot, ""), epsilon)
}

func TestSelectAdvancedTier(t *testing.T) {
	query := &fakeContentQuery{
		primary: []entity.ContentCard{card("a1", entity.DifficultyAdvanced)},
		sample:  []entity.ContentCard{card("i1", entity.DifficultyIntermediate)},
	}

	got, err := NewContentSelector().Select(context.Background(), snapshotWith(90, 90), "Pharmacology", query)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, entity.DifficultyAdvanced, query.gotPrimaryTier)
	assert.Equal(t, "Pharmacology", query.gotPrimaryTopic)
	assert.Equal(t, []entity.Difficulty{entity.DifficultyIntermediate}, query.gotSampleTiers)
	assert.Equal(t, 2, query.gotSampleSize)
}

func TestSelectIntermediateTier(t *testing.T) {
	query := &fakeContentQuery{
		primary: []entity.ContentCard{card("i1", entity.DifficultyIntermediate)},
	}

	_, err := NewContentSelector().Select(context.Background(), snapshotWith(70, 50), "Pharmacology", query)
	require.NoError(t, err)

	assert.Equal(t, entity.DifficultyIntermediate, query.gotPrimaryTier)
	assert.Equal(t, []entity.Difficulty{entity.DifficultyBeginner, entity.DifficultyAdvanced}, query.gotSampleTiers)
	assert.Equal(t, 3, query.gotSampleSize)
}

func TestSelectBeginnerTierForNewUser(t *testing.T) {
	query := &fakeContentQuery{
		primary: []entity.ContentCard{card("b1", entity.DifficultyBeginner)},
	}

	got, err := NewContentSelector().Select(context.Background(), nil, "", query)
	require.NoError(t, err)

	assert.Equal(t, entity.DifficultyBeginner, query.gotPrimaryTier)
	assert.Equal(t, 1, query.gotSampleSize)
	assert.Equal(t, "b1", got.ContentID)
}

func TestSelectNoContent(t *testing.T) {
	query := &fakeContentQuery{}

	got, err := NewContentSelector().Select(context.Background(), nil, "Obscure Topic", query)
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Nil(t, got)
}

func TestSelectDeduplicatesPool(t *testing.T) {
	// the same item in both pools must only be counted once
	query := &fakeContentQuery{
		primary: []entity.ContentCard{card("b1", entity.DifficultyBeginner)},
		sample:  []entity.ContentCard{card("b1", entity.DifficultyBeginner)},
	}

	selector := NewContentSelector()
	var poolSize int
	selector.Pick = func(_ *rand.Rand, pool []entity.ContentCard) entity.ContentCard {
		poolSize = len(pool)
		return pool[0]
	}

	got, err := selector.Select(context.Background(), nil, "", query)
	require.NoError(t, err)
	assert.Equal(t, 1, poolSize)
	assert.Equal(t, "b1", got.ContentID)
}
