package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
)

// ContentQuery is the read-only pool capability the selector needs
// from the content repository.
type ContentQuery interface {
	ByDifficulty(ctx context.Context, difficulty entity.Difficulty, topic string) ([]entity.ContentCard, error)
	RandomSample(ctx context.Context, difficulties []entity.Difficulty, n int) ([]entity.ContentCard, error)
}

// ContentSelector converts a pattern snapshot plus an optional topic
// into a weighted difficulty-tier pool and surfaces one item from it.
type ContentSelector struct {
	rnd *rand.Rand

	// Pick collapses the built pool to the item actually served. It is
	// a separate step so callers can later surface the whole pool
	// instead of a single draw.
	Pick func(rnd *rand.Rand, pool []entity.ContentCard) entity.ContentCard
}

func NewContentSelector() *ContentSelector {
	return &ContentSelector{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		Pick: func(rnd *rand.Rand, pool []entity.ContentCard) entity.ContentCard {
			return pool[rnd.Intn(len(pool))]
		},
	}
}

// PerformanceScore blends overall accuracy with topic-specific mastery
// (70/30). A missing snapshot scores zero, which routes new users to
// the beginner tier.
func PerformanceScore(snapshot *entity.PatternSnapshot, topic string) float64 {
	if snapshot == nil {
		return 0
	}
	topicMastery := 0.0
	if topic != "" {
		if record, ok := snapshot.TopicMastery.MasteryLevels[topic]; ok {
			topicMastery = record.OverallAccuracy
		}
	}
	return snapshot.Accuracy.Overall*0.7 + topicMastery*0.3
}

// Select builds the tiered pool for the score and returns one item
// from it. ErrNoContent is returned when the combined pool is empty,
// e.g. when an explicit topic filters everything out.
func (s *ContentSelector) Select(ctx context.Context, snapshot *entity.PatternSnapshot, topic string, query ContentQuery) (*entity.ContentCard, error) {
	score := PerformanceScore(snapshot, topic)

	var (
		primaryTier  entity.Difficulty
		supplemental []entity.Difficulty
		sampleSize   int
	)
	switch {
	case score > 80:
		primaryTier = entity.DifficultyAdvanced
		supplemental = []entity.Difficulty{entity.DifficultyIntermediate}
		sampleSize = 2
	case score > 50:
		primaryTier = entity.DifficultyIntermediate
		supplemental = []entity.Difficulty{entity.DifficultyBeginner, entity.DifficultyAdvanced}
		sampleSize = 3
	default:
		primaryTier = entity.DifficultyBeginner
		supplemental = []entity.Difficulty{entity.DifficultyIntermediate}
		sampleSize = 1
	}

	primary, err := query.ByDifficulty(ctx, primaryTier, topic)
	if err != nil {
		return nil, err
	}
	extra, err := query.RandomSample(ctx, supplemental, sampleSize)
	if err != nil {
		return nil, err
	}

	pool := make([]entity.ContentCard, 0, len(primary)+len(extra))
	seen := make(map[string]bool)
	for _, card := range primary {
		if !seen[card.ContentID] {
			pool = append(pool, card)
			seen[card.ContentID] = true
		}
	}
	for _, card := range extra {
		if !seen[card.ContentID] {
			pool = append(pool, card)
			seen[card.ContentID] = true
		}
	}

	if len(pool) == 0 {
		return nil, ErrNoContent
	}

	s.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	card := s.Pick(s.rnd, pool)
	return &card, nil
}
