package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
)

const (
	// analysisWindowSize caps how many records a single analysis reads.
	analysisWindowSize = 100

	// trendBatchSize is the chunk length for the accuracy trend.
	trendBatchSize = 5

	// recentWindowSize bounds the recent-performance window per category.
	recentWindowSize = 5

	// minCategoryAttempts is the attempt floor below which a category is
	// excluded from mastery analysis.
	minCategoryAttempts = 5

	// sessionGapSeconds is the idle gap that closes a study session.
	sessionGapSeconds = 1800
)

var visualKeywords = []string{"diagram", "chart", "graph", "image", "picture", "visual"}

var interactiveKeywords = []string{"simulation", "practice", "exercise", "interactive", "hands-on"}

var styleRecommendations = map[entity.LearningStyle][]string{
	entity.StyleVisual: {
		"Study with diagrams, charts and concept illustrations",
		"Create mind maps to connect related topics",
		"Watch video walkthroughs of procedures and scenarios",
	},
	entity.StyleVerbal: {
		"Write out explanations of difficult concepts in your own words",
		"Use mnemonics to memorize lists and classifications",
		"Read answer rationales aloud to reinforce them",
	},
	entity.StyleInteractive: {
		"Prioritize practice exercises over passive reading",
		"Work through clinical simulations when available",
		"Discuss difficult topics in a study group",
	},
}

// PatternAnalyzer derives a PatternSnapshot from a bounded window of
// response history. It holds no state; Analyze is a pure function of
// its input, so two calls over the same slice produce identical
// snapshots.
type PatternAnalyzer struct{}

func NewPatternAnalyzer() *PatternAnalyzer {
	return &PatternAnalyzer{}
}

// Analyze expects records ordered most-recent-first, capped by the
// caller at analysisWindowSize. Empty input yields a fully populated
// snapshot with neutral sections.
func (a *PatternAnalyzer) Analyze(records []entity.ResponseRecord) entity.PatternSnapshot {
	if len(records) > analysisWindowSize {
		records = records[:analysisWindowSize]
	}

	return entity.PatternSnapshot{
		Accuracy:      a.analyzeAccuracy(records),
		StudyTime:     a.analyzeStudyTime(records),
		TopicMastery:  a.analyzeTopicMastery(records),
		LearningStyle: a.classifyLearningStyle(records),
	}
}

func (a *PatternAnalyzer) analyzeAccuracy(records []entity.ResponseRecord) entity.AccuracyStats {
	stats := entity.AccuracyStats{
		ByCategory: make(map[string]float64),
		Trend:      []float64{},
	}
	if len(records) == 0 {
		return stats
	}

	correct := 0
	catCorrect := make(map[string]int)
	catTotal := make(map[string]int)
	for _, r := range records {
		if r.IsCorrect {
			correct++
		}
		if r.Category != "" {
			catTotal[r.Category]++
			if r.IsCorrect {
				catCorrect[r.Category]++
			}
		}
	}

	stats.Overall = 100 * float64(correct) / float64(len(records))
	for cat, total := range catTotal {
		stats.ByCategory[cat] = 100 * float64(catCorrect[cat]) / float64(total)
	}

	// Batches walk the slice in the order it was supplied, so with a
	// most-recent-first input the first trend entry covers the newest
	// five responses. Callers rendering a chronological chart must
	// reverse it themselves.
	for i := 0; i < len(records); i += trendBatchSize {
		end := i + trendBatchSize
		if end > len(records) {
			end = len(records)
		}
		batchCorrect := 0
		for _, r := range records[i:end] {
			if r.IsCorrect {
				batchCorrect++
			}
		}
		stats.Trend = append(stats.Trend, 100*float64(batchCorrect)/float64(end-i))
	}

	return stats
}

func (a *PatternAnalyzer) analyzeStudyTime(records []entity.ResponseRecord) entity.StudyTimeStats {
	stats := entity.StudyTimeStats{
		ByDifficulty:   make(map[string]float64),
		ByTimeOfDay:    map[string]float64{"morning": 0, "afternoon": 0, "evening": 0, "night": 0},
		SessionLengths: []float64{},
	}
	if len(records) == 0 {
		return stats
	}

	diffTotals := make(map[string]float64)
	diffCounts := make(map[string]int)
	dayTotals := make(map[string]float64)
	dayCounts := make(map[string]int)

	for _, r := range records {
		stats.TotalSeconds += r.TimeTakenSeconds

		if r.Difficulty != "" {
			key := strings.ToLower(string(r.Difficulty))
			diffTotals[key] += r.TimeTakenSeconds
			diffCounts[key]++
		}

		bucket := timeOfDayBucket(r.CreatedAt)
		dayTotals[bucket] += r.TimeTakenSeconds
		dayCounts[bucket]++
	}

	stats.AverageSeconds = stats.TotalSeconds / float64(len(records))
	for key, total := range diffTotals {
		stats.ByDifficulty[key] = total / float64(diffCounts[key])
	}
	for bucket, total := range dayTotals {
		stats.ByTimeOfDay[bucket] = total / float64(dayCounts[bucket])
	}

	stats.SessionLengths = detectSessions(records)
	return stats
}

func timeOfDayBucket(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

// detectSessions groups chronologically adjacent responses into study
// sessions. A gap above sessionGapSeconds closes the current session.
func detectSessions(records []entity.ResponseRecord) []float64 {
	ordered := make([]entity.ResponseRecord, len(records))
	copy(ordered, records)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	lengths := []float64{}
	current := 0.0
	var prev time.Time
	for i, r := range ordered {
		if i > 0 && r.CreatedAt.Sub(prev).Seconds() > sessionGapSeconds {
			if current > 0 {
				lengths = append(lengths, current)
			}
			current = r.TimeTakenSeconds
		} else {
			current += r.TimeTakenSeconds
		}
		prev = r.CreatedAt
	}
	if current > 0 {
		lengths = append(lengths, current)
	}
	return lengths
}

type topicAccumulator struct {
	correct           int
	total             int
	streak            int
	maxStreak         int
	recentPerformance []bool
	byDifficulty      map[string][]bool
}

func (a *PatternAnalyzer) analyzeTopicMastery(records []entity.ResponseRecord) entity.TopicMasteryStats {
	stats := entity.TopicMasteryStats{
		MasteryLevels:    make(map[string]entity.MasteryRecord),
		WeakAreas:        []entity.WeaknessEntry{},
		StrongAreas:      []entity.StrengthEntry{},
		RecommendedFocus: []entity.FocusEntry{},
	}

	topics := make(map[string]*topicAccumulator)
	for _, r := range records {
		if r.Category == "" {
			continue
		}
		acc, ok := topics[r.Category]
		if !ok {
			acc = &topicAccumulator{byDifficulty: make(map[string][]bool)}
			topics[r.Category] = acc
		}

		acc.total++
		if r.IsCorrect {
			acc.correct++
			acc.streak++
			if acc.streak > acc.maxStreak {
				acc.maxStreak = acc.streak
			}
		} else {
			acc.streak = 0
		}

		acc.recentPerformance = append(acc.recentPerformance, r.IsCorrect)
		if len(acc.recentPerformance) > recentWindowSize {
			acc.recentPerformance = acc.recentPerformance[1:]
		}

		switch strings.ToLower(string(r.Difficulty)) {
		case "beginner", "intermediate", "advanced":
			key := strings.ToLower(string(r.Difficulty))
			acc.byDifficulty[key] = append(acc.byDifficulty[key], r.IsCorrect)
		}
	}

	// Sorted topic order keeps the weak/strong/focus lists stable
	// across repeated analyses of the same window.
	names := make([]string, 0, len(topics))
	for name, acc := range topics {
		if acc.total >= minCategoryAttempts {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		acc := topics[name]
		record := entity.MasteryRecord{
			OverallAccuracy:   100 * float64(acc.correct) / float64(acc.total),
			RecentAccuracy:    percentTrue(acc.recentPerformance),
			CurrentStreak:     acc.streak,
			MaxStreak:         acc.maxStreak,
			DifficultyMastery: make(map[string]float64),
			TotalAttempts:     acc.total,
		}
		for diff, outcomes := range acc.byDifficulty {
			record.DifficultyMastery[diff] = percentTrue(outcomes)
		}
		stats.MasteryLevels[name] = record

		if record.OverallAccuracy < 70 || record.RecentAccuracy < 60 {
			reason := "Low accuracy"
			if record.OverallAccuracy >= 70 {
				reason = "Recent struggles"
			}
			stats.WeakAreas = append(stats.WeakAreas, entity.WeaknessEntry{
				Topic:          name,
				Accuracy:       record.OverallAccuracy,
				RecentAccuracy: record.RecentAccuracy,
				Reason:         reason,
			})

			if record.TotalAttempts < 10 {
				stats.RecommendedFocus = append(stats.RecommendedFocus, entity.FocusEntry{
					Topic:    name,
					Reason:   "Need more practice",
					Priority: "High",
				})
			} else if record.RecentAccuracy < 60 {
				stats.RecommendedFocus = append(stats.RecommendedFocus, entity.FocusEntry{
					Topic:    name,
					Reason:   "Recent performance drop",
					Priority: "Medium",
				})
			}
		}

		if record.OverallAccuracy > 85 && record.RecentAccuracy > 80 {
			label := "Intermediate"
			if record.DifficultyMastery["advanced"] > 70 {
				label = "Advanced"
			}
			stats.StrongAreas = append(stats.StrongAreas, entity.StrengthEntry{
				Topic:        name,
				Accuracy:     record.OverallAccuracy,
				MasteryLabel: label,
			})
		}
	}

	return stats
}

func percentTrue(outcomes []bool) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	count := 0
	for _, ok := range outcomes {
		if ok {
			count++
		}
	}
	return 100 * float64(count) / float64(len(outcomes))
}

type styleAccumulator struct {
	total   int
	correct int
	times   []float64
}

func (a *PatternAnalyzer) classifyLearningStyle(records []entity.ResponseRecord) entity.LearningStyleStats {
	stats := entity.LearningStyleStats{
		PrimaryStyle:       entity.StyleVisual,
		StyleEffectiveness: make(map[entity.LearningStyle]float64),
	}

	styles := map[entity.LearningStyle]*styleAccumulator{
		entity.StyleVisual:      {},
		entity.StyleVerbal:      {},
		entity.StyleInteractive: {},
	}

	for _, r := range records {
		if r.QuestionText == "" && len(r.Keywords) == 0 && r.ClinicalScenario == "" {
			continue
		}
		style := classifyModality(r)
		acc := styles[style]
		acc.total++
		if r.IsCorrect {
			acc.correct++
		}
		acc.times = append(acc.times, r.TimeTakenSeconds)
	}

	// Fixed iteration order so argmax ties resolve the same way every
	// run.
	order := []entity.LearningStyle{entity.StyleVisual, entity.StyleVerbal, entity.StyleInteractive}
	best := -1.0
	for _, style := range order {
		acc := styles[style]
		if acc.total == 0 {
			continue
		}
		accuracy := 100 * float64(acc.correct) / float64(acc.total)
		avgTime := 0.0
		for _, t := range acc.times {
			avgTime += t
		}
		avgTime /= float64(len(acc.times))
		if avgTime > 1000 {
			avgTime = 1000
		}
		// Accuracy dominates; a response-speed bonus contributes at
		// most 30 points.
		effectiveness := accuracy*0.7 + (1000-avgTime)*0.3/10
		stats.StyleEffectiveness[style] = effectiveness
		if effectiveness > best {
			best = effectiveness
			stats.PrimaryStyle = style
		}
	}

	stats.Recommendations = styleRecommendations[stats.PrimaryStyle]
	return stats
}

// classifyModality infers the presentation modality of one item from
// its free text. Visual markers win over interactive ones; anything
// unmatched is verbal.
func classifyModality(r entity.ResponseRecord) entity.LearningStyle {
	text := strings.ToLower(r.QuestionText + " " + strings.Join(r.Keywords, " ") + " " + r.ClinicalScenario)
	for _, kw := range visualKeywords {
		if strings.Contains(text, kw) {
			return entity.StyleVisual
		}
	}
	for _, kw := range interactiveKeywords {
		if strings.Contains(text, kw) {
			return entity.StyleInteractive
		}
	}
	return entity.StyleVerbal
}
