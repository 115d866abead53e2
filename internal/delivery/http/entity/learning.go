package entity

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleVerbal      LearningStyle = "verbal"
	StyleInteractive LearningStyle = "interactive"
)

// ResponseRecord is the analysis-side view of one answered item. The
// engine only ever reads a bounded most-recent-first slice of these.
type ResponseRecord struct {
	UserID           string     `json:"user_id"`
	ContentID        string     `json:"content_id"`
	IsCorrect        bool       `json:"is_correct"`
	TimeTakenSeconds float64    `json:"time_taken_seconds"`
	CreatedAt        time.Time  `json:"created_at"`
	Category         string     `json:"category,omitempty"`
	Difficulty       Difficulty `json:"difficulty,omitempty"`
	QuestionText     string     `json:"question_text,omitempty"`
	Keywords         []string   `json:"keywords,omitempty"`
	ClinicalScenario string     `json:"clinical_scenario,omitempty"`
}

// AccuracyStats - overall and per-category accuracy plus the batched
// trend. Trend entries follow the order of the analyzed slice
// (most-recent-first), one entry per consecutive batch of 5.
type AccuracyStats struct {
	Overall    float64            `json:"overall"`
	ByCategory map[string]float64 `json:"by_category"`
	Trend      []float64          `json:"trend"`
}

type StudyTimeStats struct {
	AverageSeconds float64            `json:"average_seconds"`
	TotalSeconds   float64            `json:"total_seconds"`
	ByDifficulty   map[string]float64 `json:"by_difficulty"`
	ByTimeOfDay    map[string]float64 `json:"by_time_of_day"`
	SessionLengths []float64          `json:"session_lengths"`
}

// MasteryRecord summarizes one category. Only categories with at least
// five attempts in the analyzed window get a record.
type MasteryRecord struct {
	OverallAccuracy   float64            `json:"overall_accuracy"`
	RecentAccuracy    float64            `json:"recent_accuracy"`
	CurrentStreak     int                `json:"current_streak"`
	MaxStreak         int                `json:"max_streak"`
	DifficultyMastery map[string]float64 `json:"difficulty_mastery"`
	TotalAttempts     int                `json:"total_attempts"`
}

type WeaknessEntry struct {
	Topic          string  `json:"topic"`
	Accuracy       float64 `json:"accuracy"`
	RecentAccuracy float64 `json:"recent_accuracy"`
	Reason         string  `json:"reason"`
}

type StrengthEntry struct {
	Topic        string  `json:"topic"`
	Accuracy     float64 `json:"accuracy"`
	MasteryLabel string  `json:"mastery_label"`
}

type FocusEntry struct {
	Topic    string `json:"topic"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

type TopicMasteryStats struct {
	MasteryLevels    map[string]MasteryRecord `json:"mastery_levels"`
	WeakAreas        []WeaknessEntry          `json:"weak_areas"`
	StrongAreas      []StrengthEntry          `json:"strong_areas"`
	RecommendedFocus []FocusEntry             `json:"recommended_focus"`
}

type LearningStyleStats struct {
	PrimaryStyle       LearningStyle             `json:"primary_style"`
	StyleEffectiveness map[LearningStyle]float64 `json:"style_effectiveness"`
	Recommendations    []string                  `json:"recommendations"`
}

// PatternSnapshot is a point-in-time value object, recomputed fresh on
// each analysis call and never partially mutated.
type PatternSnapshot struct {
	Accuracy      AccuracyStats      `json:"accuracy"`
	StudyTime     StudyTimeStats     `json:"study_time"`
	TopicMastery  TopicMasteryStats  `json:"topic_mastery"`
	LearningStyle LearningStyleStats `json:"learning_style"`
}

// ScheduleState is the spaced-repetition state of one flashcard.
type ScheduleState struct {
	IntervalDays       int       `json:"interval_days"`
	EasinessFactor     float64   `json:"easiness_factor"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	NextReviewAt       time.Time `json:"next_review_at"`
}

// ContentCard is the selector-facing view of a pool item.
type ContentCard struct {
	ContentID        string     `json:"content_id"`
	Category         string     `json:"category"`
	Difficulty       Difficulty `json:"difficulty"`
	QuestionText     string     `json:"question_text"`
	Keywords         []string   `json:"keywords,omitempty"`
	ClinicalScenario string     `json:"clinical_scenario,omitempty"`
}

// Request to record an answered item
type RecordResponseRequest struct {
	UserID           string   `json:"user_id" validate:"required"`
	ContentID        string   `json:"content_id" validate:"required"`
	IsCorrect        *bool    `json:"is_correct" validate:"required"`
	TimeTakenSeconds float64  `json:"time_taken_seconds" validate:"gte=0"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	QuestionText     string   `json:"question_text"`
	Keywords         []string `json:"keywords"`
	ClinicalScenario string   `json:"clinical_scenario"`
}

// Response for a recorded answer
type RecordResponseResponse struct {
	UserID                string     `json:"user_id"`
	Category              string     `json:"category,omitempty"`
	IsCorrect             bool       `json:"is_correct"`
	TotalQuestions        int        `json:"total_questions"`
	AccuracyRate          float64    `json:"accuracy_rate"`
	RecommendedDifficulty Difficulty `json:"recommended_difficulty"`
	FlashcardID           string     `json:"flashcard_id,omitempty"`
}

// Request to review a flashcard
type ReviewFlashcardRequest struct {
	Quality *int `json:"quality" validate:"required,min=0,max=5"`
}

// FlashcardView is the API shape of a flashcard plus its schedule.
type FlashcardView struct {
	FlashcardID        string    `json:"flashcard_id"`
	UserID             string    `json:"user_id"`
	Category           string    `json:"category,omitempty"`
	Front              string    `json:"front"`
	Back               string    `json:"back,omitempty"`
	IntervalDays       int       `json:"interval_days"`
	EasinessFactor     float64   `json:"easiness_factor"`
	ConsecutiveCorrect int       `json:"consecutive_correct"`
	NextReviewAt       time.Time `json:"next_review_at"`
}

type RecommendedDifficultyResponse struct {
	UserID         string     `json:"user_id"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	AccuracyRate   float64    `json:"accuracy_rate"`
	TotalQuestions int        `json:"total_questions"`
}
