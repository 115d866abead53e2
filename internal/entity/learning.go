package entity

import (
	"time"

	"gorm.io/gorm"
)

// UserResponse - one answered item, immutable once created
type UserResponse struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           string         `gorm:"size:100;not null;index" json:"user_id"`
	ContentID        string         `gorm:"size:100;not null;index" json:"content_id"`
	IsCorrect        bool           `gorm:"not null" json:"is_correct"`
	TimeTakenSeconds float64        `gorm:"not null;default:0" json:"time_taken_seconds"`
	Category         string         `gorm:"size:100;index" json:"category"`   // empty when unknown
	Difficulty       string         `gorm:"size:20;index" json:"difficulty"`  // BEGINNER, INTERMEDIATE, ADVANCED
	QuestionText     string         `gorm:"type:text" json:"question_text"`
	Keywords         string         `gorm:"type:text" json:"keywords"` // JSON array
	ClinicalScenario string         `gorm:"type:text" json:"clinical_scenario"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserResponse) TableName() string {
	return "user_responses"
}

// StudyAggregate - per user x category running totals, updated one response
// at a time and never deleted
type StudyAggregate struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	UserID             string         `gorm:"size:100;not null;uniqueIndex:idx_user_category" json:"user_id"`
	Category           string         `gorm:"size:100;not null;uniqueIndex:idx_user_category" json:"category"`
	TotalQuestions     int            `gorm:"not null;default:0" json:"total_questions"`
	CorrectAnswers     int            `gorm:"not null;default:0" json:"correct_answers"`
	TotalTimeSeconds   float64        `gorm:"not null;default:0" json:"total_time_seconds"`
	AvgTimePerQuestion float64        `gorm:"not null;default:0" json:"avg_time_per_question"`
	AccuracyRate       float64        `gorm:"not null;default:0" json:"accuracy_rate"`
	LastActivityAt     time.Time      `json:"last_activity_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StudyAggregate) TableName() string {
	return "study_aggregates"
}

// ContentItem - question pool entry served by the selector
type ContentItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	ContentID        string         `gorm:"uniqueIndex;size:100;not null" json:"content_id"`
	Category         string         `gorm:"size:100;not null;index" json:"category"`
	Difficulty       string         `gorm:"size:20;not null;index" json:"difficulty"`
	QuestionText     string         `gorm:"type:text;not null" json:"question_text"`
	Keywords         string         `gorm:"type:text" json:"keywords"` // JSON array
	ClinicalScenario string         `gorm:"type:text" json:"clinical_scenario"`
	UsageCount       int            `gorm:"default:0" json:"usage_count"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentItem) TableName() string {
	return "content_items"
}

// Flashcard - generated from a missed question, review timing owned by
// the spaced-repetition scheduler. Version guards concurrent reviews.
type Flashcard struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	FlashcardID        string         `gorm:"uniqueIndex;size:100;not null" json:"flashcard_id"`
	UserID             string         `gorm:"size:100;not null;index" json:"user_id"`
	ContentID          string         `gorm:"size:100;index" json:"content_id"`
	Category           string         `gorm:"size:100" json:"category"`
	Front              string         `gorm:"type:text;not null" json:"front"`
	Back               string         `gorm:"type:text" json:"back"`
	GeneratedBy        string         `gorm:"size:20;default:fallback" json:"generated_by"` // ai, fallback
	IntervalDays       int            `gorm:"not null;default:1" json:"interval_days"`
	EasinessFactor     float64        `gorm:"not null;default:2.5" json:"easiness_factor"`
	ConsecutiveCorrect int            `gorm:"not null;default:0" json:"consecutive_correct"`
	NextReviewAt       time.Time      `gorm:"index" json:"next_review_at"`
	Version            int            `gorm:"not null;default:0" json:"version"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}

// PatternCache - latest derived snapshot per user, recomputed on each
// analysis call
type PatternCache struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        string         `gorm:"uniqueIndex;size:100;not null" json:"user_id"`
	Snapshot      string         `gorm:"type:text;not null" json:"snapshot"` // JSON PatternSnapshot
	AnalyzedCount int            `gorm:"not null;default:0" json:"analyzed_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PatternCache) TableName() string {
	return "pattern_caches"
}
