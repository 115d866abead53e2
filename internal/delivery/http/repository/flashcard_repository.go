package repository

import (
	"time"

	"github.com/nclexly/nclexly-be/internal/entity"
	"gorm.io/gorm"
)

type (
	FlashcardRepository interface {
		Create(db *gorm.DB, flashcard *entity.Flashcard) error
		FindByFlashcardID(db *gorm.DB, flashcardID string) (*entity.Flashcard, error)
		FindDueByUserID(db *gorm.DB, userID string, now time.Time) ([]entity.Flashcard, error)
		// UpdateSchedule writes the new schedule only when the stored
		// version still matches expectedVersion. Returns the number of
		// rows updated; zero means the caller lost the race.
		UpdateSchedule(db *gorm.DB, flashcardID string, expectedVersion int, intervalDays int, easinessFactor float64, consecutiveCorrect int, nextReviewAt time.Time) (int64, error)
	}

	flashcardRepository struct {
		db *gorm.DB
	}
)

func NewFlashcardRepository(db *gorm.DB) FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Create(db *gorm.DB, flashcard *entity.Flashcard) error {
	if db == nil {
		db = r.db
	}
	return db.Create(flashcard).Error
}

func (r *flashcardRepository) FindByFlashcardID(db *gorm.DB, flashcardID string) (*entity.Flashcard, error) {
	if db == nil {
		db = r.db
	}
	var flashcard entity.Flashcard
	err := db.Where("flashcard_id = ?", flashcardID).First(&flashcard).Error
	if err != nil {
		return nil, err
	}
	return &flashcard, nil
}

func (r *flashcardRepository) FindDueByUserID(db *gorm.DB, userID string, now time.Time) ([]entity.Flashcard, error) {
	if db == nil {
		db = r.db
	}
	var flashcards []entity.Flashcard
	err := db.Where("user_id = ? AND next_review_at <= ?", userID, now).
		Order("next_review_at ASC").
		Find(&flashcards).Error
	return flashcards, err
}

func (r *flashcardRepository) UpdateSchedule(db *gorm.DB, flashcardID string, expectedVersion int, intervalDays int, easinessFactor float64, consecutiveCorrect int, nextReviewAt time.Time) (int64, error) {
	if db == nil {
		db = r.db
	}
	result := db.Model(&entity.Flashcard{}).
		Where("flashcard_id = ? AND version = ?", flashcardID, expectedVersion).
		Updates(map[string]interface{}{
			"interval_days":       intervalDays,
			"easiness_factor":     easinessFactor,
			"consecutive_correct": consecutiveCorrect,
			"next_review_at":      nextReviewAt,
			"version":             expectedVersion + 1,
		})
	return result.RowsAffected, result.Error
}
