package repository

import (
	"time"

	"github.com/nclexly/nclexly-be/internal/entity"
	"gorm.io/gorm"
)

type (
	LearningRepository interface {
		// Response history
		CreateResponse(db *gorm.DB, response *entity.UserResponse) error
		FindRecentResponsesByUserID(db *gorm.DB, userID string, limit int) ([]entity.UserResponse, error)
		FindActiveUserIDsSince(db *gorm.DB, since time.Time) ([]string, error)

		// Incremental aggregates
		FindAggregate(db *gorm.DB, userID, category string) (*entity.StudyAggregate, error)
		FindAggregatesByUserID(db *gorm.DB, userID string) ([]entity.StudyAggregate, error)
		SaveAggregate(db *gorm.DB, aggregate *entity.StudyAggregate) error

		// Snapshot cache
		CreateOrUpdatePatternCache(db *gorm.DB, cache *entity.PatternCache) error
		FindPatternCacheByUserID(db *gorm.DB, userID string) (*entity.PatternCache, error)
	}

	learningRepository struct {
		db *gorm.DB
	}
)

func NewLearningRepository(db *gorm.DB) LearningRepository {
	return &learningRepository{db: db}
}

func (r *learningRepository) CreateResponse(db *gorm.DB, response *entity.UserResponse) error {
	if db == nil {
		db = r.db
	}
	return db.Create(response).Error
}

// FindRecentResponsesByUserID returns the bounded history window,
// most-recent-first, which is the order the analyzer expects.
func (r *learningRepository) FindRecentResponsesByUserID(db *gorm.DB, userID string, limit int) ([]entity.UserResponse, error) {
	if db == nil {
		db = r.db
	}
	var responses []entity.UserResponse
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&responses).Error
	return responses, err
}

func (r *learningRepository) FindActiveUserIDsSince(db *gorm.DB, since time.Time) ([]string, error) {
	if db == nil {
		db = r.db
	}
	var userIDs []string
	err := db.Model(&entity.UserResponse{}).
		Distinct("user_id").
		Where("created_at >= ?", since).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *learningRepository) FindAggregate(db *gorm.DB, userID, category string) (*entity.StudyAggregate, error) {
	if db == nil {
		db = r.db
	}
	var aggregate entity.StudyAggregate
	err := db.Where("user_id = ? AND category = ?", userID, category).First(&aggregate).Error
	if err != nil {
		return nil, err
	}
	return &aggregate, nil
}

func (r *learningRepository) FindAggregatesByUserID(db *gorm.DB, userID string) ([]entity.StudyAggregate, error) {
	if db == nil {
		db = r.db
	}
	var aggregates []entity.StudyAggregate
	err := db.Where("user_id = ?", userID).Order("category ASC").Find(&aggregates).Error
	return aggregates, err
}

func (r *learningRepository) SaveAggregate(db *gorm.DB, aggregate *entity.StudyAggregate) error {
	if db == nil {
		db = r.db
	}
	return db.Save(aggregate).Error
}

func (r *learningRepository) CreateOrUpdatePatternCache(db *gorm.DB, cache *entity.PatternCache) error {
	if db == nil {
		db = r.db
	}
	// Upsert: update if exists, create if not
	return db.Where("user_id = ?", cache.UserID).Assign(cache).FirstOrCreate(cache).Error
}

func (r *learningRepository) FindPatternCacheByUserID(db *gorm.DB, userID string) (*entity.PatternCache, error) {
	if db == nil {
		db = r.db
	}
	var cache entity.PatternCache
	err := db.Where("user_id = ?", userID).First(&cache).Error
	if err != nil {
		return nil, err
	}
	return &cache, nil
}
