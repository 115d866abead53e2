package repository

import (
	"github.com/nclexly/nclexly-be/internal/entity"
	"gorm.io/gorm"
)

type (
	ContentRepository interface {
		Create(db *gorm.DB, item *entity.ContentItem) error
		FindByContentID(db *gorm.DB, contentID string) (*entity.ContentItem, error)
		FindByDifficulty(db *gorm.DB, difficulty, category string) ([]entity.ContentItem, error)
		FindRandomByDifficulties(db *gorm.DB, difficulties []string, limit int) ([]entity.ContentItem, error)
		CountAll(db *gorm.DB) (int64, error)
		IncrementUsageCount(db *gorm.DB, contentID string) error
	}

	contentRepository struct {
		db *gorm.DB
	}
)

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(db *gorm.DB, item *entity.ContentItem) error {
	if db == nil {
		db = r.db
	}
	return db.Create(item).Error
}

func (r *contentRepository) FindByContentID(db *gorm.DB, contentID string) (*entity.ContentItem, error) {
	if db == nil {
		db = r.db
	}
	var item entity.ContentItem
	err := db.Where("content_id = ?", contentID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) FindByDifficulty(db *gorm.DB, difficulty, category string) ([]entity.ContentItem, error) {
	if db == nil {
		db = r.db
	}
	var items []entity.ContentItem
	query := db.Where("difficulty = ?", difficulty)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&items).Error
	return items, err
}

func (r *contentRepository) FindRandomByDifficulties(db *gorm.DB, difficulties []string, limit int) ([]entity.ContentItem, error) {
	if db == nil {
		db = r.db
	}
	var items []entity.ContentItem
	err := db.Where("difficulty IN ?", difficulties).Order("RANDOM()").Limit(limit).Find(&items).Error
	return items, err
}

func (r *contentRepository) CountAll(db *gorm.DB) (int64, error) {
	if db == nil {
		db = r.db
	}
	var count int64
	err := db.Model(&entity.ContentItem{}).Count(&count).Error
	return count, err
}

func (r *contentRepository) IncrementUsageCount(db *gorm.DB, contentID string) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&entity.ContentItem{}).
		Where("content_id = ?", contentID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
}
