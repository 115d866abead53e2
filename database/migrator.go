package database

import (
	"github.com/nclexly/nclexly-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.UserResponse{},
		&entity.StudyAggregate{},
		&entity.ContentItem{},
		&entity.Flashcard{},
		&entity.PatternCache{},
	)
	return err
}
