package mapper

import (
	"encoding/json"

	httpEntity "github.com/nclexly/nclexly-be/internal/delivery/http/entity"
	dbEntity "github.com/nclexly/nclexly-be/internal/entity"
)

// ConvertToResponseRecord - Convert DB row to the analyzer's view
func ConvertToResponseRecord(row *dbEntity.UserResponse) httpEntity.ResponseRecord {
	return httpEntity.ResponseRecord{
		UserID:           row.UserID,
		ContentID:        row.ContentID,
		IsCorrect:        row.IsCorrect,
		TimeTakenSeconds: row.TimeTakenSeconds,
		CreatedAt:        row.CreatedAt,
		Category:         row.Category,
		Difficulty:       httpEntity.Difficulty(row.Difficulty),
		QuestionText:     row.QuestionText,
		Keywords:         decodeKeywords(row.Keywords),
		ClinicalScenario: row.ClinicalScenario,
	}
}

// ConvertToContentCard - Convert DB row to the selector's view
func ConvertToContentCard(row *dbEntity.ContentItem) httpEntity.ContentCard {
	return httpEntity.ContentCard{
		ContentID:        row.ContentID,
		Category:         row.Category,
		Difficulty:       httpEntity.Difficulty(row.Difficulty),
		QuestionText:     row.QuestionText,
		Keywords:         decodeKeywords(row.Keywords),
		ClinicalScenario: row.ClinicalScenario,
	}
}

// ConvertToFlashcardView - Convert DB row to the API shape
func ConvertToFlashcardView(row *dbEntity.Flashcard) httpEntity.FlashcardView {
	return httpEntity.FlashcardView{
		FlashcardID:        row.FlashcardID,
		UserID:             row.UserID,
		Category:           row.Category,
		Front:              row.Front,
		Back:               row.Back,
		IntervalDays:       row.IntervalDays,
		EasinessFactor:     row.EasinessFactor,
		ConsecutiveCorrect: row.ConsecutiveCorrect,
		NextReviewAt:       row.NextReviewAt,
	}
}

// ConvertToScheduleState - Extract the scheduler's state from a DB row
func ConvertToScheduleState(row *dbEntity.Flashcard) httpEntity.ScheduleState {
	return httpEntity.ScheduleState{
		IntervalDays:       row.IntervalDays,
		EasinessFactor:     row.EasinessFactor,
		ConsecutiveCorrect: row.ConsecutiveCorrect,
		NextReviewAt:       row.NextReviewAt,
	}
}

// EncodeKeywords - Marshal a keyword list for storage
func EncodeKeywords(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var keywords []string
	if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
		return nil
	}
	return keywords
}
