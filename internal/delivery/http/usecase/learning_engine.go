package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
	"github.com/nclexly/nclexly-be/internal/delivery/http/repository"
	internalEntity "github.com/nclexly/nclexly-be/internal/entity"
	"github.com/nclexly/nclexly-be/internal/pkg/event"
	"github.com/nclexly/nclexly-be/internal/pkg/llm"
	"github.com/nclexly/nclexly-be/internal/pkg/mapper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type LearningEngineUsecase interface {
	Analyze(ctx context.Context, userID string) (*entity.PatternSnapshot, error)
	RecordResponse(ctx context.Context, req entity.RecordResponseRequest) (*entity.RecordResponseResponse, error)
	RecommendedDifficulty(ctx context.Context, userID, category string) (*entity.RecommendedDifficultyResponse, error)
	SelectNextContent(ctx context.Context, userID, topic string) (*entity.ContentCard, error)
	ReviewFlashcard(ctx context.Context, flashcardID string, quality int) (*entity.FlashcardView, error)
	DueFlashcards(ctx context.Context, userID string) ([]entity.FlashcardView, error)
}

type LearningEngineConfig struct {
	DB         *gorm.DB
	Log        *logrus.Logger
	Config     *viper.Viper
	Learning   repository.LearningRepository
	Content    repository.ContentRepository
	Flashcards repository.FlashcardRepository
	Gemini     *llm.GeminiClient
	Events     *event.Publisher
}

type learningEngineUsecase struct {
	cfg       LearningEngineConfig
	analyzer  *PatternAnalyzer
	tracker   *MasteryTracker
	selector  *ContentSelector
	scheduler *SpacedRepetition
}

func NewLearningEngineUsecase(cfg LearningEngineConfig) LearningEngineUsecase {
	return &learningEngineUsecase{
		cfg:       cfg,
		analyzer:  NewPatternAnalyzer(),
		tracker:   NewMasteryTracker(),
		selector:  NewContentSelector(),
		scheduler: NewSpacedRepetition(),
	}
}

// Analyze re-derives a full snapshot from the latest history window and
// refreshes the per-user cache the selector reads.
func (u *learningEngineUsecase) Analyze(ctx context.Context, userID string) (*entity.PatternSnapshot, error) {
	rows, err := u.cfg.Learning.FindRecentResponsesByUserID(u.cfg.DB, userID, analysisWindowSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load response history: %w", err)
	}

	records := make([]entity.ResponseRecord, 0, len(rows))
	for i := range rows {
		records = append(records, mapper.ConvertToResponseRecord(&rows[i]))
	}

	snapshot := u.analyzer.Analyze(records)

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	cache := &internalEntity.PatternCache{
		UserID:        userID,
		Snapshot:      string(payload),
		AnalyzedCount: len(records),
	}
	if err := u.cfg.Learning.CreateOrUpdatePatternCache(u.cfg.DB, cache); err != nil {
		u.cfg.Log.Warnf("failed to cache snapshot for user %s: %v", userID, err)
	}

	return &snapshot, nil
}

// RecordResponse is the fast path: persist the response, fold it into
// the incremental aggregate, and turn a miss into a flashcard.
func (u *learningEngineUsecase) RecordResponse(ctx context.Context, req entity.RecordResponseRequest) (*entity.RecordResponseResponse, error) {
	isCorrect := req.IsCorrect != nil && *req.IsCorrect

	row := &internalEntity.UserResponse{
		UserID:           req.UserID,
		ContentID:        req.ContentID,
		IsCorrect:        isCorrect,
		TimeTakenSeconds: req.TimeTakenSeconds,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		QuestionText:     req.QuestionText,
		Keywords:         mapper.EncodeKeywords(req.Keywords),
		ClinicalScenario: req.ClinicalScenario,
	}
	if err := u.cfg.Learning.CreateResponse(u.cfg.DB, row); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	result := &entity.RecordResponseResponse{
		UserID:                req.UserID,
		Category:              req.Category,
		IsCorrect:             isCorrect,
		RecommendedDifficulty: entity.DifficultyBeginner,
	}

	if req.Category != "" {
		aggregate, err := u.cfg.Learning.FindAggregate(u.cfg.DB, req.UserID, req.Category)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to load aggregate: %w", err)
			}
			aggregate = &internalEntity.StudyAggregate{
				UserID:   req.UserID,
				Category: req.Category,
			}
		}
		u.tracker.Apply(aggregate, isCorrect, req.TimeTakenSeconds)
		if err := u.cfg.Learning.SaveAggregate(u.cfg.DB, aggregate); err != nil {
			return nil, fmt.Errorf("failed to save aggregate: %w", err)
		}
		result.TotalQuestions = aggregate.TotalQuestions
		result.AccuracyRate = aggregate.AccuracyRate
		result.RecommendedDifficulty = RecommendedDifficulty(aggregate)
	}

	if !isCorrect {
		flashcard, err := u.createFlashcardFromMiss(ctx, req)
		if err != nil {
			u.cfg.Log.Warnf("failed to create flashcard for user %s: %v", req.UserID, err)
		} else {
			result.FlashcardID = flashcard.FlashcardID
		}
	}

	u.cfg.Events.Publish(event.TypeResponseRecorded, result)

	return result, nil
}

func (u *learningEngineUsecase) RecommendedDifficulty(ctx context.Context, userID, category string) (*entity.RecommendedDifficultyResponse, error) {
	aggregate, err := u.cfg.Learning.FindAggregate(u.cfg.DB, userID, category)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load aggregate: %w", err)
	}

	resp := &entity.RecommendedDifficultyResponse{
		UserID:     userID,
		Category:   category,
		Difficulty: RecommendedDifficulty(aggregate),
	}
	if aggregate != nil {
		resp.AccuracyRate = aggregate.AccuracyRate
		resp.TotalQuestions = aggregate.TotalQuestions
	}
	return resp, nil
}

// SelectNextContent consumes the latest cached snapshot; a user with no
// snapshot yet is served from the beginner tier.
func (u *learningEngineUsecase) SelectNextContent(ctx context.Context, userID, topic string) (*entity.ContentCard, error) {
	var snapshot *entity.PatternSnapshot
	cache, err := u.cfg.Learning.FindPatternCacheByUserID(u.cfg.DB, userID)
	if err == nil && cache != nil {
		var decoded entity.PatternSnapshot
		if err := json.Unmarshal([]byte(cache.Snapshot), &decoded); err != nil {
			u.cfg.Log.Warnf("discarding unreadable snapshot cache for user %s: %v", userID, err)
		} else {
			snapshot = &decoded
		}
	}

	card, err := u.selector.Select(ctx, snapshot, topic, &contentPoolQuery{repo: u.cfg.Content, db: u.cfg.DB})
	if err != nil {
		return nil, err
	}

	if err := u.cfg.Content.IncrementUsageCount(u.cfg.DB, card.ContentID); err != nil {
		u.cfg.Log.Warnf("failed to increment usage count for %s: %v", card.ContentID, err)
	}

	return card, nil
}

func (u *learningEngineUsecase) ReviewFlashcard(ctx context.Context, flashcardID string, quality int) (*entity.FlashcardView, error) {
	flashcard, err := u.cfg.Flashcards.FindByFlashcardID(u.cfg.DB, flashcardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlashcardNotFound
		}
		return nil, fmt.Errorf("failed to load flashcard: %w", err)
	}

	next, err := u.scheduler.Review(mapper.ConvertToScheduleState(flashcard), quality)
	if err != nil {
		return nil, err
	}

	rows, err := u.cfg.Flashcards.UpdateSchedule(
		u.cfg.DB,
		flashcard.FlashcardID,
		flashcard.Version,
		next.IntervalDays,
		next.EasinessFactor,
		next.ConsecutiveCorrect,
		next.NextReviewAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	if rows == 0 {
		return nil, ErrStaleSchedule
	}

	flashcard.IntervalDays = next.IntervalDays
	flashcard.EasinessFactor = next.EasinessFactor
	flashcard.ConsecutiveCorrect = next.ConsecutiveCorrect
	flashcard.NextReviewAt = next.NextReviewAt

	view := mapper.ConvertToFlashcardView(flashcard)
	u.cfg.Events.Publish(event.TypeFlashcardReviewed, view)

	return &view, nil
}

func (u *learningEngineUsecase) DueFlashcards(ctx context.Context, userID string) ([]entity.FlashcardView, error) {
	flashcards, err := u.cfg.Flashcards.FindDueByUserID(u.cfg.DB, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to load due flashcards: %w", err)
	}

	views := make([]entity.FlashcardView, 0, len(flashcards))
	for i := range flashcards {
		views = append(views, mapper.ConvertToFlashcardView(&flashcards[i]))
	}
	return views, nil
}

type flashcardJSON struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// createFlashcardFromMiss converts a missed question into a flashcard
// with fresh schedule state. The back is generated by the LLM when one
// is configured; otherwise a deterministic fallback is used.
func (u *learningEngineUsecase) createFlashcardFromMiss(ctx context.Context, req entity.RecordResponseRequest) (*internalEntity.Flashcard, error) {
	state := u.scheduler.NewScheduleState()
	flashcard := &internalEntity.Flashcard{
		FlashcardID:        "fc-" + uuid.NewString(),
		UserID:             req.UserID,
		ContentID:          req.ContentID,
		Category:           req.Category,
		Front:              req.QuestionText,
		GeneratedBy:        "fallback",
		IntervalDays:       state.IntervalDays,
		EasinessFactor:     state.EasinessFactor,
		ConsecutiveCorrect: state.ConsecutiveCorrect,
		NextReviewAt:       state.NextReviewAt,
	}
	if flashcard.Front == "" {
		flashcard.Front = fmt.Sprintf("Review the missed question %s", req.ContentID)
	}

	disableAI := u.cfg.Config != nil && u.cfg.Config.GetBool("llm.gemini.disable_ai_prompt")
	if u.cfg.Gemini != nil && !disableAI {
		generated, err := u.generateFlashcardFromAI(ctx, req)
		if err != nil {
			u.cfg.Log.Warnf("flashcard AI generate error: %v, using fallback", err)
		} else {
			flashcard.Front = generated.Front
			flashcard.Back = generated.Back
			flashcard.GeneratedBy = "ai"
		}
	}
	if flashcard.Back == "" {
		flashcard.Back = fallbackFlashcardBack(req.Category)
	}

	if err := u.cfg.Flashcards.Create(u.cfg.DB, flashcard); err != nil {
		return nil, err
	}
	return flashcard, nil
}

func (u *learningEngineUsecase) generateFlashcardFromAI(ctx context.Context, req entity.RecordResponseRequest) (*flashcardJSON, error) {
	prompt := fmt.Sprintf(`A nursing student preparing for the NCLEX exam answered this question incorrectly.

Category: %s
Question: %s
Clinical scenario: %s

Task:
1. Write a concise flashcard front restating the concept being tested as a recall prompt
2. Write a flashcard back with the key fact or rationale the student missed
3. Keep both sides short enough to review in under a minute

IMPORTANT: Return ONLY valid JSON, NO markdown, NO code blocks.
JSON format:
{"front":"...","back":"..."}`,
		req.Category, req.QuestionText, req.ClinicalScenario)

	text, err := u.cfg.Gemini.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// Strip code fences if the model wraps the JSON anyway
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var parsed flashcardJSON
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("AI output is not valid json: %w", err)
	}
	if parsed.Front == "" || parsed.Back == "" {
		return nil, fmt.Errorf("AI output missing required fields")
	}
	return &parsed, nil
}

func fallbackFlashcardBack(category string) string {
	if category == "" {
		return "Revisit the rationale for this question before the next review."
	}
	return fmt.Sprintf("Revisit the core concepts of %s before the next review.", category)
}

// contentPoolQuery adapts the GORM content repository to the
// selector's query interface.
type contentPoolQuery struct {
	repo repository.ContentRepository
	db   *gorm.DB
}

func (q *contentPoolQuery) ByDifficulty(ctx context.Context, difficulty entity.Difficulty, topic string) ([]entity.ContentCard, error) {
	rows, err := q.repo.FindByDifficulty(q.db, string(difficulty), topic)
	if err != nil {
		return nil, err
	}
	cards := make([]entity.ContentCard, 0, len(rows))
	for i := range rows {
		cards = append(cards, mapper.ConvertToContentCard(&rows[i]))
	}
	return cards, nil
}

func (q *contentPoolQuery) RandomSample(ctx context.Context, difficulties []entity.Difficulty, n int) ([]entity.ContentCard, error) {
	names := make([]string, 0, len(difficulties))
	for _, d := range difficulties {
		names = append(names, string(d))
	}
	rows, err := q.repo.FindRandomByDifficulties(q.db, names, n)
	if err != nil {
		return nil, err
	}
	cards := make([]entity.ContentCard, 0, len(rows))
	for i := range rows {
		cards = append(cards, mapper.ConvertToContentCard(&rows[i]))
	}
	return cards, nil
}
