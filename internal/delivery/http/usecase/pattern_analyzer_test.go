package usecase

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
)

const epsilon = 1e-6

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.6f, want %.6f", name, got, want)
	}
}

var analyzerBase = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func makeRecord(category string, correct bool, difficulty entity.Difficulty, createdAt time.Time, timeTaken float64) entity.ResponseRecord {
	return entity.ResponseRecord{
		UserID:           "u1",
		ContentID:        "c1",
		IsCorrect:        correct,
		TimeTakenSeconds: timeTaken,
		CreatedAt:        createdAt,
		Category:         category,
		Difficulty:       difficulty,
	}
}

// categoryRecords builds one record per outcome, in slice order, spaced
// a minute apart so session detection stays out of the way.
func categoryRecords(category string, difficulty entity.Difficulty, outcomes []bool) []entity.ResponseRecord {
	records := make([]entity.ResponseRecord, 0, len(outcomes))
	for i, correct := range outcomes {
		records = append(records, makeRecord(category, correct, difficulty, analyzerBase.Add(time.Duration(i)*time.Minute), 30))
	}
	return records
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	snapshot := NewPatternAnalyzer().Analyze(nil)

	assertFloat(t, "overall", snapshot.Accuracy.Overall, 0)
	if snapshot.Accuracy.ByCategory == nil || len(snapshot.Accuracy.ByCategory) != 0 {
		t.Errorf("ByCategory = %v, want empty map", snapshot.Accuracy.ByCategory)
	}
	if len(snapshot.Accuracy.Trend) != 0 {
		t.Errorf("Trend = %v, want empty", snapshot.Accuracy.Trend)
	}
	if len(snapshot.StudyTime.ByTimeOfDay) != 4 {
		t.Errorf("ByTimeOfDay has %d buckets, want 4", len(snapshot.StudyTime.ByTimeOfDay))
	}
	if len(snapshot.TopicMastery.MasteryLevels) != 0 {
		t.Errorf("MasteryLevels = %v, want empty", snapshot.TopicMastery.MasteryLevels)
	}
	if snapshot.LearningStyle.PrimaryStyle != entity.StyleVisual {
		t.Errorf("PrimaryStyle = %s, want visual default", snapshot.LearningStyle.PrimaryStyle)
	}
	if len(snapshot.LearningStyle.Recommendations) != 3 {
		t.Errorf("Recommendations = %v, want the 3 visual entries", snapshot.LearningStyle.Recommendations)
	}
}

func TestOverallAccuracy(t *testing.T) {
	records := categoryRecords("Pharmacology", "", []bool{true, true, false, true, false, false, true, true})
	snapshot := NewPatternAnalyzer().Analyze(records)

	assertFloat(t, "overall", snapshot.Accuracy.Overall, 100*5.0/8.0)
	assertFloat(t, "by_category", snapshot.Accuracy.ByCategory["Pharmacology"], 100*5.0/8.0)
}

func TestTrendBatchingPreservesInputOrder(t *testing.T) {
	// Most-recent-first input: newest five all correct, middle five all
	// wrong, oldest two split.
	outcomes := []bool{true, true, true, true, true, false, false, false, false, false, true, false}
	records := categoryRecords("", "", outcomes)

	snapshot := NewPatternAnalyzer().Analyze(records)

	trend := snapshot.Accuracy.Trend
	if len(trend) != 3 {
		t.Fatalf("trend has %d batches, want 3", len(trend))
	}
	assertFloat(t, "trend[0]", trend[0], 100)
	assertFloat(t, "trend[1]", trend[1], 0)
	assertFloat(t, "trend[2]", trend[2], 50)
}

func TestSessionDetection(t *testing.T) {
	records := []entity.ResponseRecord{
		makeRecord("", true, "", analyzerBase, 5),
		makeRecord("", true, "", analyzerBase.Add(10*time.Second), 5),
		makeRecord("", true, "", analyzerBase.Add(2000*time.Second), 5),
	}

	snapshot := NewPatternAnalyzer().Analyze(records)

	lengths := snapshot.StudyTime.SessionLengths
	if len(lengths) != 2 {
		t.Fatalf("sessionLengths = %v, want 2 sessions", lengths)
	}
	assertFloat(t, "session[0]", lengths[0], 10)
	assertFloat(t, "session[1]", lengths[1], 5)
}

func TestTimeOfDayBuckets(t *testing.T) {
	records := []entity.ResponseRecord{
		makeRecord("", true, "", time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC), 10),
		makeRecord("", true, "", time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC), 20),
		makeRecord("", true, "", time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC), 40),
		makeRecord("", true, "", time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC), 50),
	}

	snapshot := NewPatternAnalyzer().Analyze(records)

	byDay := snapshot.StudyTime.ByTimeOfDay
	assertFloat(t, "morning", byDay["morning"], 10)
	assertFloat(t, "afternoon", byDay["afternoon"], 30)
	assertFloat(t, "evening", byDay["evening"], 0)
	assertFloat(t, "night", byDay["night"], 50)
}

func TestStudyTimeByDifficulty(t *testing.T) {
	records := []entity.ResponseRecord{
		makeRecord("", true, entity.DifficultyBeginner, analyzerBase, 10),
		makeRecord("", true, entity.DifficultyBeginner, analyzerBase.Add(time.Minute), 30),
		makeRecord("", true, entity.DifficultyAdvanced, analyzerBase.Add(2*time.Minute), 60),
		makeRecord("", true, "", analyzerBase.Add(3*time.Minute), 99),
	}

	snapshot := NewPatternAnalyzer().Analyze(records)

	assertFloat(t, "beginner", snapshot.StudyTime.ByDifficulty["beginner"], 20)
	assertFloat(t, "advanced", snapshot.StudyTime.ByDifficulty["advanced"], 60)
	if _, ok := snapshot.StudyTime.ByDifficulty[""]; ok {
		t.Error("records without difficulty must be excluded from ByDifficulty")
	}
	assertFloat(t, "average", snapshot.StudyTime.AverageSeconds, (10+30+60+99)/4.0)
	assertFloat(t, "total", snapshot.StudyTime.TotalSeconds, 199)
}

func TestTopicMasteryAttemptFloor(t *testing.T) {
	records := append(
		categoryRecords("Pediatrics", "", []bool{true, true, true, true}),
		categoryRecords("Maternity", "", []bool{true, true, true, true, false})...,
	)

	snapshot := NewPatternAnalyzer().Analyze(records)

	if _, ok := snapshot.TopicMastery.MasteryLevels["Pediatrics"]; ok {
		t.Error("category with 4 attempts must not appear in MasteryLevels")
	}
	record, ok := snapshot.TopicMastery.MasteryLevels["Maternity"]
	if !ok {
		t.Fatal("category with 5 attempts must appear in MasteryLevels")
	}
	if record.TotalAttempts != 5 {
		t.Errorf("TotalAttempts = %d, want 5", record.TotalAttempts)
	}
	assertFloat(t, "overall", record.OverallAccuracy, 80)
}

func TestWeakClassificationLowAccuracy(t *testing.T) {
	// 13 of 20 correct (65%), window of the last five walked holds 3
	// correct (60%): only the overall condition fires.
	outcomes := []bool{
		true, true, true, true, true,
		true, true, true, true, true,
		false, false, false, false, false,
		true, true, true, false, false,
	}
	snapshot := NewPatternAnalyzer().Analyze(categoryRecords("Pharmacology", "", outcomes))

	if len(snapshot.TopicMastery.WeakAreas) != 1 {
		t.Fatalf("WeakAreas = %v, want exactly one", snapshot.TopicMastery.WeakAreas)
	}
	weak := snapshot.TopicMastery.WeakAreas[0]
	if weak.Reason != "Low accuracy" {
		t.Errorf("Reason = %q, want %q", weak.Reason, "Low accuracy")
	}
	assertFloat(t, "accuracy", weak.Accuracy, 65)
	assertFloat(t, "recent", weak.RecentAccuracy, 60)
	// 20 attempts and recent accuracy at 60 mean neither focus branch
	// fires.
	if len(snapshot.TopicMastery.RecommendedFocus) != 0 {
		t.Errorf("RecommendedFocus = %v, want none", snapshot.TopicMastery.RecommendedFocus)
	}
}

func TestWeakClassificationRecentStruggles(t *testing.T) {
	// 15 of 20 correct (75%), window holds 2 correct (40%): only the
	// recent condition fires.
	outcomes := []bool{
		true, true, true, true, true,
		true, true, true, true, true,
		true, true, true, false, false,
		true, true, false, false, false,
	}
	snapshot := NewPatternAnalyzer().Analyze(categoryRecords("Fundamentals", "", outcomes))

	if len(snapshot.TopicMastery.WeakAreas) != 1 {
		t.Fatalf("WeakAreas = %v, want exactly one", snapshot.TopicMastery.WeakAreas)
	}
	weak := snapshot.TopicMastery.WeakAreas[0]
	if weak.Reason != "Recent struggles" {
		t.Errorf("Reason = %q, want %q", weak.Reason, "Recent struggles")
	}

	if len(snapshot.TopicMastery.RecommendedFocus) != 1 {
		t.Fatalf("RecommendedFocus = %v, want one entry", snapshot.TopicMastery.RecommendedFocus)
	}
	focus := snapshot.TopicMastery.RecommendedFocus[0]
	if focus.Reason != "Recent performance drop" || focus.Priority != "Medium" {
		t.Errorf("focus = %+v, want Recent performance drop / Medium", focus)
	}
}

func TestRecommendedFocusNeedMorePractice(t *testing.T) {
	snapshot := NewPatternAnalyzer().Analyze(
		categoryRecords("Mental Health", "", []bool{true, false, false, true, false, false}))

	if len(snapshot.TopicMastery.RecommendedFocus) != 1 {
		t.Fatalf("RecommendedFocus = %v, want one entry", snapshot.TopicMastery.RecommendedFocus)
	}
	focus := snapshot.TopicMastery.RecommendedFocus[0]
	if focus.Reason != "Need more practice" || focus.Priority != "High" {
		t.Errorf("focus = %+v, want Need more practice / High", focus)
	}
}

func TestStrongClassification(t *testing.T) {
	outcomes := []bool{
		true, true, true, true, true,
		true, true, true, false, false,
		true, true, true, true, true,
		true, true, true, true, true,
	}
	snapshot := NewPatternAnalyzer().Analyze(
		categoryRecords("Medical-Surgical", entity.DifficultyAdvanced, outcomes))

	if len(snapshot.TopicMastery.StrongAreas) != 1 {
		t.Fatalf("StrongAreas = %v, want exactly one", snapshot.TopicMastery.StrongAreas)
	}
	strong := snapshot.TopicMastery.StrongAreas[0]
	assertFloat(t, "accuracy", strong.Accuracy, 90)
	if strong.MasteryLabel != "Advanced" {
		t.Errorf("MasteryLabel = %q, want Advanced (advanced difficulty mastery is 90)", strong.MasteryLabel)
	}
}

func TestStreakTracking(t *testing.T) {
	outcomes := []bool{true, true, true, false, true, true}
	snapshot := NewPatternAnalyzer().Analyze(categoryRecords("Maternity", "", outcomes))

	record := snapshot.TopicMastery.MasteryLevels["Maternity"]
	if record.MaxStreak != 3 {
		t.Errorf("MaxStreak = %d, want 3", record.MaxStreak)
	}
	if record.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", record.CurrentStreak)
	}
}

func TestModalityClassification(t *testing.T) {
	tests := []struct {
		name   string
		record entity.ResponseRecord
		want   entity.LearningStyle
	}{
		{
			name:   "diagram keyword is visual",
			record: entity.ResponseRecord{QuestionText: "Label the diagram of the nephron"},
			want:   entity.StyleVisual,
		},
		{
			name:   "keyword list carries modality",
			record: entity.ResponseRecord{QuestionText: "Dosage titration", Keywords: []string{"practice", "calculation"}},
			want:   entity.StyleInteractive,
		},
		{
			name:   "scenario text is searched too",
			record: entity.ResponseRecord{ClinicalScenario: "Review the chart of vitals over 24 hours"},
			want:   entity.StyleVisual,
		},
		{
			name:   "visual wins over interactive",
			record: entity.ResponseRecord{QuestionText: "Use the simulation graph to answer"},
			want:   entity.StyleVisual,
		},
		{
			name:   "plain text defaults to verbal",
			record: entity.ResponseRecord{QuestionText: "Which electrolyte imbalance causes peaked T waves?"},
			want:   entity.StyleVerbal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyModality(tt.record); got != tt.want {
				t.Errorf("classifyModality() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStyleEffectivenessFormula(t *testing.T) {
	record := makeRecord("", true, "", analyzerBase, 100)
	record.QuestionText = "Interpret the graph"

	snapshot := NewPatternAnalyzer().Analyze([]entity.ResponseRecord{record})

	// accuracy 100 -> 70 points, speed bonus (1000-100)*0.03 = 27
	assertFloat(t, "visual effectiveness", snapshot.LearningStyle.StyleEffectiveness[entity.StyleVisual], 97)
	if snapshot.LearningStyle.PrimaryStyle != entity.StyleVisual {
		t.Errorf("PrimaryStyle = %s, want visual", snapshot.LearningStyle.PrimaryStyle)
	}
}

func TestSpeedBonusCapped(t *testing.T) {
	record := makeRecord("", false, "", analyzerBase, 5000)
	record.QuestionText = "Explain the rationale"

	snapshot := NewPatternAnalyzer().Analyze([]entity.ResponseRecord{record})

	// accuracy 0 and the time cap leave no effectiveness at all
	assertFloat(t, "verbal effectiveness", snapshot.LearningStyle.StyleEffectiveness[entity.StyleVerbal], 0)
}

func TestAnalyzeIdempotent(t *testing.T) {
	outcomes := []bool{true, false, true, true, false, true, false, false, true, true, true, false}
	records := append(
		categoryRecords("Pharmacology", entity.DifficultyIntermediate, outcomes),
		categoryRecords("Pediatrics", entity.DifficultyBeginner, outcomes)...,
	)
	for i := range records {
		records[i].QuestionText = "Review the chart and practice the exercise"
	}

	analyzer := NewPatternAnalyzer()
	first, err := json.Marshal(analyzer.Analyze(records))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(analyzer.Analyze(records))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Error("two analyses of the same window must serialize identically")
	}
}

func TestWindowCap(t *testing.T) {
	records := make([]entity.ResponseRecord, 0, 150)
	for i := 0; i < 150; i++ {
		// Newest 100 all correct, the overflow all wrong.
		records = append(records, makeRecord("", i < 100, "", analyzerBase.Add(time.Duration(i)*time.Minute), 10))
	}

	snapshot := NewPatternAnalyzer().Analyze(records)

	assertFloat(t, "overall", snapshot.Accuracy.Overall, 100)
}
