package database

import (
	"github.com/nclexly/nclexly-be/internal/entity"
	"gorm.io/gorm"
)

type seedItem struct {
	ContentID        string
	Category         string
	Difficulty       string
	QuestionText     string
	Keywords             string // JSON array
	ClinicalScenarioText string
}

// ContentPoolData - starter question pool covering every category and
// difficulty tier the selector queries
var ContentPoolData = []seedItem{
	// ==================== PHARMACOLOGY ====================
	{ContentID: "phm-b-1", Category: "Pharmacology", Difficulty: "BEGINNER", QuestionText: "Which lab value should be monitored for a client receiving warfarin?", Keywords: `["anticoagulant","INR"]`},
	{ContentID: "phm-b-2", Category: "Pharmacology", Difficulty: "BEGINNER", QuestionText: "Review the diagram of medication absorption routes and identify the fastest onset.", Keywords: `["diagram","routes"]`},
	{ContentID: "phm-i-1", Category: "Pharmacology", Difficulty: "INTERMEDIATE", QuestionText: "A client on digoxin reports nausea and sees yellow halos. What is the priority action?", Keywords: `["digoxin","toxicity"]`, ClinicalScenarioText: "An 82-year-old with heart failure on 0.25 mg digoxin daily."},
	{ContentID: "phm-i-2", Category: "Pharmacology", Difficulty: "INTERMEDIATE", QuestionText: "Complete the interactive dosage calculation exercise for heparin infusion titration.", Keywords: `["practice","calculation"]`},
	{ContentID: "phm-a-1", Category: "Pharmacology", Difficulty: "ADVANCED", QuestionText: "Prioritize interventions for a client with serotonin syndrome on multiple antidepressants.", Keywords: `["serotonin","interactions"]`},
	// ==================== MEDICAL-SURGICAL ====================
	{ContentID: "med-b-1", Category: "Medical-Surgical", Difficulty: "BEGINNER", QuestionText: "Which position is appropriate for a client with suspected increased intracranial pressure?", Keywords: `["neuro","positioning"]`},
	{ContentID: "med-b-2", Category: "Medical-Surgical", Difficulty: "BEGINNER", QuestionText: "Identify the chambers of the heart on the labeled chart.", Keywords: `["chart","cardiac"]`},
	{ContentID: "med-i-1", Category: "Medical-Surgical", Difficulty: "INTERMEDIATE", QuestionText: "A post-operative client develops sudden dyspnea and chest pain. What is the priority assessment?", Keywords: `["embolism","priority"]`, ClinicalScenarioText: "Day two after total hip replacement, oxygen saturation 86 percent."},
	{ContentID: "med-a-1", Category: "Medical-Surgical", Difficulty: "ADVANCED", QuestionText: "Interpret the arterial blood gas graph and select the interventions for mixed acidosis.", Keywords: `["graph","acid-base"]`},
	// ==================== PEDIATRICS ====================
	{ContentID: "ped-b-1", Category: "Pediatrics", Difficulty: "BEGINNER", QuestionText: "At what age should an infant double their birth weight?", Keywords: `["growth","milestones"]`},
	{ContentID: "ped-i-1", Category: "Pediatrics", Difficulty: "INTERMEDIATE", QuestionText: "Work through the simulation of pediatric dehydration staging and select the correct stage.", Keywords: `["simulation","dehydration"]`},
	{ContentID: "ped-a-1", Category: "Pediatrics", Difficulty: "ADVANCED", QuestionText: "A child with epiglottitis arrives drooling and stridorous. Order the interventions.", Keywords: `["airway","emergency"]`, ClinicalScenarioText: "A 4-year-old unvaccinated child, temperature 39.8, tripod position."},
	// ==================== MATERNITY ====================
	{ContentID: "mat-b-1", Category: "Maternity", Difficulty: "BEGINNER", QuestionText: "What is a reassuring fetal heart rate baseline during labor?", Keywords: `["fetal","monitoring"]`},
	{ContentID: "mat-i-1", Category: "Maternity", Difficulty: "INTERMEDIATE", QuestionText: "Match the picture of each fetal monitoring strip to its deceleration pattern.", Keywords: `["picture","decelerations"]`},
	{ContentID: "mat-a-1", Category: "Maternity", Difficulty: "ADVANCED", QuestionText: "Prioritize care for a client with severe preeclampsia receiving magnesium sulfate.", Keywords: `["preeclampsia","magnesium"]`, ClinicalScenarioText: "34 weeks gestation, blood pressure 168/112, 3+ proteinuria, hyperreflexia."},
	// ==================== MENTAL HEALTH ====================
	{ContentID: "mh-b-1", Category: "Mental Health", Difficulty: "BEGINNER", QuestionText: "Which communication technique is most therapeutic for an anxious client?", Keywords: `["communication","anxiety"]`},
	{ContentID: "mh-i-1", Category: "Mental Health", Difficulty: "INTERMEDIATE", QuestionText: "Practice the de-escalation exercise and choose the best first response to an agitated client.", Keywords: `["exercise","de-escalation"]`},
	{ContentID: "mh-a-1", Category: "Mental Health", Difficulty: "ADVANCED", QuestionText: "A client on lithium presents with coarse tremors and confusion. Interpret the level and act.", Keywords: `["lithium","toxicity"]`},
	// ==================== FUNDAMENTALS ====================
	{ContentID: "fun-b-1", Category: "Fundamentals", Difficulty: "BEGINNER", QuestionText: "List the sequence for removing personal protective equipment.", Keywords: `["infection-control","PPE"]`},
	{ContentID: "fun-i-1", Category: "Fundamentals", Difficulty: "INTERMEDIATE", QuestionText: "Use the visual pressure-injury staging guide to stage the wound described.", Keywords: `["visual","wounds"]`, ClinicalScenarioText: "Sacral wound with full-thickness skin loss and visible adipose tissue."},
	{ContentID: "fun-a-1", Category: "Fundamentals", Difficulty: "ADVANCED", QuestionText: "Delegate tasks for a six-client assignment with one LPN and one assistive person.", Keywords: `["delegation","management"]`},
}

// SeedContentPool inserts the starter pool once; an already populated
// table is left alone.
func SeedContentPool(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.ContentItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, item := range ContentPoolData {
		row := &entity.ContentItem{
			ContentID:        item.ContentID,
			Category:         item.Category,
			Difficulty:       item.Difficulty,
			QuestionText:     item.QuestionText,
			Keywords:         item.Keywords,
			ClinicalScenario: item.ClinicalScenarioText,
		}
		if err := db.Create(row).Error; err != nil {
			return err
		}
	}

	return nil
}
