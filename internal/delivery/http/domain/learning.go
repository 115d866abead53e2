package domain

var (
	LEARNING_RECORD_RESPONSE_SUCCESS       = "Response recorded successfully"
	LEARNING_RECORD_RESPONSE_FAILED        = "Failed to record response"
	LEARNING_GET_PATTERNS_SUCCESS          = "Learning patterns analyzed successfully"
	LEARNING_GET_PATTERNS_FAILED           = "Failed to analyze learning patterns"
	LEARNING_GET_DIFFICULTY_SUCCESS        = "Recommended difficulty retrieved successfully"
	LEARNING_GET_DIFFICULTY_FAILED         = "Failed to retrieve recommended difficulty"
	LEARNING_SELECT_CONTENT_SUCCESS        = "Next content selected successfully"
	LEARNING_SELECT_CONTENT_FAILED         = "Failed to select next content"
	LEARNING_REVIEW_FLASHCARD_SUCCESS      = "Flashcard reviewed successfully"
	LEARNING_REVIEW_FLASHCARD_FAILED       = "Failed to review flashcard"
	LEARNING_GET_DUE_FLASHCARDS_SUCCESS    = "Due flashcards retrieved successfully"
	LEARNING_GET_DUE_FLASHCARDS_FAILED     = "Failed to retrieve due flashcards"
)
