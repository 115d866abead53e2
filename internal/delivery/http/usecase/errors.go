package usecase

import "errors"

var (
	// ErrInvalidQuality is returned when a review quality rating falls
	// outside 0..5. Ratings are rejected, never clamped.
	ErrInvalidQuality = errors.New("quality rating must be between 0 and 5")

	// ErrNoContent is returned when content selection produces an empty
	// pool, typically because an explicit topic has no matching items.
	ErrNoContent = errors.New("no content matches the requested filters")

	// ErrFlashcardNotFound is returned for an unknown flashcard id.
	ErrFlashcardNotFound = errors.New("flashcard not found")

	// ErrStaleSchedule is returned when a flashcard review lost a
	// concurrent read-modify-write race; the caller should re-read and
	// retry.
	ErrStaleSchedule = errors.New("flashcard schedule was modified concurrently")
)
