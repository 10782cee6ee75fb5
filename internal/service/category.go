package service

import (
	"errors"
	"fmt"
)

// Category describes what kind of study material an upload contains. It is
// validated up front so a typo fails the request before any file is stored.
type Category string

// Known upload categories.
const (
	CategoryLectureNotes Category = "lecture_notes"
	CategoryTextbook     Category = "textbook"
	CategorySlides       Category = "slides"
	CategoryExamPrep     Category = "exam_prep"
	CategoryOther        Category = "other"
)

// ErrUnknownCategory indicates a category outside the known set.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory validates a caller-supplied category name. An empty name
// defaults to lecture notes.
func ParseCategory(name string) (Category, error) {
	switch Category(name) {
	case CategoryLectureNotes, "":
		return CategoryLectureNotes, nil
	case CategoryTextbook, CategorySlides, CategoryExamPrep, CategoryOther:
		return Category(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
}
