package story

import (
	"strings"

	"storybook-client/internal/models"
)

// MaxImageSize is the largest accepted child photo attachment.
const MaxImageSize = 5 * 1024 * 1024 // 5 MiB

// Child age bounds accepted by the creation form. One rule everywhere.
const (
	MinChildAge = 3
	MaxChildAge = 12
)

// ValidationError lists every violated field rule at once. It is produced
// locally, before any network call.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid story draft: " + strings.Join(e.Violations, "; ")
}

// Validate checks a draft against the form rules. All violations are
// collected, not short-circuited; a nil return means the draft is valid.
func Validate(draft models.StoryDraft) *ValidationError {
	var violations []string

	if len(strings.TrimSpace(draft.ChildName)) < 2 {
		violations = append(violations, "Child name must be at least 2 characters")
	}
	if draft.ChildAge < MinChildAge || draft.ChildAge > MaxChildAge {
		violations = append(violations, "Child age must be between 3 and 12")
	}
	if draft.ChildGender == "" {
		violations = append(violations, "Child gender is required")
	} else if !validGender(draft.ChildGender) {
		violations = append(violations, "Child gender must be one of: boy, girl, other")
	}
	if draft.Theme == "" {
		violations = append(violations, "Story theme is required")
	} else if !validTheme(draft.Theme) {
		violations = append(violations, "Story theme must be from the theme catalog")
	}
	if draft.StoryLength == "" {
		violations = append(violations, "Story length is required")
	} else if !validLength(draft.StoryLength) {
		violations = append(violations, "Story length must be one of: short, medium, long")
	}
	if draft.Image != nil && len(draft.Image.Data) > MaxImageSize {
		violations = append(violations, "Image file must be smaller than 5MB")
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
