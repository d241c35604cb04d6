package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storybook-client/internal/models"
)

func validDraft() models.StoryDraft {
	return models.StoryDraft{
		ChildName:   "Mia",
		ChildAge:    6,
		ChildGender: "girl",
		Interests:   []string{"Animals", "Magic"},
		Theme:       "Adventure",
		StoryLength: "short",
	}
}

func TestValidateAcceptsValidDraft(t *testing.T) {
	assert.Nil(t, Validate(validDraft()))
}

func TestValidateCollectsAllViolations(t *testing.T) {
	// Пустой драфт должен вернуть ВСЕ нарушения разом, без short-circuit.
	verr := Validate(models.StoryDraft{})
	require.NotNil(t, verr)

	assert.Contains(t, verr.Violations, "Child name must be at least 2 characters")
	assert.Contains(t, verr.Violations, "Child age must be between 3 and 12")
	assert.Contains(t, verr.Violations, "Child gender is required")
	assert.Contains(t, verr.Violations, "Story theme is required")
	assert.Contains(t, verr.Violations, "Story length is required")
	assert.Len(t, verr.Violations, 5)
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.StoryDraft)
		message string
	}{
		{"name too short", func(d *models.StoryDraft) { d.ChildName = "M" }, "Child name must be at least 2 characters"},
		{"name only spaces", func(d *models.StoryDraft) { d.ChildName = "  a  " }, "Child name must be at least 2 characters"},
		{"age below bound", func(d *models.StoryDraft) { d.ChildAge = 2 }, "Child age must be between 3 and 12"},
		{"age above bound", func(d *models.StoryDraft) { d.ChildAge = 13 }, "Child age must be between 3 and 12"},
		{"gender off enum", func(d *models.StoryDraft) { d.ChildGender = "dragon" }, "Child gender must be one of: boy, girl, other"},
		{"theme off catalog", func(d *models.StoryDraft) { d.Theme = "Bureaucracy" }, "Story theme must be from the theme catalog"},
		{"length off enum", func(d *models.StoryDraft) { d.StoryLength = "epic" }, "Story length must be one of: short, medium, long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)
			verr := Validate(draft)
			require.NotNil(t, verr)
			assert.Equal(t, []string{tt.message}, verr.Violations)
		})
	}

	t.Run("age boundaries are inclusive", func(t *testing.T) {
		for _, age := range []int{3, 12} {
			draft := validDraft()
			draft.ChildAge = age
			assert.Nil(t, Validate(draft), "age %d must be accepted", age)
		}
	})
}

func TestValidateOversizedImage(t *testing.T) {
	// Слишком большая картинка репортится независимо от прочих полей.
	draft := validDraft()
	draft.Image = &models.ImageAttachment{
		Filename: "mia.jpg",
		Data:     make([]byte, MaxImageSize+1),
	}
	verr := Validate(draft)
	require.NotNil(t, verr)
	assert.Equal(t, []string{"Image file must be smaller than 5MB"}, verr.Violations)

	// Ровно 5 MiB еще проходит.
	draft.Image.Data = make([]byte, MaxImageSize)
	assert.Nil(t, Validate(draft))
}
