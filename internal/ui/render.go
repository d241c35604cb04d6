// Package ui renders resolved client state for the terminal. Pure view
// glue: no fetching, no state of its own.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"storybook-client/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	badgeStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	// Цвета статусов повторяют веб-версию: generating желтый,
	// completed зеленый, failed красный, остальное серое.
	statusColors = map[models.StoryStatus]lipgloss.Color{
		models.StatusPending:    lipgloss.Color("245"),
		models.StatusGenerating: lipgloss.Color("220"),
		models.StatusCompleted:  lipgloss.Color("35"),
		models.StatusFailed:     lipgloss.Color("196"),
	}

	pageFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(72)
)

// StatusBadge renders a colored status label.
func StatusBadge(status models.StoryStatus) string {
	color, ok := statusColors[status]
	if !ok {
		color = lipgloss.Color("245")
	}
	return badgeStyle.Foreground(color).Render(string(status))
}

// StoryLine renders one row for the story list.
func StoryLine(s models.Story) string {
	title := s.Title
	if title == "" {
		title = fmt.Sprintf("Story for %s", s.ChildName)
	}
	return fmt.Sprintf("%s  %s  %s %s",
		dimStyle.Render(s.ID),
		StatusBadge(s.Status),
		titleStyle.Render(title),
		dimStyle.Render(s.CreatedAt.Format("2006-01-02")))
}

// StoryDetail renders a full story card.
func StoryDetail(s models.Story) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title))
	b.WriteString("\n")
	b.WriteString(StatusBadge(s.Status))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Child:   %s, %d (%s)\n", s.ChildName, s.ChildAge, s.ChildGender)
	fmt.Fprintf(&b, "Theme:   %s\n", s.Theme)
	fmt.Fprintf(&b, "Length:  %s\n", s.StoryLength)
	if len(s.Interests) > 0 {
		fmt.Fprintf(&b, "Likes:   %s\n", strings.Join(s.Interests, ", "))
	}
	if s.ThumbnailURL != nil {
		fmt.Fprintf(&b, "Cover:   %s\n", *s.ThumbnailURL)
	}
	if s.Content != nil {
		b.WriteString("\n")
		b.WriteString(*s.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// Page renders one story page in a frame, with its position in the book.
func Page(p models.StoryPage, index, total int) string {
	var b strings.Builder
	if p.Title != "" {
		b.WriteString(titleStyle.Render(p.Title))
		b.WriteString("\n\n")
	}
	b.WriteString(p.Content)
	if p.ImageURL != nil {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("illustration: " + *p.ImageURL))
	}
	footer := dimStyle.Render(fmt.Sprintf("page %d of %d", index+1, total))
	return pageFrame.Render(b.String()) + "\n" + footer
}

// Profile renders the account view.
func Profile(p models.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s <%s>\n", p.FirstName, p.LastName, p.Email)
	if p.EmailVerified {
		b.WriteString("email verified\n")
	} else {
		b.WriteString("email NOT verified\n")
	}
	fmt.Fprintf(&b, "member since %s\n", p.CreatedAt.Format("2006-01-02"))
	if p.LastLoginAt != nil {
		fmt.Fprintf(&b, "last login %s\n", p.LastLoginAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

// Stats renders the story aggregates.
func Stats(s models.UserStats) string {
	return fmt.Sprintf(
		"stories: %d total, %d completed, %d generating, %d failed, %d published",
		s.TotalStories, s.CompletedStories, s.GeneratingStories, s.FailedStories, s.PublishedStories)
}

// Subscription renders the plan summary.
func Subscription(s models.UserSubscription) string {
	var b strings.Builder
	fmt.Fprintf(&b, "plan: %s", s.Level)
	if s.IsPremium {
		b.WriteString(" (premium)")
	}
	b.WriteString("\n")
	if s.StoriesRemaining != nil {
		fmt.Fprintf(&b, "stories remaining: %d\n", *s.StoriesRemaining)
	}
	if s.ResetDate != nil {
		fmt.Fprintf(&b, "quota resets: %s\n", s.ResetDate.Format("2006-01-02"))
	}
	return b.String()
}
