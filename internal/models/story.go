package models

import "time"

// StoryStatus описывает жизненный цикл истории на бэкенде.
// Клиент статусы никогда не пишет, только наблюдает.
type StoryStatus string

const (
	StatusPending    StoryStatus = "pending"    // Создана, ждет очереди генерации
	StatusGenerating StoryStatus = "generating" // Идет генерация текста и иллюстраций
	StatusCompleted  StoryStatus = "completed"  // Готова, content заполнен
	StatusFailed     StoryStatus = "failed"     // Генерация завершилась ошибкой
)

// IsTerminal reports whether no further automatic transition can occur.
func (s StoryStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Story is a generated, personalized narrative artifact. The server owns
// every field; the client holds a transient, refetchable copy.
type Story struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Title        string      `json:"title"`
	Content      *string     `json:"content,omitempty"` // NULL до завершения генерации
	Status       StoryStatus `json:"status"`
	IsPublic     bool        `json:"isPublic"`
	ThumbnailURL *string     `json:"thumbnailUrl,omitempty"`
	ChildName    string      `json:"childName,omitempty"`
	ChildAge     int         `json:"childAge,omitempty"`
	ChildGender  string      `json:"childGender,omitempty"`
	Interests    []string    `json:"interests,omitempty"`
	Theme        string      `json:"theme,omitempty"`
	StoryLength  string      `json:"storyLength,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// StoryPage is a single page of a completed story. PageNumber is 1-based
// and dense per story; ordering is the server's job, sorting is ours.
type StoryPage struct {
	ID         string      `json:"id"`
	StoryID    string      `json:"storyId"`
	PageNumber int         `json:"pageNumber"`
	Title      string      `json:"title,omitempty"`
	Content    string      `json:"content"`
	ImageURL   *string     `json:"imageUrl,omitempty"`
	Status     StoryStatus `json:"status,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
