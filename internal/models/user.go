package models

import "time"

// User represents the authenticated account as the backend reports it.
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	EmailVerified     bool   `json:"emailVerified"`
	IsAdmin           bool   `json:"isAdmin,omitempty"`
	SubscriptionLevel string `json:"subscriptionLevel,omitempty"`
}

// UserProfile is the extended account view returned by /api/auth/profile.
type UserProfile struct {
	User
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// ProfileUpdate is a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// UserStats - агрегаты по историям пользователя, только для чтения.
type UserStats struct {
	TotalStories      int `json:"totalStories"`
	PublishedStories  int `json:"publishedStories"`
	CompletedStories  int `json:"completedStories"`
	GeneratingStories int `json:"generatingStories"`
	FailedStories     int `json:"failedStories"`
}

// UserSubscription describes the current plan and remaining quota.
type UserSubscription struct {
	Level            string     `json:"level"`
	StoriesRemaining *int       `json:"storiesRemaining,omitempty"`
	ResetDate        *time.Time `json:"resetDate,omitempty"`
	IsPremium        bool       `json:"isPremium"`
}

// HasReachedLimit reports whether the plan allows no more story creations.
func (s *UserSubscription) HasReachedLimit() bool {
	return s.StoriesRemaining != nil && *s.StoriesRemaining <= 0
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// AuthVerification is returned by GET /api/auth/verify.
type AuthVerification struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}
