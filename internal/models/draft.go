package models

// ImageAttachment is an optional photo of the child sent along with a
// story draft. Held fully in memory; drafts are capped at 5 MiB anyway.
type ImageAttachment struct {
	Filename string
	Data     []byte
}

// StoryDraft is the creation/update payload for a story. It is validated
// locally before any network call is made.
type StoryDraft struct {
	Title       string           `json:"title,omitempty"`
	ChildName   string           `json:"childName"`
	ChildAge    int              `json:"childAge"`
	ChildGender string           `json:"childGender"`
	Interests   []string         `json:"interests"`
	Theme       string           `json:"theme"`
	StoryLength string           `json:"storyLength"`
	IsPublic    bool             `json:"isPublic,omitempty"`
	Image       *ImageAttachment `json:"-"`
}
