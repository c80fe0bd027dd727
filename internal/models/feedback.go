package models

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryFeature     Category = "feature"
	CategoryBug         Category = "bug"
	CategoryImprovement Category = "improvement"
	CategoryOther       Category = "other"
)

var AvailableCategories = []Category{
	CategoryFeature,
	CategoryBug,
	CategoryImprovement,
	CategoryOther,
}

type Status string

const (
	StatusNew         Status = "new"
	StatusUnderReview Status = "under_review"
	StatusPlanned     Status = "planned"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
)

var AvailableStatuses = []Status{
	StatusNew,
	StatusUnderReview,
	StatusPlanned,
	StatusInProgress,
	StatusCompleted,
}

// ParseStatus accepts only the lifecycle values a feedback item can be moved to.
func ParseStatus(s string) (Status, error) {
	for _, st := range AvailableStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func ParseCategory(s string) (Category, error) {
	for _, c := range AvailableCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

type Feedback struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"companyId" db:"company_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       Category  `json:"category"`
	Status         Status    `json:"status"`
	SubmitterEmail *string   `json:"submitterEmail,omitempty" db:"submitter_email"`
	VoteCount      int       `json:"voteCount" db:"vote_count"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// FeedbackReq is what an anonymous visitor submits on a board.
type FeedbackReq struct {
	CompanyID      string   `json:"companyId"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       Category `json:"category"`
	SubmitterEmail *string  `json:"submitterEmail,omitempty"`
}

// FeedbackFilter narrows a board listing. Empty fields are ignored.
type FeedbackFilter struct {
	CompanyID string
	Status    string
	Category  string
	Search    string
}

// FeedbackUpdate holds the only field an admin may change on an item.
// A nil Status leaves the item untouched.
type FeedbackUpdate struct {
	Status *Status `json:"status,omitempty"`
}
