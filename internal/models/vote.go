package models

import "time"

type Vote struct {
	ID              string    `json:"id"`
	FeedbackID      string    `json:"feedbackId" db:"feedback_id"`
	VoterIdentifier string    `json:"voterIdentifier" db:"voter_identifier"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
