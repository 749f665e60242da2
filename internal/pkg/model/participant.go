package model

import (
	"time"
)

type ParticipantRole string

const (
	RoleCreator     ParticipantRole = "creator"
	RoleParticipant ParticipantRole = "participant"
)

// Participant rows are immutable after creation except for the score
// override fields, which keep a single-level audit trail: who changed the
// score, when, and the effective score immediately before the change.
type Participant struct {
	Id               string          `gorm:"primaryKey" json:"id"`
	ChallengeId      string          `json:"challengeId"`
	UserId           string          `json:"userId"`
	Role             ParticipantRole `json:"role"`
	ScoreOverride    *int            `json:"scoreOverride"`
	ScoreChangedBy   *string         `json:"scoreChangedBy"`
	ScoreChangedAt   *time.Time      `json:"scoreChangedAt"`
	ScoreChangedFrom *int            `json:"scoreChangedFrom"`
	JoinedAt         time.Time       `json:"joinedAt"`
}

func (Participant) TableName() string {
	return "challenge_participant"
}
