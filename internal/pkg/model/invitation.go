package model

import (
	"time"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
	InvitationRevoked  InvitationStatus = "revoked"
)

// Invitation is a single-use join token. Only pending invitations can
// transition; accepted and revoked are terminal.
type Invitation struct {
	Id          string           `gorm:"primaryKey" json:"id"`
	ChallengeId string           `json:"challengeId"`
	Token       string           `json:"token"`
	InvitedBy   string           `json:"invitedBy"`
	Status      InvitationStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func (Invitation) TableName() string {
	return "challenge_invitation"
}
