package model

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeArchived  ChallengeStatus = "archived"
)

func (s ChallengeStatus) Valid() bool {
	switch s {
	case ChallengeActive, ChallengeCompleted, ChallengeArchived:
		return true
	}
	return false
}
