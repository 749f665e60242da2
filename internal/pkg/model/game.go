package model

import (
	"time"
)

// Game is one recorded match outcome within a challenge. WinnerId is nil
// for draws. Mutable only by its author.
type Game struct {
	Id          string    `gorm:"primaryKey" json:"id"`
	ChallengeId string    `json:"challengeId"`
	WinnerId    *string   `json:"winnerId"`
	IsDraw      bool      `json:"isDraw"`
	Notes       string    `json:"notes"`
	GifUrl      *string   `json:"gifUrl"`
	PlayedAt    time.Time `json:"playedAt"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Game) TableName() string {
	return "challenge_game"
}
