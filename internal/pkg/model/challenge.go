package model

import (
	"time"
)

type Challenge struct {
	Id                   string          `gorm:"primaryKey" json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	CreatedBy            string          `json:"createdBy"`
	Status               ChallengeStatus `json:"status"`
	GifUrl               *string         `json:"gifUrl"`
	IsPublic             bool            `json:"isPublic"`
	GameTypeId           *string         `json:"gameTypeId"`
	PendingOpponentScore *int            `json:"pendingOpponentScore"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

func (Challenge) TableName() string {
	return "challenge"
}
