package model

import (
	"time"
)

type GameType struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func (GameType) TableName() string {
	return "game_type"
}
