package model

type UserPreference struct {
	UserId               string `gorm:"primaryKey" json:"userId"`
	ShowPublicProfilePic bool   `json:"showPublicProfilePic"`
}

func (UserPreference) TableName() string {
	return "user_preference"
}
