package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	HighScore    int       `json:"highScore" gorm:"not null;default:0"`
	GamesPlayed  int       `json:"gamesPlayed" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`

	// Relationships
	Scores []Score `json:"scores,omitempty" gorm:"foreignKey:UserID"`
}
