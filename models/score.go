package models

import (
	"time"
)

// Game modes. The enumeration is closed: exactly these two rulesets exist.
const (
	ModePassThrough = "pass-through"
	ModeWalls       = "walls"
)

func ValidMode(mode string) bool {
	return mode == ModePassThrough || mode == ModeWalls
}

// Score is one completed game. Rows are created on submission and never
// mutated or deleted. Username is copied from the user at submission time
// and intentionally does not track later renames.
type Score struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	UserID   string    `json:"-" gorm:"index;not null"`
	Username string    `json:"username" gorm:"not null"`
	Score    int       `json:"score" gorm:"not null"`
	Mode     string    `json:"mode" gorm:"index;not null"` // "pass-through" or "walls"
	Date     time.Time `json:"date" gorm:"index"`
}
