package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SenderUser = "User"
	SenderBot  = "Bot"
)

type Message struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Sender    string    `gorm:"size:20;not null"` // "User" or "Bot"
	Text      string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"autoCreateTime"`
}
