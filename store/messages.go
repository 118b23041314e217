package store

import (
	"time"

	"ecochat/models"

	"gorm.io/gorm"
)

// Messages is the per-user conversation log. The user id is the sole
// scoping key for every query; it always comes from the session gate,
// never from a request body.
type Messages struct {
	db *gorm.DB
}

func NewMessages(db *gorm.DB) *Messages {
	return &Messages{db: db}
}

func (s *Messages) Append(userID uint, sender, text string) (*models.Message, error) {
	msg := models.Message{
		UserID:    userID,
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListOrdered returns all of one user's messages ascending by
// timestamp, id as tiebreaker so same-instant appends keep insertion
// order.
func (s *Messages) ListOrdered(userID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.Where("user_id = ?", userID).
		Order("timestamp asc").Order("id asc").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Clear deletes all and only the given user's messages and reports how
// many rows went away.
func (s *Messages) Clear(userID uint) (int64, error) {
	res := s.db.Unscoped().Where("user_id = ?", userID).Delete(&models.Message{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
