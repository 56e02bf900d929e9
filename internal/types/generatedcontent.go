package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GeneratedContent caches one generated lesson per (topic, difficulty, user).
// Topic is stored lowercase so cache lookups are case-insensitive.
type GeneratedContent struct {
	gorm.Model
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"not null;uniqueIndex:idx_content_key" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID"`
	Topic           string         `gorm:"not null;column:topic;uniqueIndex:idx_content_key" json:"topic"`
	DifficultyLevel string         `gorm:"not null;column:difficulty_level;uniqueIndex:idx_content_key" json:"difficulty_level"`
	Content         datatypes.JSON `gorm:"not null;column:content" json:"content"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (GeneratedContent) TableName() string {
	return "generated_content"
}
