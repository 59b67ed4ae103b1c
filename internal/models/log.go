package models

import "time"

type Log struct {
	ID        uint      `gorm:"primaryKey"`
	ProjectID uint      `gorm:"not null;index"`
	Message   string    `gorm:"type:text;not null"`
	Date      time.Time `gorm:"autoCreateTime"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
