package models

import "time"

type Project struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"size:100;not null"`
	Description *string `gorm:"type:text"`
	OwnerID     uint    `gorm:"not null;index"`
	CreatedAt   time.Time
	// Stays NULL until the first update; the store sets it explicitly.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`

	// Relationships
	Owner User  `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Logs  []Log `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
