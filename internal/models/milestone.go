package models

import "gorm.io/gorm"

type Milestone struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;index"`
	Title     string `gorm:"not null"`
	Status    string `gorm:"not null;default:created"` // "created", "in_progress", "completed"

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
