package models

import (
	"time"

	"gorm.io/gorm"
)

// Project has no status column; completion is derived from its milestones.
type Project struct {
	gorm.Model

	CompanyID uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Deadline  *time.Time
	Value     float64

	// Relationships
	Company     Company             `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Milestones  []Milestone         `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
