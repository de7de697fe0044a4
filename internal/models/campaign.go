package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Campaign struct {
	gorm.Model

	CompanyID *uint  `gorm:"index"`
	Name      string `gorm:"not null"`
	Status    string `gorm:"not null;default:draft"` // "draft", "in-progress", "ready", "published", "archived"
	StartDate *time.Time
	IsOngoing bool           `gorm:"not null;default:false"`
	UserID    uint           `gorm:"not null;index"` // single responsible user
	Config    datatypes.JSON `gorm:"type:jsonb"`     // channel/budget settings, opaque here

	// Relationships
	Company *Company `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
