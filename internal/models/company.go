package models

import "gorm.io/gorm"

type Company struct {
	gorm.Model

	Name    string `gorm:"not null"`
	Website string
	OwnerID uint `gorm:"not null;index"`

	// Relationships
	Owner     User       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Projects  []Project  `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks     []Task     `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Campaigns []Campaign `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
