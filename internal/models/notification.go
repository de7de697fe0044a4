package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification is append-only: the sweep engine creates rows and reads them back
// for dedup checks, nothing updates or deletes them.
//
// DedupKey identifies what the notification is about ("task:42", "project:7",
// "conflict:2024-06-12"); DedupBucket is the UTC calendar day of creation. The
// composite unique index turns a concurrent check-then-insert race into a
// duplicate-key error instead of a double emission.
type Notification struct {
	gorm.Model

	UserID      uint   `gorm:"not null;index;uniqueIndex:idx_notification_dedup"`
	Type        string `gorm:"not null;uniqueIndex:idx_notification_dedup"`
	EntityType  string
	EntityID    *uint
	Title       string `gorm:"not null"`
	Message     string
	Meta        datatypes.JSON `gorm:"type:jsonb"`
	DedupKey    string         `gorm:"not null;uniqueIndex:idx_notification_dedup"`
	DedupBucket string         `gorm:"not null;uniqueIndex:idx_notification_dedup"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
