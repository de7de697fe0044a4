package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	CompanyID *uint  `gorm:"index"`
	Title     string `gorm:"not null"`
	Priority  string `gorm:"not null;default:medium"`
	Status    string `gorm:"not null;default:todo"` // "todo", "in_progress", "completed"
	DueDate   *time.Time
	// AssigneeID predates the task_assignees relation and is still written by
	// older clients; recipient resolution unions both.
	AssigneeID *uint `gorm:"index"`

	// Relationships
	Company   *Company       `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee  *User          `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Assignees []TaskAssignee `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
