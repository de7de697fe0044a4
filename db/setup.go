package db

import (
	"github.com/pulsecrm-dev/pulsecrm/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError maps driver unique-violation errors to gorm.ErrDuplicatedKey,
	// which the notification store relies on for the dedup index.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Company{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.Milestone{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.Campaign{},
		&models.Notification{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
