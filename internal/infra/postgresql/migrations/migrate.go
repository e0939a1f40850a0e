package migrations

import (
	"github.com/ecanturk/contact-relay/internal/repository"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		createContactSubmissionsTable(),
		createNotificationRecordsTable(),
		createNotificationSettingsTable(),
		createEmailTemplatesTable(),
	})

	return m.Migrate()
}

func createContactSubmissionsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_contact_submissions",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.SubmissionModel{}); err != nil {
				return err
			}
			indexes := []string{
				`CREATE INDEX IF NOT EXISTS idx_contact_submissions_submitted_at ON contact_submissions (submitted_at DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_contact_submissions_unread ON contact_submissions (is_read) WHERE is_read = false`,
				`CREATE INDEX IF NOT EXISTS idx_contact_submissions_urgent ON contact_submissions (is_urgent) WHERE is_urgent = true`,
			}
			for _, sql := range indexes {
				if err := tx.Exec(sql).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.SubmissionModel{})
		},
	}
}

func createNotificationRecordsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_notification_records",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.NotificationRecordModel{}); err != nil {
				return err
			}
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_notification_records_status ON notification_records (status)`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.NotificationRecordModel{})
		},
	}
}

func createNotificationSettingsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_create_notification_settings",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&repository.SettingsModel{})
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.SettingsModel{})
		},
	}
}

func createEmailTemplatesTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000004_create_email_templates",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.EmailTemplateModel{}); err != nil {
				return err
			}
			// At most one active template per type.
			return tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_email_templates_active_type ON email_templates (type) WHERE is_active`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.EmailTemplateModel{})
		},
	}
}
