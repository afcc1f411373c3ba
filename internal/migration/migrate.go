package migration

import (
	"github.com/linkpage/linkpage-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for all tables. Existing tables are altered in
// place, so this is safe to call on every startup.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Profile{},
		&domain.Link{},
		&domain.Product{},
		&domain.SocialIcon{},
		&domain.DailyProfileStat{},
		&domain.DailyProfileSession{},
	)
}
