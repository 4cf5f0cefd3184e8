package postgres

import (
	"orderflow/internal/adapters/out/postgres/actionrepo"
	"orderflow/internal/adapters/out/postgres/notificationrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Tables lists the tables created by Migrate.
var Tables = []string{"orders", "actions", "notifications", "users"}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&actionrepo.ActionDTO{},
		&notificationrepo.NotificationDTO{},
		&userrepo.UserDTO{},
	)
}
