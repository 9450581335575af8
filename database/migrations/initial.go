package migrations

import (
	"github.com/bistrobuzz/bistro/pkg/database"
	"github.com/bistrobuzz/bistro/pkg/migration"
)

func init() {
	migration.Register("20240501000000_users_email_unique", index{
		collection: database.Users, field: "email", name: "email_unique", unique: true,
	})
	migration.Register("20240501000001_cart_email", index{
		collection: database.Carts, field: "email", name: "email",
	})
	migration.Register("20240501000002_payments_email", index{
		collection: database.Payments, field: "email", name: "email",
	})
	migration.Register("20240501000003_menu_category", index{
		collection: database.Menu, field: "category", name: "category",
	})
}
