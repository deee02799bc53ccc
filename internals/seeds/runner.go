package seeds

import (
	"gorm.io/gorm"

	"bisig_backend/internals/configs"
	"bisig_backend/internals/seeds/finance/budget_categories"
	"bisig_backend/internals/seeds/users/admin"
)

// RunAllSeeds loads the first administrator (SEED_ADMIN_*) and the default
// budget categories. Safe to run repeatedly.
func RunAllSeeds(db *gorm.DB) error {
	//* User
	if email := configs.GetEnv("SEED_ADMIN_EMAIL"); email != "" {
		if _, err := admin.SeedSuperAdmin(db,
			configs.GetEnv("SEED_ADMIN_NAME"),
			email,
			configs.GetEnv("SEED_ADMIN_PASSWORD"),
		); err != nil {
			return err
		}
	}

	//* Finance
	if _, err := budget_categories.SeedBudgetCategoriesFromJSON(db, configs.GetEnv("SEED_BUDGET_CATEGORIES_FILE")); err != nil {
		return err
	}
	return nil
}
