package budget_categories

import (
	_ "embed"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bisig_backend/internals/features/finance/budgets/model"
)

//go:embed data_budget_categories.json
var defaultData []byte

type categorySeed struct {
	Name        string  `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

// SeedBudgetCategoriesFromJSON inserts the categories in filePath (or the
// bundled list when filePath is empty). Existing names are skipped.
func SeedBudgetCategoriesFromJSON(db *gorm.DB, filePath string) (int64, error) {
	raw := defaultData
	if filePath != "" {
		b, err := os.ReadFile(filePath)
		if err != nil {
			return 0, err
		}
		raw = b
	}

	var seeds []categorySeed
	if err := sonic.Unmarshal(raw, &seeds); err != nil {
		return 0, err
	}
	if len(seeds) == 0 {
		return 0, nil
	}

	rows := make([]model.BudgetCategoryModel, 0, len(seeds))
	for _, s := range seeds {
		rows = append(rows, model.BudgetCategoryModel{
			BudgetCategoryName:        s.Name,
			BudgetCategoryCode:        s.Code,
			BudgetCategoryDescription: s.Description,
		})
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "budget_category_name"}},
		DoNothing: true,
	}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	zap.L().Info("budget categories seeded", zap.Int64("inserted", res.RowsAffected), zap.Int("total", len(seeds)))
	return res.RowsAffected, nil
}
