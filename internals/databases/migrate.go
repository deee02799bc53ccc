package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	blotterModel "bisig_backend/internals/features/blotter/cases/model"
	certificateModel "bisig_backend/internals/features/certificates/certificates/model"
	settingModel "bisig_backend/internals/features/certificates/settings/model"
	aipModel "bisig_backend/internals/features/finance/aip/model"
	budgetModel "bisig_backend/internals/features/finance/budgets/model"
	expenseModel "bisig_backend/internals/features/finance/expenses/model"
	fiscalYearModel "bisig_backend/internals/features/finance/fiscal_years/model"
	permissionModel "bisig_backend/internals/features/finance/permissions/model"
	supplierModel "bisig_backend/internals/features/finance/suppliers/model"
	householdModel "bisig_backend/internals/features/residents/households/model"
	residentModel "bisig_backend/internals/features/residents/residents/model"
	uploadModel "bisig_backend/internals/features/uploads/model"
	authModel "bisig_backend/internals/features/users/auth/model"
	userModel "bisig_backend/internals/features/users/user/model"
	"bisig_backend/internals/helpers/sequence"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.TokenBlacklist{},
		&permissionModel.FinancialPermission{},
		&householdModel.HouseholdModel{},
		&residentModel.ResidentModel{},
		&sequence.Sequence{},
		&certificateModel.CertificateModel{},
		&settingModel.CertificateSettingModel{},
		&blotterModel.BlotterCaseModel{},
		&blotterModel.BlotterPartyModel{},
		&blotterModel.BlotterStatusUpdateModel{},
		&blotterModel.BlotterHearingModel{},
		&blotterModel.BlotterAttachmentModel{},
		&fiscalYearModel.FiscalYearModel{},
		&budgetModel.BudgetCategoryModel{},
		&budgetModel.BudgetModel{},
		&supplierModel.SupplierModel{},
		&aipModel.AIPModel{},
		&aipModel.ProjectModel{},
		&aipModel.MilestoneModel{},
		&expenseModel.ExpenseModel{},
		&uploadModel.UploadModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	zap.L().Info("schema migrated", zap.Int("tables", len(Models())))
	return nil
}
