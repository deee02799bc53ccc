package service

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	"bisig_backend/internals/features/finance/permissions/model"
	helper "bisig_backend/internals/helpers"
)

var capabilityLabels = map[string]string{
	model.CapManageBudgets:   "manage budgets",
	model.CapCreateExpenses:  "create expenses",
	model.CapApproveExpenses: "approve expenses",
	model.CapManageSuppliers: "manage suppliers",
	model.CapViewReports:     "view financial reports",
}

// Load returns the stored row, or the defaults with stored=false.
func Load(db *gorm.DB, userID uuid.UUID) (model.FinancialPermission, bool, error) {
	var p model.FinancialPermission
	err := db.Where("financial_permission_user_id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DefaultFor(userID), false, nil
	}
	if err != nil {
		return p, false, err
	}
	return p, true, nil
}

// Check enforces a capability for the caller. Admin-tier roles bypass it. When
// amount is given it must not exceed the caller's transaction ceiling.
func Check(db *gorm.DB, c *fiber.Ctx, capability string, amount *float64) error {
	if constants.IsAdminTier(helper.GetUserRole(c)) {
		return nil
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	p, _, err := Load(db.WithContext(c.UserContext()), userID)
	if err != nil {
		return helper.ErrInternal("failed to load financial permissions", err)
	}
	if !p.Has(capability) {
		return helper.ErrForbidden("You do not have permission to " + capabilityLabels[capability])
	}
	if amount != nil && p.FinancialPermissionMaxTransactionAmount != nil &&
		*amount > *p.FinancialPermissionMaxTransactionAmount {
		return helper.ErrForbidden(fmt.Sprintf("Amount exceeds your transaction limit of %.2f",
			*p.FinancialPermissionMaxTransactionAmount))
	}
	return nil
}
