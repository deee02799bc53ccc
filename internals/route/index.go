package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	blotterRoute "bisig_backend/internals/features/blotter/cases/route"
	certificateRoute "bisig_backend/internals/features/certificates/certificates/route"
	certSettingRoute "bisig_backend/internals/features/certificates/settings/route"
	aipRoute "bisig_backend/internals/features/finance/aip/route"
	budgetRoute "bisig_backend/internals/features/finance/budgets/route"
	expenseRoute "bisig_backend/internals/features/finance/expenses/route"
	fiscalYearRoute "bisig_backend/internals/features/finance/fiscal_years/route"
	insightRoute "bisig_backend/internals/features/finance/insights/route"
	permissionRoute "bisig_backend/internals/features/finance/permissions/route"
	supplierRoute "bisig_backend/internals/features/finance/suppliers/route"
	reportRoute "bisig_backend/internals/features/reports/route"
	householdRoute "bisig_backend/internals/features/residents/households/route"
	residentRoute "bisig_backend/internals/features/residents/residents/route"
	uploadRoute "bisig_backend/internals/features/uploads/route"
	authRoute "bisig_backend/internals/features/users/auth/route"
	userRoute "bisig_backend/internals/features/users/user/route"
	"bisig_backend/internals/helpers/storage"
	"bisig_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes mounts every feature under /api behind the policy guard.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	BaseRoutes(app, db)

	guard := auth.Guard(db, Policy)
	store := storage.MustFromEnv()
	api := app.Group("/api")

	zap.L().Info("mounting auth & user routes")
	authRoute.AuthRoutes(api, db, guard)
	userRoute.UserRoutes(api, db, guard)
	permissionRoute.FinancialPermissionRoutes(api, db, guard)

	zap.L().Info("mounting civic routes")
	residentRoute.ResidentRoutes(api, db, guard)
	householdRoute.HouseholdRoutes(api, db, guard)
	certificateRoute.CertificateRoutes(api, db, guard)
	certSettingRoute.CertificateSettingRoutes(api, db, guard)
	blotterRoute.BlotterRoutes(api, db, guard, store)

	zap.L().Info("mounting finance routes")
	fiscalYearRoute.FiscalYearRoutes(api, db, guard)
	budgetRoute.BudgetRoutes(api, db, guard)
	supplierRoute.SupplierRoutes(api, db, guard)
	aipRoute.AIPRoutes(api, db, guard)
	expenseRoute.ExpenseRoutes(api, db, guard)
	insightRoute.InsightRoutes(api, db, guard)

	uploadRoute.UploadRoutes(api, db, guard, store)
	reportRoute.ReportRoutes(api, db, guard)

	if missing := Policy.Missing(app); len(missing) > 0 {
		zap.L().Warn("routes without access policy are denied", zap.Strings("routes", missing))
	}
}
