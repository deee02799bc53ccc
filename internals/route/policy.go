package routes

import (
	"bisig_backend/internals/constants"
	"bisig_backend/internals/middlewares/auth"
)

var (
	all       = auth.Allow("", constants.AllRoles...)
	officials = auth.Allow("Forbidden - barangay officials only", constants.OfficialRoles...)
	finance   = auth.Allow("Forbidden - finance officers only", constants.FinanceRoles...)
	adminTier = auth.Allow("Forbidden - administrators only", constants.AdminTierRoles...)
	admin     = auth.Allow("Forbidden - system administrator only", constants.AdminOnly...)
)

// Policy is the access table for every /api route. Routes missing here are
// denied by the guard and reported at startup.
var Policy = auth.Policy{
	// auth
	"POST /api/auth/register": auth.Public(),
	"POST /api/auth/login":    auth.Public(),
	"POST /api/auth/google":   auth.Public(),
	"POST /api/auth/logout":   all,
	"GET /api/auth/me":        all,
	"PATCH /api/auth/me":      all,

	// users
	"GET /api/users":                           adminTier,
	"POST /api/users":                          admin,
	"GET /api/users/:id":                       adminTier,
	"PATCH /api/users/:id":                     admin,
	"GET /api/users/:id/financial-permissions": adminTier,
	"PUT /api/users/:id/financial-permissions": adminTier,

	// residents & households
	"GET /api/residents":         all,
	"POST /api/residents":        officials,
	"GET /api/residents/:id":     all,
	"PUT /api/residents/:id":     officials,
	"DELETE /api/residents/:id":  officials,
	"GET /api/households":        all,
	"POST /api/households":       officials,
	"GET /api/households/:id":    all,
	"PUT /api/households/:id":    officials,
	"DELETE /api/households/:id": officials,

	// certificates
	"GET /api/certificates":                              all,
	"POST /api/certificates":                             officials,
	"GET /api/certificates/:id":                          all,
	"PUT /api/certificates/:id/status":                   officials,
	"GET /api/certificates/:id/qr":                       all,
	"DELETE /api/certificates/:id":                       admin,
	"GET /api/public/certificates/verify/:controlNumber": auth.Public(),
	"GET /api/settings/certificates":                     all,
	"PUT /api/settings/certificates":                     officials,

	// blotter
	"GET /api/blotter":                         officials,
	"POST /api/blotter":                        officials,
	"GET /api/blotter/:id":                     officials,
	"PUT /api/blotter/:id":                     officials,
	"DELETE /api/blotter/:id":                  admin,
	"PATCH /api/blotter/:id/status":            officials,
	"POST /api/blotter/:id/filing-fee":         all,
	"GET /api/blotter/:id/history":             officials,
	"POST /api/blotter/:id/parties":            officials,
	"DELETE /api/blotter/:id/parties/:partyId": officials,
	"GET /api/blotter/:id/hearings":            officials,
	"POST /api/blotter/:id/hearings":           officials,
	"PUT /api/blotter/:id/hearings/:hearingId": officials,
	"GET /api/blotter/:id/attachments":         officials,
	"POST /api/blotter/:id/attachments":        officials,

	// fiscal years
	"GET /api/fiscal-years":                all,
	"POST /api/fiscal-years":               finance,
	"GET /api/fiscal-years/active":         all,
	"GET /api/fiscal-years/:id":            all,
	"PUT /api/fiscal-years/:id":            finance,
	"PATCH /api/fiscal-years/:id/activate": finance,
	"DELETE /api/fiscal-years/:id":         admin,

	// budgets
	"GET /api/budget-categories":        all,
	"POST /api/budget-categories":       finance,
	"PUT /api/budget-categories/:id":    finance,
	"DELETE /api/budget-categories/:id": finance,
	"GET /api/budgets":                  all,
	"POST /api/budgets":                 finance,
	"GET /api/budgets/:id":              all,
	"PUT /api/budgets/:id":              finance,
	"DELETE /api/budgets/:id":           finance,

	// suppliers
	"GET /api/suppliers":        all,
	"POST /api/suppliers":       finance,
	"GET /api/suppliers/:id":    all,
	"PUT /api/suppliers/:id":    finance,
	"DELETE /api/suppliers/:id": finance,

	// investment programs
	"GET /api/aip":                      all,
	"POST /api/aip":                     finance,
	"GET /api/aip/:id":                  all,
	"PUT /api/aip/:id":                  finance,
	"DELETE /api/aip/:id":               finance,
	"POST /api/aip/:id/projects":        finance,
	"GET /api/projects/:id":             all,
	"PUT /api/projects/:id":             finance,
	"DELETE /api/projects/:id":          finance,
	"POST /api/projects/:id/milestones": finance,
	"PUT /api/milestones/:id":           finance,
	"DELETE /api/milestones/:id":        finance,

	// expenses
	"GET /api/expenses":              finance,
	"POST /api/expenses":             finance,
	"GET /api/expenses/:id":          finance,
	"PUT /api/expenses/:id":          finance,
	"DELETE /api/expenses/:id":       finance,
	"POST /api/expenses/:id/approve": finance,
	"POST /api/expenses/:id/reject":  finance,

	// insights
	"GET /api/insights/budget-variance": finance,
	"GET /api/insights/project-risk":    finance,
	"GET /api/insights/forecast":        finance,
	"GET /api/insights/recommendations": finance,

	// uploads
	"POST /api/uploads":    all,
	"GET /api/uploads/:id": all,

	// reports
	"GET /api/reports/residents":    officials,
	"GET /api/reports/certificates": officials,
	"GET /api/reports/summary":      all,
}
