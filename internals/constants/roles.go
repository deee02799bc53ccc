package constants

import "fmt"

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleCaptain    = "CAPTAIN"
	RoleSecretary  = "SECRETARY"
	RoleTreasurer  = "TREASURER"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess    = "Only the system administrator can access %s."
	ErrOnlyOfficialsCanAccess = "Only barangay officials can access %s."
	ErrOnlyFinanceCanAccess   = "Only finance officers can access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOfficials(feature string) string {
	return fmt.Sprintf(ErrOnlyOfficialsCanAccess, feature)
}

func RoleErrorFinance(feature string) string {
	return fmt.Sprintf(ErrOnlyFinanceCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSuperAdmin,
		RoleCaptain,
		RoleSecretary,
		RoleTreasurer,
	}

	// OfficialRoles may manage civic records (residents, certificates, blotter).
	OfficialRoles = []string{
		RoleSuperAdmin,
		RoleCaptain,
		RoleSecretary,
	}

	// FinanceRoles may manage budgets, AIP and expenses.
	FinanceRoles = []string{
		RoleSuperAdmin,
		RoleCaptain,
		RoleTreasurer,
	}

	// AdminTierRoles bypass per-user financial permission checks.
	AdminTierRoles = []string{
		RoleSuperAdmin,
		RoleCaptain,
	}

	AdminOnly = []string{
		RoleSuperAdmin,
	}

	UserStatuses = []string{
		StatusActive,
		StatusInactive,
	}
)

func IsValidRole(role string) bool {
	return Contains(AllRoles, role)
}

func IsAdminTier(role string) bool {
	return Contains(AdminTierRoles, role)
}

func Contains(list []string, v string) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}
