package user

type Permission string

const (
	// Own reports
	PermissionReportEditOwn Permission = "report.edit_own"

	// Monthly reports of others
	PermissionReportViewAll Permission = "report.view_all"
	PermissionReportApprove Permission = "report.approve"
	PermissionReportExport  Permission = "report.export"

	// Daily report review chain
	PermissionDailyReportFirstReview  Permission = "daily_report.first_review"
	PermissionDailyReportSecondReview Permission = "daily_report.second_review"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionReportEditOwn,
		PermissionReportViewAll,
		PermissionReportApprove,
		PermissionReportExport,
		PermissionDailyReportFirstReview,
		PermissionDailyReportSecondReview,
	},
	RoleApprover: {
		PermissionReportEditOwn,
		PermissionReportViewAll,
		PermissionReportApprove,
		PermissionReportExport,
	},
	RoleOfficeStaff: {
		PermissionReportEditOwn,
		PermissionReportViewAll,
		PermissionReportExport,
		PermissionDailyReportSecondReview,
	},
	RoleTrainer: {
		PermissionReportEditOwn,
		PermissionDailyReportFirstReview,
	},
	RoleEmployee: {
		PermissionReportEditOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
