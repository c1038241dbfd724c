package user

type Role string

const (
	RoleEmployee    Role = "employee"     // Regular employee, edits own reports
	RoleTrainer     Role = "trainer"      // First reviewer of daily reports
	RoleOfficeStaff Role = "office_staff" // Second reviewer of daily reports
	RoleApprover    Role = "approver"     // Approves monthly reports
	RoleAdmin       Role = "admin"        // Full access
)

func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// Actor is the authenticated caller of a request.
type Actor struct {
	EmployeeID string
	Role       Role
}

// CanApprove checks if the actor can approve or reject monthly reports
func (a Actor) CanApprove() bool {
	return HasPermission(a.Role, PermissionReportApprove)
}

// CanAccess reports whether the actor may read the reports of employeeID.
func (a Actor) CanAccess(employeeID string) bool {
	return a.EmployeeID == employeeID || HasPermission(a.Role, PermissionReportViewAll)
}

// IsSelf reports whether employeeID is the actor's own.
func (a Actor) IsSelf(employeeID string) bool {
	return a.EmployeeID == employeeID
}
