// Package rbac defines the role and permission model for the gateway.
package rbac

// Roles known to the service.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Permissions gate individual operations.
const (
	PermScalesView      = "scales:view"
	PermResponsesSubmit = "responses:submit"
	PermScoreCompute    = "score:compute"
	PermPackageCreate   = "package:create"
	PermPackageDownload = "package:download"
	PermResultsView     = "results:view"
	PermEventsView      = "events:view"
)

// RolePermissions maps each role to the permissions it grants.
var RolePermissions = map[string][]string{
	RoleStudent: {
		PermScalesView,
		PermResponsesSubmit,
	},
	RoleTeacher: {
		PermScalesView,
		PermResponsesSubmit,
		PermScoreCompute,
		PermPackageCreate,
		PermPackageDownload,
		PermResultsView,
	},
	RoleAdmin: {
		PermScalesView,
		PermResponsesSubmit,
		PermScoreCompute,
		PermPackageCreate,
		PermPackageDownload,
		PermResultsView,
		PermEventsView,
	},
}
