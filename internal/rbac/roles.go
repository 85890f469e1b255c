package rbac

import "hotel-audit-pro/internal/users"

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleAdmin = string(users.RoleAdmin)
	RoleStaff = string(users.RoleStaff)
)

// AdminDeniedMessage is shown when staff reach an admin-only surface.
const AdminDeniedMessage = "Access Denied: The Admin Panel is restricted to administrators."

func IsAdmin(role string) bool { return role == RoleAdmin }
