package domain

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleSales          Role = "sales"
	RoleProjectManager Role = "project_manager"
	RoleDesigner       Role = "designer"
	RolePrinting       Role = "printing"
	RoleLogistics      Role = "logistics"
	RoleAccounts       Role = "accounts"
	RoleHR             Role = "hr"
)

// AllRoles is the closed set accepted at signup and user creation.
var AllRoles = []Role{
	RoleAdmin,
	RoleSales,
	RoleProjectManager,
	RoleDesigner,
	RolePrinting,
	RoleLogistics,
	RoleAccounts,
	RoleHR,
}

func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// CanManageProjects reports whether the role may be set as project manager.
func (r Role) CanManageProjects() bool {
	return r == RoleProjectManager || r == RoleAdmin
}

// CanWorkOn reports whether the role may be assigned tasks of the given
// type. Admin overrides every type.
func (r Role) CanWorkOn(t TaskType) bool {
	if r == RoleAdmin {
		return true
	}
	switch t {
	case TaskDesign:
		return r == RoleDesigner
	case TaskPrinting:
		return r == RolePrinting
	case TaskLogistics:
		return r == RoleLogistics
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
