package role

import (
	"time"

	roleDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/role"
	"github.com/teampulse/teampulse/internal/rbac"
)

// Role bundles permissions under a named, leveled identity. The level is a
// display/sort tag only: a MANAGER role does not inherit a USER role's
// permissions, everything must be attached explicitly.
type Role struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Level         rbac.Level `json:"level"`
	PermissionIDs []int64    `json:"permission_ids,omitempty"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromDataModel(r *roleDatamodel.Role) *Role {
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Level:       rbac.Level(r.Level),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToDataModel(r *Role) *roleDatamodel.Role {
	return &roleDatamodel.Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Level:       string(r.Level),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
