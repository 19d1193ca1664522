package role

import (
	errors "github.com/teampulse/teampulse/internal"
	"github.com/teampulse/teampulse/internal/core/common/validation"
	"github.com/teampulse/teampulse/internal/rbac"
)

type CreateRoleDTO struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Level         string  `json:"level"`
	PermissionIDs []int64 `json:"permission_ids"`
}

func (d CreateRoleDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("level", d.Level).Required().OneOf(errors.ErrCodeInvalidLevel,
		string(rbac.LevelUser), string(rbac.LevelManager), string(rbac.LevelAdmin), string(rbac.LevelSuperAdmin))
	return v.Validate()
}

// ReplaceRolePermissionsDTO carries the complete desired permission set.
// This is a full replace, not an incremental add/remove; concurrent editors
// race last-write-wins.
type ReplaceRolePermissionsDTO struct {
	PermissionIDs []int64 `json:"permission_ids"`
}
