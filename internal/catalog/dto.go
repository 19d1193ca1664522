package catalog

import (
	errors "github.com/teampulse/teampulse/internal"
	"github.com/teampulse/teampulse/internal/core/common/validation"
	"github.com/teampulse/teampulse/internal/rbac"
)

type CreateModuleDTO struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

func (d CreateModuleDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("code", d.Code).Required().MaxLength(50).CodeToken()
	return v.Validate()
}

type CreatePermissionDTO struct {
	Name        string `json:"name"`
	ModuleID    int64  `json:"module_id"`
	Description string `json:"description,omitempty"`
	Action      string `json:"action,omitempty"`
}

func (d CreatePermissionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("module_id", d.ModuleID).Required()
	v.Field("action", d.Action).OneOf(errors.ErrCodeInvalidAction,
		string(rbac.ActionCreate), string(rbac.ActionRead), string(rbac.ActionUpdate),
		string(rbac.ActionDelete), string(rbac.ActionManage), string(rbac.ActionApprove))
	return v.Validate()
}
