package project

import (
	"time"

	errors "github.com/teampulse/teampulse/internal"
	"github.com/teampulse/teampulse/internal/core/common/validation"
)

type CreateProjectDTO struct {
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	ManagerID   *int64     `json:"manager_id,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

func (d CreateProjectDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("code", d.Code).Required().MaxLength(50).CodeToken()
	v.Field("status", d.Status).OneOf(errors.ErrCodeInvalidStatus, Statuses()...)
	v.Field("dates", d.StartDate).Custom(func(interface{}) *errors.AppError {
		if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
			return errors.NewValidationFieldError("end_date", "end_date must not precede start_date", errors.ErrCodeInvalidDateRange)
		}
		return nil
	})
	return v.Validate()
}

type CreateTeamDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LeadID      *int64 `json:"lead_id,omitempty"`
}

func (d CreateTeamDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	return v.Validate()
}

// ReplaceMembersDTO carries the complete desired member set for a project or
// team. Last write wins between concurrent editors.
type ReplaceMembersDTO struct {
	UserIDs []int64 `json:"user_ids"`
}
