package user

import (
	errors "github.com/teampulse/teampulse/internal"
	"github.com/teampulse/teampulse/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().MaxLength(255)
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("password", d.Password).Required().MinLength(8)
	return v.Validate()
}

// ReplaceAssignmentsDTO carries the complete desired assignment set for one
// user. The previous set is discarded wholesale.
type ReplaceAssignmentsDTO struct {
	Assignments []Assignment `json:"assignments"`
}
