package user

import (
	"time"

	userDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/user"
)

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Department  string     `json:"department,omitempty"`
	Position    string     `json:"position,omitempty"`
	EmployeeID  string     `json:"employee_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Assignment is one (project, role, team?) triple. Team is descriptive
// metadata on the assignment; access follows from the role alone.
type Assignment struct {
	ProjectID int64  `json:"project_id"`
	RoleID    int64  `json:"role_id"`
	TeamID    *int64 `json:"team_id,omitempty"`
}

// ProjectParticipation is one project in the user aggregate together with
// the teams and roles the user holds there.
type ProjectParticipation struct {
	ProjectID   int64            `json:"project_id"`
	ProjectName string           `json:"project_name"`
	ProjectCode string           `json:"project_code"`
	Status      string           `json:"status"`
	Teams       []TeamMembership `json:"teams,omitempty"`
	Roles       []AssignedRole   `json:"roles"`
}

type TeamMembership struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
}

type AssignedRole struct {
	RoleID      int64    `json:"role_id"`
	RoleName    string   `json:"role_name"`
	Level       string   `json:"level"`
	IsActive    bool     `json:"is_active"`
	Permissions []string `json:"permissions"`
}

// CompleteInformation is the full user aggregate: profile, project
// participations, and the pre-flattened permission union. The union is
// recomputed from the assignment graph on every fetch, never stored.
type CompleteInformation struct {
	User              User                   `json:"user"`
	Projects          []ProjectParticipation `json:"projects"`
	CommonPermissions []string               `json:"commonPermissions"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Department:  u.Department,
		Position:    u.Position,
		EmployeeID:  u.EmployeeID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// AssignmentRow is one flattened row of the assignment graph: an assignment
// joined to its project, role, optional team and one of the role's
// permissions. Permission columns are null when the role has none.
type AssignmentRow struct {
	ProjectID        int64
	ProjectName      string
	ProjectCode      string
	ProjectStatus    string
	RoleID           int64
	RoleName         string
	RoleLevel        string
	RoleActive       bool
	TeamID           *int64
	TeamName         *string
	PermissionName   *string
	PermissionActive *bool
}
