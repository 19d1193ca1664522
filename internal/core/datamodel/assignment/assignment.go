package assignment

import "time"

// ProjectRoleAssignment links a user to a role within one project. Team is
// optional metadata on the assignment, not a security boundary.
type ProjectRoleAssignment struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_assignments_triple"`
	ProjectID int64     `gorm:"column:project_id;not null;uniqueIndex:idx_assignments_triple"`
	RoleID    int64     `gorm:"column:role_id;not null;uniqueIndex:idx_assignments_triple"`
	TeamID    *int64    `gorm:"column:team_id"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (ProjectRoleAssignment) TableName() string {
	return "project_role_assignments"
}
