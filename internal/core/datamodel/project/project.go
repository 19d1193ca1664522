package project

import "time"

type Project struct {
	ID          int64      `gorm:"primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	Code        string     `gorm:"column:code;uniqueIndex;not null"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status;default:'ACTIVE'"`
	ManagerID   *int64     `gorm:"column:manager_id"`
	StartDate   *time.Time `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	IsActive    bool       `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Project) TableName() string {
	return "projects"
}

type Team struct {
	ID          int64     `gorm:"primaryKey"`
	ProjectID   int64     `gorm:"column:project_id;not null"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	LeadID      *int64    `gorm:"column:lead_id"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Team) TableName() string {
	return "teams"
}

type ProjectMember struct {
	ID        int64     `gorm:"primaryKey"`
	ProjectID int64     `gorm:"column:project_id;not null;uniqueIndex:idx_project_members_pair"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_project_members_pair"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}

type TeamMember struct {
	ID        int64     `gorm:"primaryKey"`
	TeamID    int64     `gorm:"column:team_id;not null;uniqueIndex:idx_team_members_pair"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_team_members_pair"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
