package catalog

import "time"

type Module struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Code        string    `gorm:"column:code;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Module) TableName() string {
	return "modules"
}

// Permission belongs to exactly one module; name is unique within it.
type Permission struct {
	ID          int64     `gorm:"primaryKey"`
	ModuleID    int64     `gorm:"column:module_id;not null;uniqueIndex:idx_permissions_module_name"`
	Name        string    `gorm:"column:name;not null;uniqueIndex:idx_permissions_module_name"`
	Description string    `gorm:"column:description"`
	Action      string    `gorm:"column:action"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Permission) TableName() string {
	return "permissions"
}
