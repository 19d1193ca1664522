package catalog

import (
	"time"

	catalogDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/catalog"
	"github.com/teampulse/teampulse/internal/rbac"
)

// Module is a named namespace grouping permissions (e.g. PROJECT, TEAM).
type Module struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Permission struct {
	ID          int64       `json:"id"`
	ModuleID    int64       `json:"module_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Action      rbac.Action `json:"action,omitempty"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func ModuleFromDataModel(m *catalogDatamodel.Module) *Module {
	return &Module{
		ID:          m.ID,
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ModuleToDataModel(m *Module) *catalogDatamodel.Module {
	return &catalogDatamodel.Module{
		ID:          m.ID,
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func PermissionFromDataModel(p *catalogDatamodel.Permission) *Permission {
	return &Permission{
		ID:          p.ID,
		ModuleID:    p.ModuleID,
		Name:        p.Name,
		Description: p.Description,
		Action:      rbac.Action(p.Action),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func PermissionToDataModel(p *Permission) *catalogDatamodel.Permission {
	return &catalogDatamodel.Permission{
		ID:          p.ID,
		ModuleID:    p.ModuleID,
		Name:        p.Name,
		Description: p.Description,
		Action:      string(p.Action),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
