package catalog

import (
	"log/slog"
	"time"

	errors "github.com/teampulse/teampulse/internal"
	catalogDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/catalog"
	"github.com/teampulse/teampulse/internal/rbac"
)

type RepositoryAPI interface {
	GetAllModules() ([]*catalogDatamodel.Module, error)
	GetModuleByID(id int64) (*catalogDatamodel.Module, error)
	GetModuleByCode(code string) (*catalogDatamodel.Module, error)
	CreateModule(module *catalogDatamodel.Module) error
	UpdateModule(module *catalogDatamodel.Module) error

	GetPermissionsByModule(moduleID int64) ([]*catalogDatamodel.Permission, error)
	GetPermissionByID(id int64) (*catalogDatamodel.Permission, error)
	GetPermissionByName(moduleID int64, name string) (*catalogDatamodel.Permission, error)
	CreatePermission(permission *catalogDatamodel.Permission) error
	UpdatePermission(permission *catalogDatamodel.Permission) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateModule registers a new permission namespace. The code must be unique
// across all modules, active or not.
func (s *Service) CreateModule(dto CreateModuleDTO) (*Module, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("module validation failed", "error", err, "code", dto.Code)
		return nil, err
	}

	existing, err := s.repo.GetModuleByCode(dto.Code)
	if err != nil {
		s.logger.Error("failed to check module code", "error", err, "code", dto.Code)
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewValidationError("module code already exists", errors.ErrCodeDuplicateCode)
	}

	module := &Module{
		Name:        dto.Name,
		Code:        dto.Code,
		Description: dto.Description,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	data := ModuleToDataModel(module)
	if err := s.repo.CreateModule(data); err != nil {
		s.logger.Error("failed to create module", "error", err, "code", dto.Code)
		return nil, err
	}
	module.ID = data.ID

	s.logger.Info("module created", "module_id", module.ID, "code", module.Code)
	return module, nil
}

// CreatePermission attaches a new capability to an active module. Name must
// be unique within the module.
func (s *Service) CreatePermission(dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("permission validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	if _, err := rbac.NewPermissionName(dto.Name); err != nil {
		return nil, errors.NewValidationError(err.Error(), errors.ErrCodeValidationFailed)
	}

	module, err := s.repo.GetModuleByID(dto.ModuleID)
	if err != nil {
		s.logger.Error("failed to look up module", "error", err, "module_id", dto.ModuleID)
		return nil, err
	}
	if module == nil {
		return nil, errors.ErrModuleNotFound
	}
	if !module.IsActive {
		return nil, errors.ErrModuleInactive
	}

	existing, err := s.repo.GetPermissionByName(dto.ModuleID, dto.Name)
	if err != nil {
		s.logger.Error("failed to check permission name", "error", err, "name", dto.Name)
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewValidationError("permission name already exists in module", errors.ErrCodeDuplicateName)
	}

	action, err := rbac.ParseAction(dto.Action)
	if err != nil {
		return nil, errors.NewValidationError(err.Error(), errors.ErrCodeInvalidAction)
	}

	permission := &Permission{
		ModuleID:    dto.ModuleID,
		Name:        dto.Name,
		Description: dto.Description,
		Action:      action,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	data := PermissionToDataModel(permission)
	if err := s.repo.CreatePermission(data); err != nil {
		s.logger.Error("failed to create permission", "error", err, "name", dto.Name)
		return nil, err
	}
	permission.ID = data.ID

	s.logger.Info("permission created", "permission_id", permission.ID, "module_id", dto.ModuleID, "name", dto.Name)
	return permission, nil
}

// DeactivateModule soft-disables a module. This does NOT cascade to its
// permissions: existing role links keep working until the permissions are
// deactivated themselves; only new permission creation under the module is
// blocked.
func (s *Service) DeactivateModule(moduleID int64) error {
	module, err := s.repo.GetModuleByID(moduleID)
	if err != nil {
		return err
	}
	if module == nil {
		return errors.ErrModuleNotFound
	}

	module.IsActive = false
	module.UpdatedAt = time.Now()
	if err := s.repo.UpdateModule(module); err != nil {
		s.logger.Error("failed to deactivate module", "error", err, "module_id", moduleID)
		return err
	}

	s.logger.Info("module deactivated", "module_id", moduleID, "code", module.Code)
	return nil
}

// DeactivatePermission soft-disables one permission; the resolver stops
// including it on the next fetch.
func (s *Service) DeactivatePermission(permissionID int64) error {
	permission, err := s.repo.GetPermissionByID(permissionID)
	if err != nil {
		return err
	}
	if permission == nil {
		return errors.ErrPermissionNotFound
	}

	permission.IsActive = false
	permission.UpdatedAt = time.Now()
	if err := s.repo.UpdatePermission(permission); err != nil {
		s.logger.Error("failed to deactivate permission", "error", err, "permission_id", permissionID)
		return err
	}

	s.logger.Info("permission deactivated", "permission_id", permissionID, "name", permission.Name)
	return nil
}

func (s *Service) GetModules() ([]*Module, error) {
	data, err := s.repo.GetAllModules()
	if err != nil {
		s.logger.Error("failed to get modules", "error", err)
		return nil, err
	}

	modules := make([]*Module, 0, len(data))
	for _, m := range data {
		modules = append(modules, ModuleFromDataModel(m))
	}
	return modules, nil
}

func (s *Service) GetModulePermissions(moduleID int64) ([]*Permission, error) {
	module, err := s.repo.GetModuleByID(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, errors.ErrModuleNotFound
	}

	data, err := s.repo.GetPermissionsByModule(moduleID)
	if err != nil {
		s.logger.Error("failed to get module permissions", "error", err, "module_id", moduleID)
		return nil, err
	}

	permissions := make([]*Permission, 0, len(data))
	for _, p := range data {
		permissions = append(permissions, PermissionFromDataModel(p))
	}
	return permissions, nil
}
