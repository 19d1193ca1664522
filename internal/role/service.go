package role

import (
	"context"
	"log/slog"
	"time"

	"github.com/teampulse/teampulse/internal"
	catalogDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/catalog"
	roleDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/role"
	"github.com/teampulse/teampulse/internal/core/events"
	"github.com/teampulse/teampulse/internal/rbac"
)

type RepositoryAPI interface {
	GetAll() ([]*roleDatamodel.Role, error)
	GetByID(id int64) (*roleDatamodel.Role, error)
	GetByName(name string) (*roleDatamodel.Role, error)
	Create(role *roleDatamodel.Role, permissionIDs []int64) error
	Update(role *roleDatamodel.Role) error
	GetPermissions(roleID int64) ([]*catalogDatamodel.Permission, error)
	ReplacePermissions(roleID int64, permissionIDs []int64) error
	CountExistingPermissions(permissionIDs []int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// CreateRole validates the level against the closed set and verifies every
// referenced permission exists before creating the bundle.
func (s *Service) CreateRole(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("role validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	level, err := rbac.ParseLevel(dto.Level)
	if err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidLevel)
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewValidationError("role name already exists", internal.ErrCodeDuplicateName)
	}

	if err := s.checkPermissionsExist(dto.PermissionIDs); err != nil {
		return nil, err
	}

	role := &Role{
		Name:          dto.Name,
		Description:   dto.Description,
		Level:         level,
		PermissionIDs: dedupeIDs(dto.PermissionIDs),
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	data := ToDataModel(role)
	if err := s.repo.Create(data, role.PermissionIDs); err != nil {
		s.logger.Error("failed to create role", "error", err, "name", dto.Name)
		return nil, err
	}
	role.ID = data.ID

	s.logger.Info("role created", "role_id", role.ID, "name", role.Name, "level", role.Level, "permissions", len(role.PermissionIDs))
	return role, nil
}

// ReplaceRolePermissions swaps the role's entire permission set for the
// supplied one. Callers send the complete desired set; an empty slice clears
// the role. Duplicate ids in the input collapse to one link.
func (s *Service) ReplaceRolePermissions(ctx context.Context, roleID int64, dto ReplaceRolePermissionsDTO) error {
	role, err := s.repo.GetByID(roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return internal.ErrRoleNotFound
	}

	permissionIDs := dedupeIDs(dto.PermissionIDs)
	if err := s.checkPermissionsExist(permissionIDs); err != nil {
		return err
	}

	if err := s.repo.ReplacePermissions(roleID, permissionIDs); err != nil {
		s.logger.Error("failed to replace role permissions", "error", err, "role_id", roleID)
		return err
	}

	actorID := actorFromContext(ctx)
	if s.bus != nil {
		s.bus.Publish(ctx, events.NewRolePermissionsReplacedEvent(roleID, permissionIDs, actorID))
	}

	s.logger.Info("role permissions replaced", "role_id", roleID, "permission_count", len(permissionIDs))
	return nil
}

// GetRolePermissions returns the permissions currently attached to a role.
func (s *Service) GetRolePermissions(roleID int64) ([]*catalogDatamodel.Permission, error) {
	role, err := s.repo.GetByID(roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, internal.ErrRoleNotFound
	}
	return s.repo.GetPermissions(roleID)
}

func (s *Service) GetRoles() ([]*Role, error) {
	data, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get roles", "error", err)
		return nil, err
	}

	roles := make([]*Role, 0, len(data))
	for _, r := range data {
		roles = append(roles, FromDataModel(r))
	}
	return roles, nil
}

// DeactivateRole soft-disables the role. Assignments referencing it survive;
// the effective permission resolver skips inactive roles on the next fetch.
func (s *Service) DeactivateRole(roleID int64) error {
	role, err := s.repo.GetByID(roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return internal.ErrRoleNotFound
	}

	role.IsActive = false
	role.UpdatedAt = time.Now()
	if err := s.repo.Update(role); err != nil {
		s.logger.Error("failed to deactivate role", "error", err, "role_id", roleID)
		return err
	}

	s.logger.Info("role deactivated", "role_id", roleID, "name", role.Name)
	return nil
}

func (s *Service) checkPermissionsExist(permissionIDs []int64) error {
	unique := dedupeIDs(permissionIDs)
	if len(unique) == 0 {
		return nil
	}

	count, err := s.repo.CountExistingPermissions(unique)
	if err != nil {
		return err
	}
	if count != int64(len(unique)) {
		return internal.NewValidationError("one or more permission ids do not exist", internal.ErrCodePermissionNotFound)
	}
	return nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func actorFromContext(ctx context.Context) int64 {
	if session, ok := internal.SessionFromContext(ctx); ok && session != nil {
		return session.UserID
	}
	return 0
}
