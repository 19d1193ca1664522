package user

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/teampulse/teampulse/internal"
	assignmentDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/assignment"
	userDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/user"
	"github.com/teampulse/teampulse/internal/core/events"
	"github.com/teampulse/teampulse/internal/rbac"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
	Update(u *userDatamodel.User) error
	GetAssignments(userID int64) ([]*assignmentDatamodel.ProjectRoleAssignment, error)
	ReplaceAssignments(userID int64, rows []*assignmentDatamodel.ProjectRoleAssignment) error
	GetAssignmentRows(userID int64) ([]AssignmentRow, error)
	GetTeamMemberships(userID int64, projectID int64) ([]TeamMembership, error)
	CountExistingProjects(projectIDs []int64) (int64, error)
	CountExistingRoles(roleIDs []int64) (int64, error)
	CountExistingTeams(teamIDs []int64) (int64, error)
}

type Service struct {
	repo       RepositoryAPI
	bus        *events.EventBus
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, bus *events.EventBus, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bus:        bus,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewValidationError("email already registered", internal.ErrCodeDuplicateName)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to process password", err)
	}

	data := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		Department:   dto.Department,
		Position:     dto.Position,
		EmployeeID:   dto.EmployeeID,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", data.ID, "email", data.Email)
	return FromDataModel(data), nil
}

func (s *Service) GetUsers() ([]*User, error) {
	data, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get users", "error", err)
		return nil, err
	}

	users := make([]*User, 0, len(data))
	for _, u := range data {
		users = append(users, FromDataModel(u))
	}
	return users, nil
}

func (s *Service) GetUser(userID int64) (*User, error) {
	data, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(data), nil
}

// GetCompleteInformation assembles the full user aggregate: profile, project
// participations with teams and roles, and the flattened permission union.
// The union is recomputed from the assignment graph on every call so that
// role and permission deactivations take effect on the next fetch.
func (s *Service) GetCompleteInformation(userID int64) (*CompleteInformation, error) {
	data, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, internal.ErrUserNotFound
	}

	rows, err := s.repo.GetAssignmentRows(userID)
	if err != nil {
		s.logger.Error("failed to load assignment graph", "error", err, "user_id", userID)
		return nil, err
	}

	projects, grants := foldAssignmentRows(rows)
	for i := range projects {
		memberships, err := s.repo.GetTeamMemberships(userID, projects[i].ProjectID)
		if err != nil {
			return nil, err
		}
		projects[i].Teams = memberships
	}

	return &CompleteInformation{
		User:              *FromDataModel(data),
		Projects:          projects,
		CommonPermissions: rbac.ResolveNames(grants),
	}, nil
}

// ReplaceUserAssignments swaps the user's entire assignment set for the
// supplied (project, role, team?) triples. An empty set strips the user of
// all project access.
func (s *Service) ReplaceUserAssignments(ctx context.Context, userID int64, dto ReplaceAssignmentsDTO) error {
	data, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if data == nil {
		return internal.ErrUserNotFound
	}

	assignments := dedupeAssignments(dto.Assignments)
	if err := s.checkAssignmentRefs(assignments); err != nil {
		return err
	}

	rows := make([]*assignmentDatamodel.ProjectRoleAssignment, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, &assignmentDatamodel.ProjectRoleAssignment{
			UserID:    userID,
			ProjectID: a.ProjectID,
			RoleID:    a.RoleID,
			TeamID:    a.TeamID,
		})
	}

	if err := s.repo.ReplaceAssignments(userID, rows); err != nil {
		s.logger.Error("failed to replace user assignments", "error", err, "user_id", userID)
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewUserAssignmentsReplacedEvent(userID, len(rows), actorFromContext(ctx)))
	}

	s.logger.Info("user assignments replaced", "user_id", userID, "assignment_count", len(rows))
	return nil
}

func (s *Service) GetUserAssignments(userID int64) ([]Assignment, error) {
	data, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, internal.ErrUserNotFound
	}

	rows, err := s.repo.GetAssignments(userID)
	if err != nil {
		return nil, err
	}

	assignments := make([]Assignment, 0, len(rows))
	for _, r := range rows {
		assignments = append(assignments, Assignment{
			ProjectID: r.ProjectID,
			RoleID:    r.RoleID,
			TeamID:    r.TeamID,
		})
	}
	return assignments, nil
}

func (s *Service) DeactivateUser(userID int64) error {
	data, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if data == nil {
		return internal.ErrUserNotFound
	}

	data.IsActive = false
	data.UpdatedAt = time.Now()
	if err := s.repo.Update(data); err != nil {
		s.logger.Error("failed to deactivate user", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("user deactivated", "user_id", userID)
	return nil
}

func (s *Service) checkAssignmentRefs(assignments []Assignment) error {
	projectIDs := make([]int64, 0, len(assignments))
	roleIDs := make([]int64, 0, len(assignments))
	teamIDs := make([]int64, 0)
	seenProjects := make(map[int64]struct{})
	seenRoles := make(map[int64]struct{})
	seenTeams := make(map[int64]struct{})

	for _, a := range assignments {
		if _, ok := seenProjects[a.ProjectID]; !ok {
			seenProjects[a.ProjectID] = struct{}{}
			projectIDs = append(projectIDs, a.ProjectID)
		}
		if _, ok := seenRoles[a.RoleID]; !ok {
			seenRoles[a.RoleID] = struct{}{}
			roleIDs = append(roleIDs, a.RoleID)
		}
		if a.TeamID != nil {
			if _, ok := seenTeams[*a.TeamID]; !ok {
				seenTeams[*a.TeamID] = struct{}{}
				teamIDs = append(teamIDs, *a.TeamID)
			}
		}
	}

	if len(projectIDs) > 0 {
		count, err := s.repo.CountExistingProjects(projectIDs)
		if err != nil {
			return err
		}
		if count != int64(len(projectIDs)) {
			return internal.NewValidationError("one or more project ids do not exist", internal.ErrCodeProjectNotFound)
		}
	}
	if len(roleIDs) > 0 {
		count, err := s.repo.CountExistingRoles(roleIDs)
		if err != nil {
			return err
		}
		if count != int64(len(roleIDs)) {
			return internal.NewValidationError("one or more role ids do not exist", internal.ErrCodeRoleNotFound)
		}
	}
	if len(teamIDs) > 0 {
		count, err := s.repo.CountExistingTeams(teamIDs)
		if err != nil {
			return err
		}
		if count != int64(len(teamIDs)) {
			return internal.NewValidationError("one or more team ids do not exist", internal.ErrCodeTeamNotFound)
		}
	}
	return nil
}

// foldAssignmentRows groups the flat assignment rows by project and role and
// builds the role grants the resolver consumes. Only active permissions make
// it into the per-role permission list shown on the aggregate; the grants
// keep the activity flags so the resolver applies the same filter.
func foldAssignmentRows(rows []AssignmentRow) ([]ProjectParticipation, []rbac.RoleGrant) {
	var projects []ProjectParticipation
	projectIdx := make(map[int64]int)
	type roleKey struct {
		projectID int64
		roleID    int64
	}
	roleIdx := make(map[roleKey]int)

	var grants []rbac.RoleGrant
	grantIdx := make(map[roleKey]int)

	for _, row := range rows {
		pi, ok := projectIdx[row.ProjectID]
		if !ok {
			pi = len(projects)
			projectIdx[row.ProjectID] = pi
			projects = append(projects, ProjectParticipation{
				ProjectID:   row.ProjectID,
				ProjectName: row.ProjectName,
				ProjectCode: row.ProjectCode,
				Status:      row.ProjectStatus,
			})
		}

		key := roleKey{projectID: row.ProjectID, roleID: row.RoleID}
		ri, ok := roleIdx[key]
		if !ok {
			ri = len(projects[pi].Roles)
			roleIdx[key] = ri
			projects[pi].Roles = append(projects[pi].Roles, AssignedRole{
				RoleID:      row.RoleID,
				RoleName:    row.RoleName,
				Level:       row.RoleLevel,
				IsActive:    row.RoleActive,
				Permissions: []string{},
			})

			grantIdx[key] = len(grants)
			grants = append(grants, rbac.RoleGrant{
				RoleID:     row.RoleID,
				RoleName:   row.RoleName,
				Level:      rbac.Level(row.RoleLevel),
				RoleActive: row.RoleActive,
			})
		}

		if row.PermissionName == nil {
			continue
		}
		active := row.PermissionActive != nil && *row.PermissionActive
		gi := grantIdx[key]
		grants[gi].Permissions = append(grants[gi].Permissions, rbac.GrantedPermission{
			Name:     rbac.PermissionName(*row.PermissionName),
			IsActive: active,
		})
		if active {
			projects[pi].Roles[ri].Permissions = append(projects[pi].Roles[ri].Permissions, *row.PermissionName)
		}
	}

	return projects, grants
}

func dedupeAssignments(in []Assignment) []Assignment {
	type key struct {
		projectID int64
		roleID    int64
	}
	seen := make(map[key]struct{}, len(in))
	out := make([]Assignment, 0, len(in))
	for _, a := range in {
		k := key{projectID: a.ProjectID, roleID: a.RoleID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	return out
}

func actorFromContext(ctx context.Context) int64 {
	if session, ok := internal.SessionFromContext(ctx); ok && session != nil {
		return session.UserID
	}
	return 0
}
