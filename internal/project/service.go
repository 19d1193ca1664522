package project

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/teampulse/teampulse/internal"
	projectDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/project"
	"github.com/teampulse/teampulse/internal/core/events"
)

type RepositoryAPI interface {
	GetAllProjects() ([]*projectDatamodel.Project, error)
	GetProjectByID(id int64) (*projectDatamodel.Project, error)
	GetProjectByCode(code string) (*projectDatamodel.Project, error)
	CreateProject(p *projectDatamodel.Project) error
	UpdateProject(p *projectDatamodel.Project) error
	GetTeamsByProject(projectID int64) ([]*projectDatamodel.Team, error)
	GetTeamByID(id int64) (*projectDatamodel.Team, error)
	CreateTeam(t *projectDatamodel.Team) error
	UpdateTeam(t *projectDatamodel.Team) error
	GetProjectMemberIDs(projectID int64) ([]int64, error)
	ReplaceProjectMembers(projectID int64, userIDs []int64) error
	GetTeamMemberIDs(teamID int64) ([]int64, error)
	ReplaceTeamMembers(teamID int64, userIDs []int64) error
	CountExistingUsers(userIDs []int64) (int64, error)
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

func (s *Service) CreateProject(dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("project validation failed", "error", err, "code", dto.Code)
		return nil, err
	}

	existing, err := s.repo.GetProjectByCode(dto.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewValidationError("project code already exists", internal.ErrCodeDuplicateCode)
	}

	status := Status(dto.Status)
	if status == "" {
		status = StatusActive
	}

	p := &Project{
		Name:        dto.Name,
		Code:        dto.Code,
		Description: dto.Description,
		Status:      status,
		ManagerID:   dto.ManagerID,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	data := ToDataModel(p)
	if err := s.repo.CreateProject(data); err != nil {
		s.logger.Error("failed to create project", "error", err, "code", dto.Code)
		return nil, err
	}
	p.ID = data.ID

	s.logger.Info("project created", "project_id", p.ID, "code", p.Code)
	return p, nil
}

func (s *Service) GetProjects() ([]*Project, error) {
	data, err := s.repo.GetAllProjects()
	if err != nil {
		s.logger.Error("failed to get projects", "error", err)
		return nil, err
	}

	projects := make([]*Project, 0, len(data))
	for _, p := range data {
		projects = append(projects, FromDataModel(p))
	}
	return projects, nil
}

func (s *Service) GetProject(projectID int64) (*Project, error) {
	data, err := s.repo.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, internal.ErrProjectNotFound
	}
	return FromDataModel(data), nil
}

func (s *Service) UpdateProjectStatus(projectID int64, status string) (*Project, error) {
	valid := false
	for _, st := range Statuses() {
		if status == st {
			valid = true
			break
		}
	}
	if !valid {
		return nil, internal.NewValidationError("unknown project status", internal.ErrCodeInvalidStatus)
	}

	data, err := s.repo.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, internal.ErrProjectNotFound
	}

	data.Status = status
	data.UpdatedAt = time.Now()
	if err := s.repo.UpdateProject(data); err != nil {
		s.logger.Error("failed to update project status", "error", err, "project_id", projectID)
		return nil, err
	}

	s.logger.Info("project status updated", "project_id", projectID, "status", status)
	return FromDataModel(data), nil
}

func (s *Service) CreateTeam(projectID int64, dto CreateTeamDTO) (*Team, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, internal.ErrProjectNotFound
	}

	t := &Team{
		ProjectID:   projectID,
		Name:        dto.Name,
		Description: dto.Description,
		LeadID:      dto.LeadID,
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	data := TeamToDataModel(t)
	if err := s.repo.CreateTeam(data); err != nil {
		s.logger.Error("failed to create team", "error", err, "project_id", projectID, "name", dto.Name)
		return nil, err
	}
	t.ID = data.ID

	s.logger.Info("team created", "team_id", t.ID, "project_id", projectID)
	return t, nil
}

func (s *Service) GetProjectTeams(projectID int64) ([]*Team, error) {
	p, err := s.repo.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, internal.ErrProjectNotFound
	}

	data, err := s.repo.GetTeamsByProject(projectID)
	if err != nil {
		return nil, err
	}

	teams := make([]*Team, 0, len(data))
	for _, t := range data {
		teams = append(teams, TeamFromDataModel(t))
	}
	return teams, nil
}

func (s *Service) GetProjectMembers(projectID int64) ([]int64, error) {
	p, err := s.repo.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, internal.ErrProjectNotFound
	}
	return s.repo.GetProjectMemberIDs(projectID)
}

// ReplaceProjectMembers swaps the project's entire membership for the
// supplied set. An empty slice clears the project.
func (s *Service) ReplaceProjectMembers(ctx context.Context, projectID int64, dto ReplaceMembersDTO) error {
	p, err := s.repo.GetProjectByID(projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return internal.ErrProjectNotFound
	}

	userIDs := dedupeIDs(dto.UserIDs)
	if err := s.checkUsersExist(userIDs); err != nil {
		return err
	}

	if err := s.repo.ReplaceProjectMembers(projectID, userIDs); err != nil {
		s.logger.Error("failed to replace project members", "error", err, "project_id", projectID)
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewProjectMembersReplacedEvent(projectID, userIDs, actorFromContext(ctx)))
	}

	s.logger.Info("project members replaced", "project_id", projectID, "member_count", len(userIDs))
	return nil
}

func (s *Service) GetTeamMembers(teamID int64) ([]int64, error) {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, internal.ErrTeamNotFound
	}
	return s.repo.GetTeamMemberIDs(teamID)
}

// ReplaceTeamMembers swaps the team's entire membership for the supplied set.
func (s *Service) ReplaceTeamMembers(ctx context.Context, teamID int64, dto ReplaceMembersDTO) error {
	t, err := s.repo.GetTeamByID(teamID)
	if err != nil {
		return err
	}
	if t == nil {
		return internal.ErrTeamNotFound
	}

	userIDs := dedupeIDs(dto.UserIDs)
	if err := s.checkUsersExist(userIDs); err != nil {
		return err
	}

	if err := s.repo.ReplaceTeamMembers(teamID, userIDs); err != nil {
		s.logger.Error("failed to replace team members", "error", err, "team_id", teamID)
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewTeamMembersReplacedEvent(teamID, userIDs, actorFromContext(ctx)))
	}

	s.logger.Info("team members replaced", "team_id", teamID, "member_count", len(userIDs))
	return nil
}

func (s *Service) checkUsersExist(userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	count, err := s.repo.CountExistingUsers(userIDs)
	if err != nil {
		return err
	}
	if count != int64(len(userIDs)) {
		return internal.NewValidationError("one or more user ids do not exist", internal.ErrCodeUserNotFound)
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
