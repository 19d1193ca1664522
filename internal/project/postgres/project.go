package postgres

import (
	projectDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/project"
	userDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/user"
	"github.com/teampulse/teampulse/internal/project"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetAllProjects() ([]*projectDatamodel.Project, error) {
	var projects []*projectDatamodel.Project
	err := r.db.Order("code ASC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetProjectByID(id int64) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) GetProjectByCode(code string) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.Where("code = ?", code).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) CreateProject(p *projectDatamodel.Project) error {
	return r.db.Create(p).Error
}

func (r *ProjectRepository) UpdateProject(p *projectDatamodel.Project) error {
	return r.db.Save(p).Error
}

func (r *ProjectRepository) GetTeamsByProject(projectID int64) ([]*projectDatamodel.Team, error) {
	var teams []*projectDatamodel.Team
	err := r.db.Where("project_id = ?", projectID).Order("name ASC").Find(&teams).Error
	return teams, err
}

func (r *ProjectRepository) GetTeamByID(id int64) (*projectDatamodel.Team, error) {
	var t projectDatamodel.Team
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *ProjectRepository) CreateTeam(t *projectDatamodel.Team) error {
	return r.db.Create(t).Error
}

func (r *ProjectRepository) UpdateTeam(t *projectDatamodel.Team) error {
	return r.db.Save(t).Error
}

func (r *ProjectRepository) GetProjectMemberIDs(projectID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&projectDatamodel.ProjectMember{}).
		Where("project_id = ?", projectID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// ReplaceProjectMembers deletes the project's membership rows and writes the
// new set in one transaction.
func (r *ProjectRepository) ReplaceProjectMembers(projectID int64, userIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&projectDatamodel.ProjectMember{}).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		members := make([]projectDatamodel.ProjectMember, 0, len(userIDs))
		for _, uid := range userIDs {
			members = append(members, projectDatamodel.ProjectMember{
				ProjectID: projectID,
				UserID:    uid,
			})
		}
		return tx.Create(&members).Error
	})
}

func (r *ProjectRepository) GetTeamMemberIDs(teamID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&projectDatamodel.TeamMember{}).
		Where("team_id = ?", teamID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *ProjectRepository) ReplaceTeamMembers(teamID int64, userIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&projectDatamodel.TeamMember{}).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		members := make([]projectDatamodel.TeamMember, 0, len(userIDs))
		for _, uid := range userIDs {
			members = append(members, projectDatamodel.TeamMember{
				TeamID: teamID,
				UserID: uid,
			})
		}
		return tx.Create(&members).Error
	})
}

func (r *ProjectRepository) CountExistingUsers(userIDs []int64) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("id IN ?", userIDs).
		Count(&count).Error
	return count, err
}
