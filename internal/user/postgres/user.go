package postgres

import (
	assignmentDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/assignment"
	projectDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/project"
	roleDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/role"
	userDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/user"
	"github.com/teampulse/teampulse/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("email ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) GetAssignments(userID int64) ([]*assignmentDatamodel.ProjectRoleAssignment, error) {
	var rows []*assignmentDatamodel.ProjectRoleAssignment
	err := r.db.Where("user_id = ?", userID).
		Order("project_id ASC, role_id ASC").
		Find(&rows).Error
	return rows, err
}

// ReplaceAssignments discards the user's assignment rows and writes the new
// set in one transaction.
func (r *UserRepository) ReplaceAssignments(userID int64, rows []*assignmentDatamodel.ProjectRoleAssignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&assignmentDatamodel.ProjectRoleAssignment{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// GetAssignmentRows flattens the user's assignment graph: one row per
// assignment and permission, left-joined so roles without permissions still
// appear.
func (r *UserRepository) GetAssignmentRows(userID int64) ([]user.AssignmentRow, error) {
	var rows []user.AssignmentRow
	err := r.db.Raw(`
		SELECT
			p.id          AS project_id,
			p.name        AS project_name,
			p.code        AS project_code,
			p.status      AS project_status,
			ro.id         AS role_id,
			ro.name       AS role_name,
			ro.level      AS role_level,
			ro.is_active  AS role_active,
			a.team_id     AS team_id,
			t.name        AS team_name,
			perm.name     AS permission_name,
			perm.is_active AS permission_active
		FROM project_role_assignments a
		JOIN projects p  ON p.id = a.project_id
		JOIN roles ro    ON ro.id = a.role_id
		LEFT JOIN teams t ON t.id = a.team_id
		LEFT JOIN role_permissions rp ON rp.role_id = ro.id
		LEFT JOIN permissions perm    ON perm.id = rp.permission_id
		WHERE a.user_id = ?
		ORDER BY p.code ASC, ro.name ASC, perm.name ASC`, userID).
		Scan(&rows).Error
	return rows, err
}

func (r *UserRepository) GetTeamMemberships(userID int64, projectID int64) ([]user.TeamMembership, error) {
	var memberships []user.TeamMembership
	err := r.db.Raw(`
		SELECT t.id AS team_id, t.name AS team_name
		FROM team_members tm
		JOIN teams t ON t.id = tm.team_id
		WHERE tm.user_id = ? AND t.project_id = ?
		ORDER BY t.name ASC`, userID, projectID).
		Scan(&memberships).Error
	return memberships, err
}

func (r *UserRepository) CountExistingProjects(projectIDs []int64) (int64, error) {
	var count int64
	err := r.db.Model(&projectDatamodel.Project{}).
		Where("id IN ?", projectIDs).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) CountExistingRoles(roleIDs []int64) (int64, error) {
	var count int64
	err := r.db.Model(&roleDatamodel.Role{}).
		Where("id IN ?", roleIDs).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) CountExistingTeams(teamIDs []int64) (int64, error) {
	var count int64
	err := r.db.Model(&projectDatamodel.Team{}).
		Where("id IN ?", teamIDs).
		Count(&count).Error
	return count, err
}
