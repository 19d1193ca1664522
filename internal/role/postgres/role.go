package postgres

import (
	catalogDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/catalog"
	roleDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/role"
	"github.com/teampulse/teampulse/internal/role"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll() ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByID(id int64) (*roleDatamodel.Role, error) {
	var m roleDatamodel.Role
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *RoleRepository) GetByName(name string) (*roleDatamodel.Role, error) {
	var m roleDatamodel.Role
	err := r.db.Where("name = ?", name).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// Create inserts the role and its permission links in one transaction.
func (r *RoleRepository) Create(m *roleDatamodel.Role, permissionIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return createLinks(tx, m.ID, permissionIDs)
	})
}

func (r *RoleRepository) Update(m *roleDatamodel.Role) error {
	return r.db.Save(m).Error
}

func (r *RoleRepository) GetPermissions(roleID int64) ([]*catalogDatamodel.Permission, error) {
	var permissions []*catalogDatamodel.Permission
	err := r.db.
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.name ASC").
		Find(&permissions).Error
	return permissions, err
}

// ReplacePermissions deletes the role's existing links and writes the new
// set atomically, so a reader never observes a half-replaced role.
func (r *RoleRepository) ReplacePermissions(roleID int64, permissionIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&roleDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		return createLinks(tx, roleID, permissionIDs)
	})
}

func (r *RoleRepository) CountExistingPermissions(permissionIDs []int64) (int64, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.Permission{}).
		Where("id IN ?", permissionIDs).
		Count(&count).Error
	return count, err
}

func createLinks(tx *gorm.DB, roleID int64, permissionIDs []int64) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	links := make([]roleDatamodel.RolePermission, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		links = append(links, roleDatamodel.RolePermission{
			RoleID:       roleID,
			PermissionID: pid,
		})
	}
	return tx.Create(&links).Error
}
