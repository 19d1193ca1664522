package postgres

import (
	"github.com/teampulse/teampulse/internal/catalog"
	catalogDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetAllModules() ([]*catalogDatamodel.Module, error) {
	var modules []*catalogDatamodel.Module
	err := r.db.Order("code ASC").Find(&modules).Error
	return modules, err
}

func (r *CatalogRepository) GetModuleByID(id int64) (*catalogDatamodel.Module, error) {
	var m catalogDatamodel.Module
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *CatalogRepository) GetModuleByCode(code string) (*catalogDatamodel.Module, error) {
	var m catalogDatamodel.Module
	err := r.db.Where("code = ?", code).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *CatalogRepository) CreateModule(module *catalogDatamodel.Module) error {
	return r.db.Create(module).Error
}

func (r *CatalogRepository) UpdateModule(module *catalogDatamodel.Module) error {
	return r.db.Save(module).Error
}

func (r *CatalogRepository) GetPermissionsByModule(moduleID int64) ([]*catalogDatamodel.Permission, error) {
	var permissions []*catalogDatamodel.Permission
	err := r.db.Where("module_id = ?", moduleID).Order("name ASC").Find(&permissions).Error
	return permissions, err
}

func (r *CatalogRepository) GetPermissionByID(id int64) (*catalogDatamodel.Permission, error) {
	var p catalogDatamodel.Permission
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) GetPermissionByName(moduleID int64, name string) (*catalogDatamodel.Permission, error) {
	var p catalogDatamodel.Permission
	err := r.db.Where("module_id = ? AND name = ?", moduleID, name).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepository) CreatePermission(permission *catalogDatamodel.Permission) error {
	return r.db.Create(permission).Error
}

func (r *CatalogRepository) UpdatePermission(permission *catalogDatamodel.Permission) error {
	return r.db.Save(permission).Error
}
