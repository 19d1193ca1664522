package catalog

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	internal "github.com/teampulse/teampulse/internal"
	catalogDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/catalog"
)

func TestCatalog(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Catalog Module Suite")
}

// Mock RepositoryAPI for testing
type mockCatalogRepository struct {
	modules       map[int64]*catalogDatamodel.Module
	permissions   map[int64]*catalogDatamodel.Permission
	nextID        int64
	returnError   bool
	errorToReturn error
}

func newMockCatalogRepository() *mockCatalogRepository {
	return &mockCatalogRepository{
		modules:     make(map[int64]*catalogDatamodel.Module),
		permissions: make(map[int64]*catalogDatamodel.Permission),
		nextID:      1,
	}
}

func (m *mockCatalogRepository) GetAllModules() ([]*catalogDatamodel.Module, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	var out []*catalogDatamodel.Module
	for _, mod := range m.modules {
		out = append(out, mod)
	}
	return out, nil
}

func (m *mockCatalogRepository) GetModuleByID(id int64) (*catalogDatamodel.Module, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.modules[id], nil
}

func (m *mockCatalogRepository) GetModuleByCode(code string) (*catalogDatamodel.Module, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, mod := range m.modules {
		if mod.Code == code {
			return mod, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogRepository) CreateModule(module *catalogDatamodel.Module) error {
	if m.returnError {
		return m.errorToReturn
	}
	module.ID = m.nextID
	m.nextID++
	m.modules[module.ID] = module
	return nil
}

func (m *mockCatalogRepository) UpdateModule(module *catalogDatamodel.Module) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.modules[module.ID] = module
	return nil
}

func (m *mockCatalogRepository) GetPermissionsByModule(moduleID int64) ([]*catalogDatamodel.Permission, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	var out []*catalogDatamodel.Permission
	for _, p := range m.permissions {
		if p.ModuleID == moduleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCatalogRepository) GetPermissionByID(id int64) (*catalogDatamodel.Permission, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.permissions[id], nil
}

func (m *mockCatalogRepository) GetPermissionByName(moduleID int64, name string) (*catalogDatamodel.Permission, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, p := range m.permissions {
		if p.ModuleID == moduleID && p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogRepository) CreatePermission(permission *catalogDatamodel.Permission) error {
	if m.returnError {
		return m.errorToReturn
	}
	permission.ID = m.nextID
	m.nextID++
	m.permissions[permission.ID] = permission
	return nil
}

func (m *mockCatalogRepository) UpdatePermission(permission *catalogDatamodel.Permission) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.permissions[permission.ID] = permission
	return nil
}

func (m *mockCatalogRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

var _ = ginkgo.Describe("CatalogService", func() {
	var (
		service  *Service
		mockRepo *mockCatalogRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockCatalogRepository()
		service = NewService(mockRepo, slog.Default())
	})

	ginkgo.Describe("CreateModule", func() {
		ginkgo.Context("when input is valid", func() {
			ginkgo.It("should create an active module", func() {
				// Given
				dto := CreateModuleDTO{Name: "Projects", Code: "PROJECTS"}

				// When
				module, err := service.CreateModule(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(module.ID).To(gomega.BeNumerically(">", 0))
				gomega.Expect(module.IsActive).To(gomega.BeTrue())
			})

			ginkgo.It("should accept hyphenated codes", func() {
				_, err := service.CreateModule(CreateModuleDTO{Name: "Daily Updates", Code: "DAILY-UPDATES"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})
		})

		ginkgo.Context("when input is invalid", func() {
			ginkgo.It("should reject an empty code", func() {
				_, err := service.CreateModule(CreateModuleDTO{Name: "Projects", Code: ""})
				gomega.Expect(err).To(gomega.HaveOccurred())
			})

			ginkgo.It("should reject a lowercase code", func() {
				_, err := service.CreateModule(CreateModuleDTO{Name: "Projects", Code: "projects"})
				gomega.Expect(err).To(gomega.HaveOccurred())
			})

			ginkgo.It("should reject a duplicate code", func() {
				// Given
				_, err := service.CreateModule(CreateModuleDTO{Name: "Projects", Code: "PROJECTS"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				_, err = service.CreateModule(CreateModuleDTO{Name: "Other", Code: "PROJECTS"})

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDuplicateCode))
			})
		})
	})

	ginkgo.Describe("CreatePermission", func() {
		var moduleID int64

		ginkgo.BeforeEach(func() {
			module, err := service.CreateModule(CreateModuleDTO{Name: "Projects", Code: "PROJECTS"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			moduleID = module.ID
		})

		ginkgo.It("should attach a permission to an active module", func() {
			permission, err := service.CreatePermission(CreatePermissionDTO{
				Name:     "view_projects",
				ModuleID: moduleID,
				Action:   "READ",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(permission.IsActive).To(gomega.BeTrue())
			gomega.Expect(string(permission.Action)).To(gomega.Equal("READ"))
		})

		ginkgo.It("should allow omitting the action tag", func() {
			_, err := service.CreatePermission(CreatePermissionDTO{Name: "view_projects", ModuleID: moduleID})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an unknown action tag", func() {
			_, err := service.CreatePermission(CreatePermissionDTO{
				Name:     "view_projects",
				ModuleID: moduleID,
				Action:   "EXECUTE",
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should return not found for a missing module", func() {
			_, err := service.CreatePermission(CreatePermissionDTO{Name: "view_projects", ModuleID: 999})
			gomega.Expect(err).To(gomega.Equal(internal.ErrModuleNotFound))
		})

		ginkgo.It("should refuse creation under an inactive module", func() {
			// Given
			gomega.Expect(service.DeactivateModule(moduleID)).To(gomega.Succeed())

			// When
			_, err := service.CreatePermission(CreatePermissionDTO{Name: "view_projects", ModuleID: moduleID})

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrModuleInactive))
		})

		ginkgo.It("should reject a duplicate name within the module", func() {
			_, err := service.CreatePermission(CreatePermissionDTO{Name: "view_projects", ModuleID: moduleID})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CreatePermission(CreatePermissionDTO{Name: "view_projects", ModuleID: moduleID})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should allow the same name under a different module", func() {
			other, err := service.CreateModule(CreateModuleDTO{Name: "Updates", Code: "UPDATES"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CreatePermission(CreatePermissionDTO{Name: "view", ModuleID: moduleID})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CreatePermission(CreatePermissionDTO{Name: "view", ModuleID: other.ID})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("DeactivateModule", func() {
		ginkgo.It("should not cascade to the module's permissions", func() {
			// Given a module with a permission
			module, err := service.CreateModule(CreateModuleDTO{Name: "Projects", Code: "PROJECTS"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			permission, err := service.CreatePermission(CreatePermissionDTO{Name: "view_projects", ModuleID: module.ID})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When the module is deactivated
			gomega.Expect(service.DeactivateModule(module.ID)).To(gomega.Succeed())

			// Then the permission stays active
			stored := mockRepo.permissions[permission.ID]
			gomega.Expect(stored.IsActive).To(gomega.BeTrue())
			gomega.Expect(mockRepo.modules[module.ID].IsActive).To(gomega.BeFalse())
		})

		ginkgo.It("should return not found for a missing module", func() {
			err := service.DeactivateModule(42)
			gomega.Expect(err).To(gomega.Equal(internal.ErrModuleNotFound))
		})
	})

	ginkgo.Describe("DeactivatePermission", func() {
		ginkgo.It("should soft-disable the permission", func() {
			module, err := service.CreateModule(CreateModuleDTO{Name: "Projects", Code: "PROJECTS"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			permission, err := service.CreatePermission(CreatePermissionDTO{Name: "view_projects", ModuleID: module.ID})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.DeactivatePermission(permission.ID)).To(gomega.Succeed())
			gomega.Expect(mockRepo.permissions[permission.ID].IsActive).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("GetModulePermissions", func() {
		ginkgo.It("should surface repository errors", func() {
			module, err := service.CreateModule(CreateModuleDTO{Name: "Projects", Code: "PROJECTS"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			mockRepo.setError(errors.New("database error"))
			_, err = service.GetModulePermissions(module.ID)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
