package postgres_test

import (
	"testing"
	"time"

	catalogDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/catalog"
	roleDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/role"
	"github.com/teampulse/teampulse/internal/role"
	rolePostgres "github.com/teampulse/teampulse/internal/role/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRolePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Postgres Suite")
}

// SQLite-compatible models for testing

type SQLiteRole struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	Level       string    `gorm:"column:level;not null"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteRole) TableName() string {
	return "roles"
}

type SQLiteRolePermission struct {
	ID           int64     `gorm:"primaryKey"`
	RoleID       int64     `gorm:"column:role_id;not null;uniqueIndex:idx_role_permissions_pair"`
	PermissionID int64     `gorm:"column:permission_id;not null;uniqueIndex:idx_role_permissions_pair"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (SQLiteRolePermission) TableName() string {
	return "role_permissions"
}

type SQLitePermission struct {
	ID          int64     `gorm:"primaryKey"`
	ModuleID    int64     `gorm:"column:module_id;not null;uniqueIndex:idx_permissions_module_name"`
	Name        string    `gorm:"column:name;not null;uniqueIndex:idx_permissions_module_name"`
	Description string    `gorm:"column:description"`
	Action      string    `gorm:"column:action"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLitePermission) TableName() string {
	return "permissions"
}

var _ = Describe("Role PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo role.RepositoryAPI
	)

	seedPermission := func(id int64, name string) {
		err := db.Create(&catalogDatamodel.Permission{
			ID:       id,
			ModuleID: 1,
			Name:     name,
			Action:   "READ",
			IsActive: true,
		}).Error
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteRole{}, &SQLiteRolePermission{}, &SQLitePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = rolePostgres.NewRoleRepository(db)

		seedPermission(1, "view_projects")
		seedPermission(2, "manage_projects")
		seedPermission(3, "manage_teams")
	})

	Describe("Create", func() {
		It("should create a role together with its permission links", func() {
			r := &roleDatamodel.Role{
				Name:     "Project Manager",
				Level:    "MANAGER",
				IsActive: true,
			}

			err := repo.Create(r, []int64{1, 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(r.ID).To(BeNumerically(">", 0))

			permissions, err := repo.GetPermissions(r.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(HaveLen(2))
		})

		It("should create a role with no permissions", func() {
			r := &roleDatamodel.Role{
				Name:     "Observer",
				Level:    "USER",
				IsActive: true,
			}

			err := repo.Create(r, nil)
			Expect(err).NotTo(HaveOccurred())

			permissions, err := repo.GetPermissions(r.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(BeEmpty())
		})

		It("should fail to create a duplicate role name", func() {
			err := repo.Create(&roleDatamodel.Role{Name: "Contributor", Level: "USER", IsActive: true}, nil)
			Expect(err).NotTo(HaveOccurred())

			err = repo.Create(&roleDatamodel.Role{Name: "Contributor", Level: "MANAGER", IsActive: true}, nil)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetByName", func() {
		BeforeEach(func() {
			err := repo.Create(&roleDatamodel.Role{Name: "Contributor", Level: "USER", IsActive: true}, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should retrieve a role by name", func() {
			result, err := repo.GetByName("Contributor")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result.Level).To(Equal("USER"))
		})

		It("should return nil for a non-existent role", func() {
			result, err := repo.GetByName("nonexistent")
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("GetPermissions", func() {
		var roleID int64

		BeforeEach(func() {
			r := &roleDatamodel.Role{Name: "Project Manager", Level: "MANAGER", IsActive: true}
			err := repo.Create(r, []int64{2, 1})
			Expect(err).NotTo(HaveOccurred())
			roleID = r.ID
		})

		It("should order permissions by name", func() {
			permissions, err := repo.GetPermissions(roleID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(HaveLen(2))
			Expect(permissions[0].Name).To(Equal("manage_projects"))
			Expect(permissions[1].Name).To(Equal("view_projects"))
		})

		It("should not leak another role's links", func() {
			other := &roleDatamodel.Role{Name: "Contributor", Level: "USER", IsActive: true}
			err := repo.Create(other, []int64{3})
			Expect(err).NotTo(HaveOccurred())

			permissions, err := repo.GetPermissions(roleID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(HaveLen(2))
		})
	})

	Describe("ReplacePermissions", func() {
		var roleID int64

		BeforeEach(func() {
			r := &roleDatamodel.Role{Name: "Project Manager", Level: "MANAGER", IsActive: true}
			err := repo.Create(r, []int64{1, 2})
			Expect(err).NotTo(HaveOccurred())
			roleID = r.ID
		})

		It("should replace the link set wholesale", func() {
			err := repo.ReplacePermissions(roleID, []int64{3})
			Expect(err).NotTo(HaveOccurred())

			permissions, err := repo.GetPermissions(roleID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(HaveLen(1))
			Expect(permissions[0].Name).To(Equal("manage_teams"))
		})

		It("should clear all links when given the empty set", func() {
			err := repo.ReplacePermissions(roleID, nil)
			Expect(err).NotTo(HaveOccurred())

			permissions, err := repo.GetPermissions(roleID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(BeEmpty())
		})

		It("should be repeatable with the same set", func() {
			err := repo.ReplacePermissions(roleID, []int64{1, 3})
			Expect(err).NotTo(HaveOccurred())
			err = repo.ReplacePermissions(roleID, []int64{1, 3})
			Expect(err).NotTo(HaveOccurred())

			permissions, err := repo.GetPermissions(roleID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(HaveLen(2))
		})
	})

	Describe("CountExistingPermissions", func() {
		It("should count only ids that exist", func() {
			count, err := repo.CountExistingPermissions([]int64{1, 2, 999})
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("should return zero for an unknown set", func() {
			count, err := repo.CountExistingPermissions([]int64{998, 999})
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(0)))
		})
	})
})
