package user

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	internal "github.com/teampulse/teampulse/internal"
	assignmentDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/assignment"
	userDatamodel "github.com/teampulse/teampulse/internal/core/datamodel/user"
	"github.com/teampulse/teampulse/internal/core/events"
	"golang.org/x/crypto/bcrypt"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

// Mock RepositoryAPI for testing. The assignment graph is held as the flat
// rows the real repository query produces.
type mockUserRepository struct {
	users         map[int64]*userDatamodel.User
	assignments   map[int64][]*assignmentDatamodel.ProjectRoleAssignment
	rows          map[int64][]AssignmentRow
	teams         map[int64][]TeamMembership
	projectIDs    map[int64]struct{}
	roleIDs       map[int64]struct{}
	teamIDs       map[int64]struct{}
	nextID        int64
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	return &mockUserRepository{
		users: map[int64]*userDatamodel.User{
			1: {ID: 1, Email: "dev@example.com", Name: "Devi", PasswordHash: string(hash), IsActive: true},
		},
		assignments: make(map[int64][]*assignmentDatamodel.ProjectRoleAssignment),
		rows:        make(map[int64][]AssignmentRow),
		teams:       make(map[int64][]TeamMembership),
		projectIDs:  map[int64]struct{}{10: {}, 20: {}},
		roleIDs:     map[int64]struct{}{100: {}, 200: {}},
		teamIDs:     map[int64]struct{}{1000: {}},
		nextID:      2,
	}
}

func (m *mockUserRepository) GetAll() ([]*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	var out []*userDatamodel.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.users[id], nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.returnError {
		return m.errorToReturn
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) GetAssignments(userID int64) ([]*assignmentDatamodel.ProjectRoleAssignment, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.assignments[userID], nil
}

func (m *mockUserRepository) ReplaceAssignments(userID int64, rows []*assignmentDatamodel.ProjectRoleAssignment) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.assignments[userID] = rows
	return nil
}

func (m *mockUserRepository) GetAssignmentRows(userID int64) ([]AssignmentRow, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.rows[userID], nil
}

func (m *mockUserRepository) GetTeamMemberships(userID int64, projectID int64) ([]TeamMembership, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.teams[projectID], nil
}

func (m *mockUserRepository) CountExistingProjects(projectIDs []int64) (int64, error) {
	if m.returnError {
		return 0, m.errorToReturn
	}
	var count int64
	for _, id := range projectIDs {
		if _, ok := m.projectIDs[id]; ok {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepository) CountExistingRoles(roleIDs []int64) (int64, error) {
	if m.returnError {
		return 0, m.errorToReturn
	}
	var count int64
	for _, id := range roleIDs {
		if _, ok := m.roleIDs[id]; ok {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepository) CountExistingTeams(teamIDs []int64) (int64, error) {
	if m.returnError {
		return 0, m.errorToReturn
	}
	var count int64
	for _, id := range teamIDs {
		if _, ok := m.teamIDs[id]; ok {
			count++
		}
	}
	return count, nil
}

func row(projectID int64, projectCode string, roleID int64, roleName string, roleActive bool, permission string, permissionActive bool) AssignmentRow {
	r := AssignmentRow{
		ProjectID:     projectID,
		ProjectName:   projectCode,
		ProjectCode:   projectCode,
		ProjectStatus: "ACTIVE",
		RoleID:        roleID,
		RoleName:      roleName,
		RoleLevel:     "USER",
		RoleActive:    roleActive,
	}
	if permission != "" {
		r.PermissionName = &permission
		r.PermissionActive = &permissionActive
	}
	return r
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		service = NewService(mockRepo, events.NewEventBus(slog.Default()), bcrypt.MinCost, slog.Default())
		ctx = context.Background()
	})

	ginkgo.Describe("GetCompleteInformation", func() {
		ginkgo.Context("when the user holds roles on several projects", func() {
			ginkgo.It("should union permissions across all assignments", func() {
				// Given two projects whose roles overlap on view_projects
				mockRepo.rows[1] = []AssignmentRow{
					row(10, "ALPHA", 100, "Contributor", true, "view_projects", true),
					row(10, "ALPHA", 100, "Contributor", true, "post_updates", true),
					row(20, "BETA", 200, "Project Manager", true, "view_projects", true),
					row(20, "BETA", 200, "Project Manager", true, "manage_teams", true),
				}

				// When
				info, err := service.GetCompleteInformation(1)

				// Then commonPermissions is the deduplicated sorted union
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(info.CommonPermissions).To(gomega.Equal([]string{
					"manage_teams", "post_updates", "view_projects",
				}))
				gomega.Expect(info.Projects).To(gomega.HaveLen(2))
			})

			ginkgo.It("should group roles and permissions under their project", func() {
				mockRepo.rows[1] = []AssignmentRow{
					row(10, "ALPHA", 100, "Contributor", true, "view_projects", true),
					row(10, "ALPHA", 100, "Contributor", true, "post_updates", true),
				}
				mockRepo.teams[10] = []TeamMembership{{TeamID: 1000, TeamName: "Core"}}

				info, err := service.GetCompleteInformation(1)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(info.Projects).To(gomega.HaveLen(1))
				gomega.Expect(info.Projects[0].ProjectCode).To(gomega.Equal("ALPHA"))
				gomega.Expect(info.Projects[0].Roles).To(gomega.HaveLen(1))
				gomega.Expect(info.Projects[0].Roles[0].Permissions).To(gomega.ConsistOf("view_projects", "post_updates"))
				gomega.Expect(info.Projects[0].Teams).To(gomega.HaveLen(1))
			})
		})

		ginkgo.Context("when a role has been deactivated", func() {
			ginkgo.It("should exclude its permissions on the next fetch", func() {
				// Given an active and an inactive role
				mockRepo.rows[1] = []AssignmentRow{
					row(10, "ALPHA", 100, "Contributor", true, "view_projects", true),
					row(20, "BETA", 200, "Project Manager", false, "manage_teams", true),
				}

				// When
				info, err := service.GetCompleteInformation(1)

				// Then only the active role contributes
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(info.CommonPermissions).To(gomega.Equal([]string{"view_projects"}))
			})
		})

		ginkgo.Context("when a permission has been deactivated", func() {
			ginkgo.It("should drop it from the union and the role listing", func() {
				mockRepo.rows[1] = []AssignmentRow{
					row(10, "ALPHA", 100, "Contributor", true, "view_projects", true),
					row(10, "ALPHA", 100, "Contributor", true, "manage_projects", false),
				}

				info, err := service.GetCompleteInformation(1)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(info.CommonPermissions).To(gomega.Equal([]string{"view_projects"}))
				gomega.Expect(info.Projects[0].Roles[0].Permissions).To(gomega.Equal([]string{"view_projects"}))
			})
		})

		ginkgo.Context("when the user has zero assignments", func() {
			ginkgo.It("should return an empty union", func() {
				info, err := service.GetCompleteInformation(1)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(info.CommonPermissions).To(gomega.BeEmpty())
				gomega.Expect(info.Projects).To(gomega.BeEmpty())
			})
		})

		ginkgo.It("should include a role with no permissions as an empty list", func() {
			mockRepo.rows[1] = []AssignmentRow{
				row(10, "ALPHA", 100, "Observer", true, "", false),
			}

			info, err := service.GetCompleteInformation(1)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(info.Projects[0].Roles[0].Permissions).To(gomega.BeEmpty())
			gomega.Expect(info.CommonPermissions).To(gomega.BeEmpty())
		})

		ginkgo.It("should return not found for a missing user", func() {
			_, err := service.GetCompleteInformation(999)
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("ReplaceUserAssignments", func() {
		ginkgo.It("should round-trip the replacement set", func() {
			// Given
			teamID := int64(1000)
			dto := ReplaceAssignmentsDTO{Assignments: []Assignment{
				{ProjectID: 10, RoleID: 100, TeamID: &teamID},
				{ProjectID: 20, RoleID: 200},
			}}

			// When
			err := service.ReplaceUserAssignments(ctx, 1, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// Then
			assignments, err := service.GetUserAssignments(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(assignments).To(gomega.HaveLen(2))
			gomega.Expect(assignments[0].TeamID).ToNot(gomega.BeNil())
		})

		ginkgo.It("should accept the empty set and strip all access", func() {
			mockRepo.assignments[1] = []*assignmentDatamodel.ProjectRoleAssignment{
				{UserID: 1, ProjectID: 10, RoleID: 100},
			}

			err := service.ReplaceUserAssignments(ctx, 1, ReplaceAssignmentsDTO{})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			assignments, err := service.GetUserAssignments(1)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(assignments).To(gomega.BeEmpty())
		})

		ginkgo.It("should collapse duplicate (project, role) pairs", func() {
			dto := ReplaceAssignmentsDTO{Assignments: []Assignment{
				{ProjectID: 10, RoleID: 100},
				{ProjectID: 10, RoleID: 100},
			}}

			err := service.ReplaceUserAssignments(ctx, 1, dto)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mockRepo.assignments[1]).To(gomega.HaveLen(1))
		})

		ginkgo.It("should reject an unknown project id", func() {
			err := service.ReplaceUserAssignments(ctx, 1, ReplaceAssignmentsDTO{Assignments: []Assignment{
				{ProjectID: 999, RoleID: 100},
			}})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an unknown role id", func() {
			err := service.ReplaceUserAssignments(ctx, 1, ReplaceAssignmentsDTO{Assignments: []Assignment{
				{ProjectID: 10, RoleID: 999},
			}})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an unknown team id", func() {
			badTeam := int64(9999)
			err := service.ReplaceUserAssignments(ctx, 1, ReplaceAssignmentsDTO{Assignments: []Assignment{
				{ProjectID: 10, RoleID: 100, TeamID: &badTeam},
			}})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should return not found for a missing user", func() {
			err := service.ReplaceUserAssignments(ctx, 999, ReplaceAssignmentsDTO{})
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("CreateUser", func() {
		ginkgo.It("should hash the password and activate the account", func() {
			u, err := service.CreateUser(CreateUserDTO{
				Email:    "new@example.com",
				Name:     "New Person",
				Password: "s3cret-pass",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(u.IsActive).To(gomega.BeTrue())

			stored := mockRepo.users[u.ID]
			gomega.Expect(stored.PasswordHash).ToNot(gomega.Equal("s3cret-pass"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass"))).To(gomega.Succeed())
		})

		ginkgo.It("should reject a duplicate email", func() {
			_, err := service.CreateUser(CreateUserDTO{Email: "dev@example.com", Name: "Dup", Password: "s3cret-pass"})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject a short password", func() {
			_, err := service.CreateUser(CreateUserDTO{Email: "x@example.com", Name: "X", Password: "short"})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("DeactivateUser", func() {
		ginkgo.It("should soft-disable the account", func() {
			gomega.Expect(service.DeactivateUser(1)).To(gomega.Succeed())
			gomega.Expect(mockRepo.users[1].IsActive).To(gomega.BeFalse())
			gomega.Expect(mockRepo.users[1].UpdatedAt).To(gomega.BeTemporally("~", time.Now(), time.Second))
		})
	})
})
