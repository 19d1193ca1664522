package rbac

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestRBAC(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "RBAC Core Suite")
}

var _ = ginkgo.Describe("Level", func() {
	ginkgo.Describe("ParseLevel", func() {
		ginkgo.It("should accept every defined level", func() {
			for _, l := range Levels() {
				parsed, err := ParseLevel(string(l))
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(parsed).To(gomega.Equal(l))
			}
		})

		ginkgo.It("should reject unknown levels", func() {
			_, err := ParseLevel("OWNER")
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject lowercase variants", func() {
			_, err := ParseLevel("admin")
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject the empty string", func() {
			_, err := ParseLevel("")
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Rank", func() {
		ginkgo.It("should order levels USER < MANAGER < ADMIN < SUPER_ADMIN", func() {
			gomega.Expect(LevelUser.Rank()).To(gomega.BeNumerically("<", LevelManager.Rank()))
			gomega.Expect(LevelManager.Rank()).To(gomega.BeNumerically("<", LevelAdmin.Rank()))
			gomega.Expect(LevelAdmin.Rank()).To(gomega.BeNumerically("<", LevelSuperAdmin.Rank()))
		})

		ginkgo.It("should rank an invalid level at zero", func() {
			gomega.Expect(Level("").Rank()).To(gomega.Equal(0))
			gomega.Expect(Level("OWNER").Rank()).To(gomega.Equal(0))
		})
	})
})

var _ = ginkgo.Describe("PermissionName", func() {
	ginkgo.It("should accept a plain name", func() {
		name, err := NewPermissionName("manage_projects")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(name.String()).To(gomega.Equal("manage_projects"))
	})

	ginkgo.It("should reject the empty string", func() {
		_, err := NewPermissionName("")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})

	ginkgo.It("should reject whitespace-padded names", func() {
		_, err := NewPermissionName(" manage_projects")
		gomega.Expect(err).To(gomega.HaveOccurred())

		_, err = NewPermissionName("manage_projects ")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})

var _ = ginkgo.Describe("ParseAction", func() {
	ginkgo.It("should allow the empty action", func() {
		a, err := ParseAction("")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(a).To(gomega.Equal(Action("")))
	})

	ginkgo.It("should accept the defined tags", func() {
		for _, raw := range []string{"CREATE", "READ", "UPDATE", "DELETE", "MANAGE", "APPROVE"} {
			_, err := ParseAction(raw)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		}
	})

	ginkgo.It("should reject unknown tags", func() {
		_, err := ParseAction("EXECUTE")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})

var _ = ginkgo.Describe("Resolve", func() {
	grant := func(active bool, names ...string) RoleGrant {
		g := RoleGrant{RoleID: 1, RoleName: "r", Level: LevelUser, RoleActive: active}
		for _, n := range names {
			g.Permissions = append(g.Permissions, GrantedPermission{Name: PermissionName(n), IsActive: true})
		}
		return g
	}

	ginkgo.It("should return the empty set for zero grants", func() {
		// Given a user with no assignments
		set := Resolve(nil)

		// Then everything is denied
		gomega.Expect(set).To(gomega.BeEmpty())
		gomega.Expect(CheckPermission(&Session{Permissions: set}, "view_projects")).
			To(gomega.Equal(DecisionUnauthorized))
	})

	ginkgo.It("should deduplicate permissions shared across roles", func() {
		// Given two roles that both carry view_projects
		grants := []RoleGrant{
			grant(true, "view_projects", "post_updates"),
			grant(true, "view_projects", "manage_teams"),
		}

		// When
		names := ResolveNames(grants)

		// Then the union holds each name once, sorted
		gomega.Expect(names).To(gomega.Equal([]string{"manage_teams", "post_updates", "view_projects"}))
	})

	ginkgo.It("should be idempotent over duplicate grants", func() {
		g := grant(true, "view_projects")
		once := ResolveNames([]RoleGrant{g})
		thrice := ResolveNames([]RoleGrant{g, g, g})

		gomega.Expect(thrice).To(gomega.Equal(once))
	})

	ginkgo.It("should skip inactive roles entirely", func() {
		grants := []RoleGrant{
			grant(true, "view_projects"),
			grant(false, "manage_users", "manage_roles"),
		}

		gomega.Expect(ResolveNames(grants)).To(gomega.Equal([]string{"view_projects"}))
	})

	ginkgo.It("should skip inactive permissions inside an active role", func() {
		g := RoleGrant{
			RoleID:     7,
			RoleActive: true,
			Permissions: []GrantedPermission{
				{Name: "view_projects", IsActive: true},
				{Name: "manage_projects", IsActive: false},
			},
		}

		gomega.Expect(ResolveNames([]RoleGrant{g})).To(gomega.Equal([]string{"view_projects"}))
	})

	ginkgo.It("should bound the union size by the catalog, not the assignment count", func() {
		// Given many assignments over the same two permissions
		var grants []RoleGrant
		for i := 0; i < 50; i++ {
			grants = append(grants, grant(true, "view_projects", "post_updates"))
		}

		gomega.Expect(Resolve(grants)).To(gomega.HaveLen(2))
	})
})

var _ = ginkgo.Describe("Guard", func() {
	ginkgo.Describe("CheckLevels", func() {
		session := func(level Level) *Session {
			return &Session{UserID: 1, Email: "user@example.com", Level: level}
		}

		ginkgo.It("should report unauthenticated for a nil session", func() {
			gomega.Expect(CheckLevels(nil, LevelAdmin)).To(gomega.Equal(DecisionUnauthenticated))
		})

		ginkgo.It("should authorize a level on the allow-list", func() {
			decision := CheckLevels(session(LevelAdmin), LevelAdmin, LevelSuperAdmin)
			gomega.Expect(decision).To(gomega.Equal(DecisionAuthorized))
			gomega.Expect(decision.Allowed()).To(gomega.BeTrue())
		})

		ginkgo.It("should deny every level below a SUPER_ADMIN-only gate", func() {
			for _, l := range []Level{LevelUser, LevelManager, LevelAdmin} {
				gomega.Expect(CheckLevels(session(l), LevelSuperAdmin)).
					To(gomega.Equal(DecisionUnauthorized), string(l))
			}
			gomega.Expect(CheckLevels(session(LevelSuperAdmin), LevelSuperAdmin)).
				To(gomega.Equal(DecisionAuthorized))
		})

		ginkgo.It("should deny an absent level without panicking", func() {
			gomega.Expect(CheckLevels(session(""), LevelUser)).To(gomega.Equal(DecisionUnauthorized))
		})

		ginkgo.It("should deny an unrecognized level without panicking", func() {
			gomega.Expect(CheckLevels(session("OWNER"), LevelUser, LevelManager, LevelAdmin, LevelSuperAdmin)).
				To(gomega.Equal(DecisionUnauthorized))
		})

		ginkgo.It("should deny when the allow-list is empty", func() {
			gomega.Expect(CheckLevels(session(LevelSuperAdmin))).To(gomega.Equal(DecisionUnauthorized))
		})
	})

	ginkgo.Describe("CheckPermission", func() {
		session := &Session{
			UserID:      1,
			Level:       LevelUser,
			Permissions: NewPermissionSet("view_projects", "post_updates"),
		}

		ginkgo.It("should report unauthenticated for a nil session", func() {
			gomega.Expect(CheckPermission(nil, "view_projects")).To(gomega.Equal(DecisionUnauthenticated))
		})

		ginkgo.It("should authorize exact members", func() {
			gomega.Expect(CheckPermission(session, "view_projects")).To(gomega.Equal(DecisionAuthorized))
		})

		ginkgo.It("should deny non-members", func() {
			gomega.Expect(CheckPermission(session, "manage_projects")).To(gomega.Equal(DecisionUnauthorized))
		})

		ginkgo.It("should match case-sensitively", func() {
			gomega.Expect(CheckPermission(session, "View_Projects")).To(gomega.Equal(DecisionUnauthorized))
		})

		ginkgo.It("should not prefix-match", func() {
			gomega.Expect(CheckPermission(session, "view")).To(gomega.Equal(DecisionUnauthorized))
			gomega.Expect(CheckPermission(session, "view_projects_all")).To(gomega.Equal(DecisionUnauthorized))
		})

		ginkgo.It("should deny everything against an empty set", func() {
			empty := &Session{UserID: 2, Permissions: NewPermissionSet()}
			gomega.Expect(CheckPermission(empty, "view_projects")).To(gomega.Equal(DecisionUnauthorized))
		})
	})

	ginkgo.Describe("Decision", func() {
		ginkgo.It("should stringify all three states", func() {
			gomega.Expect(DecisionUnauthenticated.String()).To(gomega.Equal("unauthenticated"))
			gomega.Expect(DecisionUnauthorized.String()).To(gomega.Equal("unauthorized"))
			gomega.Expect(DecisionAuthorized.String()).To(gomega.Equal("authorized"))
		})

		ginkgo.It("should only allow the authorized state", func() {
			gomega.Expect(DecisionUnauthenticated.Allowed()).To(gomega.BeFalse())
			gomega.Expect(DecisionUnauthorized.Allowed()).To(gomega.BeFalse())
			gomega.Expect(DecisionAuthorized.Allowed()).To(gomega.BeTrue())
		})
	})
})
