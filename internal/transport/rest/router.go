package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/teampulse/teampulse/internal/auth"
	"github.com/teampulse/teampulse/internal/catalog"
	"github.com/teampulse/teampulse/internal/project"
	"github.com/teampulse/teampulse/internal/rbac"
	"github.com/teampulse/teampulse/internal/role"
	"github.com/teampulse/teampulse/internal/transport/middleware"
	"github.com/teampulse/teampulse/internal/transport/swagger"
	"github.com/teampulse/teampulse/internal/user"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, catalogHandler *catalog.Handler, roleHandler *role.Handler, projectHandler *project.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Everything past this point requires a valid session.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			// Catalog: modules and permissions. Reads are open to any
			// authenticated admin-panel user; writes are admin territory.
			pr.Get("/modules", catalogHandler.GetModules)
			pr.Get("/modules/{id}/permissions", catalogHandler.GetModulePermissions)

			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireLevels(rbac.LevelAdmin, rbac.LevelSuperAdmin))
				ar.Post("/modules", catalogHandler.CreateModule)
				ar.Delete("/modules/{id}", catalogHandler.DeactivateModule)
				ar.Post("/permissions", catalogHandler.CreatePermission)
				ar.Delete("/permissions/{id}", catalogHandler.DeactivatePermission)
			})

			// Roles. Changing role/permission wiring is SUPER_ADMIN only.
			pr.Get("/roles", roleHandler.GetRoles)
			pr.Get("/roles/{id}/permissions", roleHandler.GetRolePermissions)

			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireLevels(rbac.LevelSuperAdmin))
				ar.Post("/roles", roleHandler.CreateRole)
				ar.Put("/roles/{id}/permissions", roleHandler.ReplaceRolePermissions)
				ar.Delete("/roles/{id}", roleHandler.DeactivateRole)
			})

			// Projects and teams.
			pr.Route("/projects", func(er chi.Router) {
				er.Get("/", projectHandler.GetProjects)
				er.Get("/{id}", projectHandler.GetProject)
				er.Get("/{id}/teams", projectHandler.GetProjectTeams)
				er.Get("/{id}/members", projectHandler.GetProjectMembers)

				er.Group(func(mr chi.Router) {
					mr.Use(authHandler.RequirePermission("manage_projects"))
					mr.Post("/", projectHandler.CreateProject)
					mr.Patch("/{id}/status", projectHandler.UpdateProjectStatus)
					mr.Post("/{id}/teams", projectHandler.CreateTeam)
					mr.Put("/{id}/members", projectHandler.ReplaceProjectMembers)
				})
			})

			pr.Route("/teams/{teamID}/members", func(er chi.Router) {
				er.Get("/", projectHandler.GetTeamMembers)

				er.Group(func(mr chi.Router) {
					mr.Use(authHandler.RequirePermission("manage_teams"))
					mr.Put("/", projectHandler.ReplaceTeamMembers)
				})
			})

			// Users and assignments.
			pr.Get("/users/{id}", userHandler.GetUser)
			pr.Get("/users/{id}/complete", userHandler.GetCompleteInformation)
			pr.Get("/users/{id}/assignments", userHandler.GetUserAssignments)

			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireLevels(rbac.LevelAdmin, rbac.LevelSuperAdmin))
				ar.Get("/users", userHandler.GetUsers)
				ar.Post("/users", userHandler.CreateUser)
				ar.Put("/users/{id}/assignments", userHandler.ReplaceUserAssignments)
				ar.Delete("/users/{id}", userHandler.DeactivateUser)
			})
		})
	})
}
