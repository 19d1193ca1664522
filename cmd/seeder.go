package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"project_role_assignments", "team_members", "project_members",
				"role_permissions", "teams", "projects", "roles", "permissions", "modules", "users",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		modules := []struct {
			Name string
			Code string
			Desc string
		}{
			{"Projects", "PROJECTS", "project and team administration"},
			{"Updates", "UPDATES", "daily update tracking"},
			{"Administration", "ADMIN", "user and access administration"},
		}
		for _, m := range modules {
			var id int64
			if err := db.Raw("SELECT id FROM modules WHERE code = ?", m.Code).Row().Scan(&id); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO modules (name, code, description, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", m.Name, m.Code, m.Desc).Error; err != nil {
				log.Fatalf("failed to insert module %s: %v", m.Code, err)
			}
		}
		fmt.Println("Seeded modules")

		permissions := []struct {
			Name   string
			Module string
			Action string
			Desc   string
		}{
			{"view_projects", "PROJECTS", "READ", "Can view projects"},
			{"manage_projects", "PROJECTS", "MANAGE", "Can create projects and edit status and membership"},
			{"manage_teams", "PROJECTS", "MANAGE", "Can edit team membership"},
			{"view_updates", "UPDATES", "READ", "Can view daily updates"},
			{"post_updates", "UPDATES", "CREATE", "Can post daily updates"},
			{"manage_users", "ADMIN", "MANAGE", "Can administer users and assignments"},
			{"manage_roles", "ADMIN", "MANAGE", "Can administer roles and permissions"},
		}
		for _, p := range permissions {
			var moduleID int64
			if err := db.Raw("SELECT id FROM modules WHERE code = ?", p.Module).Row().Scan(&moduleID); err != nil {
				log.Fatalf("module not found %s: %v", p.Module, err)
			}
			var id int64
			if err := db.Raw("SELECT id FROM permissions WHERE module_id = ? AND name = ?", moduleID, p.Name).Row().Scan(&id); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO permissions (module_id, name, description, action, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())", moduleID, p.Name, p.Desc, p.Action).Error; err != nil {
				log.Fatalf("failed to insert permission %s: %v", p.Name, err)
			}
		}
		fmt.Println("Seeded permissions")

		roles := []struct {
			Name        string
			Level       string
			Permissions []string
		}{
			{"Platform Administrator", "SUPER_ADMIN", []string{"view_projects", "manage_projects", "manage_teams", "view_updates", "post_updates", "manage_users", "manage_roles"}},
			{"Project Manager", "MANAGER", []string{"view_projects", "manage_projects", "manage_teams", "view_updates"}},
			{"Contributor", "USER", []string{"view_projects", "view_updates", "post_updates"}},
		}
		for _, r := range roles {
			var roleID int64
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row().Scan(&roleID); err != nil {
				if err := db.Exec("INSERT INTO roles (name, description, level, is_active, created_at, updated_at) VALUES (?, '', ?, true, now(), now())", r.Name, r.Level).Error; err != nil {
					log.Fatalf("failed to insert role %s: %v", r.Name, err)
				}
				if err := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row().Scan(&roleID); err != nil {
					log.Fatalf("role not found after insert %s: %v", r.Name, err)
				}
			}
			for _, permName := range r.Permissions {
				var pid int64
				if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
					log.Fatalf("permission not found %s: %v", permName, err)
				}
				var exists int
				if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?", roleID, pid).Row().Scan(&exists); err == nil {
					continue
				}
				if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id, created_at) VALUES (?, ?, now())", roleID, pid).Error; err != nil {
					log.Fatalf("failed to attach permission %s to role %s: %v", permName, r.Name, err)
				}
			}
		}
		fmt.Println("Seeded roles")

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email string
			Name  string
		}{
			{"admin@teampulse.dev", "Platform Admin"},
			{"manager@teampulse.dev", "Maya Manager"},
			{"dev@teampulse.dev", "Devi Developer"},
		}
		for _, u := range users {
			var id int64
			if err := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row().Scan(&id); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", u.Email, u.Name, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
		}
		fmt.Println("Seeded users (password: password)")

		var projectID int64
		if err := db.Raw("SELECT id FROM projects WHERE code = ?", "PULSE").Row().Scan(&projectID); err != nil {
			if err := db.Exec("INSERT INTO projects (name, code, description, status, is_active, created_at, updated_at) VALUES ('Teampulse Platform', 'PULSE', 'the platform itself', 'ACTIVE', true, now(), now())").Error; err != nil {
				log.Fatalf("failed to insert project: %v", err)
			}
			if err := db.Raw("SELECT id FROM projects WHERE code = ?", "PULSE").Row().Scan(&projectID); err != nil {
				log.Fatalf("project not found after insert: %v", err)
			}
		}

		var teamID int64
		if err := db.Raw("SELECT id FROM teams WHERE project_id = ? AND name = ?", projectID, "Core").Row().Scan(&teamID); err != nil {
			if err := db.Exec("INSERT INTO teams (project_id, name, description, is_active, created_at, updated_at) VALUES (?, 'Core', 'core platform team', true, now(), now())", projectID).Error; err != nil {
				log.Fatalf("failed to insert team: %v", err)
			}
			if err := db.Raw("SELECT id FROM teams WHERE project_id = ? AND name = ?", projectID, "Core").Row().Scan(&teamID); err != nil {
				log.Fatalf("team not found after insert: %v", err)
			}
		}
		fmt.Println("Seeded project and team")

		assignments := []struct {
			Email string
			Role  string
		}{
			{"admin@teampulse.dev", "Platform Administrator"},
			{"manager@teampulse.dev", "Project Manager"},
			{"dev@teampulse.dev", "Contributor"},
		}
		for _, a := range assignments {
			var userID, roleID int64
			if err := db.Raw("SELECT id FROM users WHERE email = ?", a.Email).Row().Scan(&userID); err != nil {
				log.Fatalf("user not found %s: %v", a.Email, err)
			}
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", a.Role).Row().Scan(&roleID); err != nil {
				log.Fatalf("role not found %s: %v", a.Role, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM project_members WHERE project_id = ? AND user_id = ?", projectID, userID).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO project_members (project_id, user_id, created_at) VALUES (?, ?, now())", projectID, userID).Error; err != nil {
					log.Fatalf("failed to insert project member: %v", err)
				}
			}
			if err := db.Raw("SELECT 1 FROM team_members WHERE team_id = ? AND user_id = ?", teamID, userID).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO team_members (team_id, user_id, created_at) VALUES (?, ?, now())", teamID, userID).Error; err != nil {
					log.Fatalf("failed to insert team member: %v", err)
				}
			}
			if err := db.Raw("SELECT 1 FROM project_role_assignments WHERE user_id = ? AND project_id = ? AND role_id = ?", userID, projectID, roleID).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO project_role_assignments (user_id, project_id, role_id, team_id, created_at) VALUES (?, ?, ?, ?, now())", userID, projectID, roleID, teamID).Error; err != nil {
					log.Fatalf("failed to insert assignment for %s: %v", a.Email, err)
				}
			}
		}
		fmt.Println("Seeded assignments")
	},
}
