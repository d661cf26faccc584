package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
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

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		roles := []struct {
			Name string
			Desc string
		}{
			{"Admin", "Administrator role"},
			{"User", "Regular user role"},
		}

		for _, r := range roles {
			var exists int
			if err := db.Raw("SELECT 1 FROM roles WHERE name = ?", r.Name).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO roles (name, description, created_at, updated_at) VALUES (?, ?, now(), now())", r.Name, r.Desc).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", r.Name, err)
			}
			fmt.Println("Seeded role:", r.Name)
		}

		permissions := []struct {
			Label string
			Desc  string
		}{
			{"Create a Role", "Can create roles"},
			{"List Roles", "Can list roles"},
			{"Update a Role", "Can update roles"},
			{"Delete a Role", "Can delete roles"},
			{"Create a Permission", "Can create permissions"},
			{"List Permissions", "Can list permissions"},
			{"Update a Permission", "Can update permissions"},
			{"Delete a Permission", "Can delete permissions"},
			{"List Users", "Can list users"},
			{"Assign Role to User", "Can assign roles to users"},
			{"Delete a User", "Can delete users"},
			{"Assign a Permission", "Can grant permissions to users"},
			{"List User Permissions", "Can list a user's permissions"},
			{"Revoke a Permission", "Can revoke permissions from users"},
		}

		for _, p := range permissions {
			var exists int
			if err := db.Raw("SELECT 1 FROM permissions WHERE label = ?", p.Label).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO permissions (label, description, created_at, updated_at) VALUES (?, ?, now(), now())", p.Label, p.Desc).Error; err != nil {
				log.Fatalf("failed to insert permission %s: %v", p.Label, err)
			}
		}
		fmt.Println("Seeded permission catalog")

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		adminUsername := "admin"
		adminEmail := "admin@mail.com"
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE username = ?", adminUsername).Row().Scan(&exists); err != nil {
			var adminRoleID int64
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", "Admin").Row().Scan(&adminRoleID); err != nil {
				log.Fatalf("failed to lookup Admin role: %v", err)
			}
			if err := db.Exec("INSERT INTO users (username, email, password_hash, role_id, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", adminUsername, adminEmail, string(hash), adminRoleID).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminUsername)
		}

		staffUsername := "staff"
		staffEmail := "staff@mail.com"
		if err := db.Raw("SELECT 1 FROM users WHERE username = ?", staffUsername).Row().Scan(&exists); err != nil {
			var userRoleID int64
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", "User").Row().Scan(&userRoleID); err != nil {
				log.Fatalf("failed to lookup User role: %v", err)
			}
			if err := db.Exec("INSERT INTO users (username, email, password_hash, role_id, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())", staffUsername, staffEmail, string(hash), userRoleID).Error; err != nil {
				log.Fatalf("failed to insert staff user: %v", err)
			}
			fmt.Println("Seeded staff user:", staffUsername)
		}

		// The staff user gets a couple of direct grants to demo the
		// permission path that does not go through the Admin bypass.
		var staffUserID int64
		if err := db.Raw("SELECT id FROM users WHERE username = ?", staffUsername).Row().Scan(&staffUserID); err != nil {
			log.Fatalf("failed to lookup staff user id: %v", err)
		}

		staffGrants := []string{"List Users", "List Roles"}
		for _, label := range staffGrants {
			var pid int64
			if err := db.Raw("SELECT id FROM permissions WHERE label = ?", label).Row().Scan(&pid); err != nil {
				log.Fatalf("permission not found %s: %v", label, err)
			}

			if err := db.Raw("SELECT 1 FROM permission_user WHERE user_id = ? AND permission_id = ?", staffUserID, pid).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO permission_user (user_id, permission_id, created_at) VALUES (?, ?, now())", staffUserID, pid).Error; err != nil {
				log.Fatalf("failed to grant permission %s to staff user: %v", label, err)
			}
		}

		fmt.Println("Granted direct permissions to staff user:", staffUsername)
	},
}
