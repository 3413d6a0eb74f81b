//go:build ignore

package main

import (
	"fmt"
	"log"

	"github.com/hugh/nextsaas/internal/auth"
	"github.com/hugh/nextsaas/internal/database"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/permissions"
	"github.com/hugh/nextsaas/pkg/config"
	"github.com/hugh/nextsaas/pkg/util"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const seedPassword = "12345678"

type seedMember struct {
	user *models.User
	role permissions.Role
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Member{}, &models.Project{}, &models.Invite{},
			&models.Organization{}, &models.Account{}, &models.Token{}, &models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}

		john := &models.User{Name: "John Doe", Email: "john@acme.com", PasswordHash: &hash}
		ada := &models.User{Name: "Ada Lovelace", Email: "ada@example.com", PasswordHash: &hash}
		alan := &models.User{Name: "Alan Turing", Email: "alan@example.com", PasswordHash: &hash}
		for _, u := range []*models.User{john, ada, alan} {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		domain := "acme.com"
		if err := seedOrg(tx, &models.Organization{
			Name:                      "Acme Inc (Admin)",
			Slug:                      "acme-admin",
			Domain:                    &domain,
			ShouldAttachUsersByDomain: true,
			OwnerID:                   john.ID,
		}, []seedMember{{john, permissions.RoleAdmin}, {ada, permissions.RoleMember}, {alan, permissions.RoleMember}}); err != nil {
			return err
		}

		if err := seedOrg(tx, &models.Organization{
			Name:    "Acme Inc (Member)",
			Slug:    "acme-member",
			OwnerID: ada.ID,
		}, []seedMember{{ada, permissions.RoleAdmin}, {john, permissions.RoleMember}, {alan, permissions.RoleMember}}); err != nil {
			return err
		}

		return seedOrg(tx, &models.Organization{
			Name:    "Acme Inc (Billing)",
			Slug:    "acme-billing",
			OwnerID: alan.ID,
		}, []seedMember{{alan, permissions.RoleAdmin}, {john, permissions.RoleBilling}, {ada, permissions.RoleMember}})
	})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	fmt.Println("Database seeded!")
	fmt.Printf("Sign in as john@acme.com / %s\n", seedPassword)
}

func seedOrg(tx *gorm.DB, org *models.Organization, members []seedMember) error {
	if err := tx.Create(org).Error; err != nil {
		return err
	}
	for _, m := range members {
		if err := tx.Create(&models.Member{OrganizationID: org.ID, UserID: m.user.ID, Role: m.role}).Error; err != nil {
			return err
		}
	}
	for i := 1; i <= 3; i++ {
		if err := tx.Create(&models.Project{
			Name:           fmt.Sprintf("%s project %d", org.Name, i),
			Slug:           fmt.Sprintf("%s-project-%d", org.Slug, i),
			Description:    "Seeded project",
			OrganizationID: org.ID,
			OwnerID:        members[(i-1)%len(members)].user.ID,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
