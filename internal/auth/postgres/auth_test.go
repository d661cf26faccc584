package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/document-management/internal/auth"
	authPostgres "github.com/frahmantamala/document-management/internal/auth/postgres"
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

var _ = Describe("Auth Repository", func() {
	var (
		db   *gorm.DB
		repo *authPostgres.Repository
	)

	newUser := func(username, email string) *userDatamodel.User {
		now := time.Now()
		return &userDatamodel.User{
			Username:     username,
			Email:        email,
			PasswordHash: "hash",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&userDatamodel.Role{},
			&userDatamodel.User{},
			&userDatamodel.Permission{},
			&userDatamodel.PermissionUser{},
			&userDatamodel.AccessToken{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = authPostgres.NewRepository(db)
	})

	Describe("CreateUserWithBootstrap", func() {
		It("creates the role pair and assigns Admin on an empty database", func() {
			record := newUser("first", "first@mail.com")

			roleName, err := repo.CreateUserWithBootstrap(record)
			Expect(err).NotTo(HaveOccurred())
			Expect(roleName).To(Equal(auth.AdminRoleName))
			Expect(record.RoleID).NotTo(BeNil())

			var roleCount int64
			Expect(db.Model(&userDatamodel.Role{}).Count(&roleCount).Error).To(Succeed())
			Expect(roleCount).To(Equal(int64(2)))
		})

		It("assigns the User role once roles exist", func() {
			_, err := repo.CreateUserWithBootstrap(newUser("first", "first@mail.com"))
			Expect(err).NotTo(HaveOccurred())

			second := newUser("second", "second@mail.com")
			roleName, err := repo.CreateUserWithBootstrap(second)
			Expect(err).NotTo(HaveOccurred())
			Expect(roleName).To(Equal(auth.UserRoleName))

			var userRole userDatamodel.Role
			Expect(db.Where("name = ?", auth.UserRoleName).First(&userRole).Error).To(Succeed())
			Expect(*second.RoleID).To(Equal(userRole.ID))
		})

		It("still assigns Admin to the first user when the roles were pre-seeded", func() {
			now := time.Now()
			Expect(db.Create(&userDatamodel.Role{Name: auth.AdminRoleName, Description: "Administrator role", CreatedAt: now, UpdatedAt: now}).Error).To(Succeed())
			Expect(db.Create(&userDatamodel.Role{Name: auth.UserRoleName, Description: "Regular user role", CreatedAt: now, UpdatedAt: now}).Error).To(Succeed())

			record := newUser("first", "first@mail.com")
			roleName, err := repo.CreateUserWithBootstrap(record)
			Expect(err).NotTo(HaveOccurred())
			Expect(roleName).To(Equal(auth.AdminRoleName))

			var roleCount int64
			Expect(db.Model(&userDatamodel.Role{}).Count(&roleCount).Error).To(Succeed())
			Expect(roleCount).To(Equal(int64(2)))
		})

		It("does not duplicate the bootstrap roles across registrations", func() {
			_, err := repo.CreateUserWithBootstrap(newUser("first", "first@mail.com"))
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.CreateUserWithBootstrap(newUser("second", "second@mail.com"))
			Expect(err).NotTo(HaveOccurred())

			var roleCount int64
			Expect(db.Model(&userDatamodel.Role{}).Count(&roleCount).Error).To(Succeed())
			Expect(roleCount).To(Equal(int64(2)))
		})
	})

	Describe("GetUserWithAccess", func() {
		It("loads the role name and direct permission labels", func() {
			record := newUser("granted", "granted@mail.com")
			_, err := repo.CreateUserWithBootstrap(record)
			Expect(err).NotTo(HaveOccurred())

			perm := userDatamodel.Permission{Label: "List Users", CreatedAt: time.Now(), UpdatedAt: time.Now()}
			Expect(db.Create(&perm).Error).To(Succeed())
			Expect(db.Create(&userDatamodel.PermissionUser{
				UserID:       record.ID,
				PermissionID: perm.ID,
				CreatedAt:    time.Now(),
			}).Error).To(Succeed())

			principal, err := repo.GetUserWithAccess(record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.RoleName).To(Equal(auth.AdminRoleName))
			Expect(principal.Permissions).To(ConsistOf("List Users"))
		})
	})

	Describe("access tokens", func() {
		It("round-trips store, exists and delete", func() {
			token := &userDatamodel.AccessToken{
				UserID:    1,
				TokenHash: "abc123",
				ExpiresAt: time.Now().Add(time.Hour),
				CreatedAt: time.Now(),
			}
			Expect(repo.StoreAccessToken(token)).To(Succeed())

			exists, err := repo.AccessTokenExists("abc123")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			Expect(repo.DeleteAccessToken("abc123")).To(Succeed())

			exists, err = repo.AccessTokenExists("abc123")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("treats an expired token as absent", func() {
			token := &userDatamodel.AccessToken{
				UserID:    1,
				TokenHash: "expired",
				ExpiresAt: time.Now().Add(-time.Minute),
				CreatedAt: time.Now().Add(-2 * time.Hour),
			}
			Expect(repo.StoreAccessToken(token)).To(Succeed())

			exists, err := repo.AccessTokenExists("expired")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})
})
