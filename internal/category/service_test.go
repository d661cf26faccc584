package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/category"
	categoryPostgres "github.com/frahmantamala/document-management/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

const (
	userA int64 = 1
	userB int64 = 2
)

var _ = Describe("Category Service", func() {
	var (
		db      *gorm.DB
		repo    category.RepositoryAPI
		service *category.Service
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.Category{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, slogger)
	})

	Describe("Create", func() {
		It("stores the category under the acting user", func() {
			cat, err := service.Create(userA, category.CategoryDTO{Name: "Invoices"})

			Expect(err).NotTo(HaveOccurred())
			Expect(cat.ID).To(BeNumerically(">", 0))
			Expect(cat.UserID).To(Equal(userA))
		})

		It("rejects a duplicate name", func() {
			_, err := service.Create(userA, category.CategoryDTO{Name: "Invoices"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(userB, category.CategoryDTO{Name: "Invoices"})

			var verr *internal.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Errors["name"]).To(ContainElement("The name has already been taken."))
		})

		It("rejects an empty name", func() {
			_, err := service.Create(userA, category.CategoryDTO{})

			var verr *internal.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Errors).To(HaveKey("name"))
		})
	})

	Describe("ownership scoping", func() {
		var invoicesID int64

		BeforeEach(func() {
			cat, err := service.Create(userA, category.CategoryDTO{Name: "Invoices"})
			Expect(err).NotTo(HaveOccurred())
			invoicesID = cat.ID

			_, err = service.Create(userB, category.CategoryDTO{Name: "Receipts"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("lists only the requesting user's categories", func() {
			cats, err := service.GetAllForUser(userB)
			Expect(err).NotTo(HaveOccurred())
			Expect(cats).To(HaveLen(1))
			Expect(cats[0].Name).To(Equal("Receipts"))
		})

		It("returns not found when updating another user's category", func() {
			_, err := service.Update(invoicesID, userB, category.CategoryDTO{Name: "Stolen"})
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})

		It("returns not found when deleting another user's category", func() {
			err := service.Delete(invoicesID, userB)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})

		It("returns the same not found for a nonexistent id", func() {
			_, err := service.Update(9999, userA, category.CategoryDTO{Name: "Ghost"})
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})
	})

	Describe("Update", func() {
		It("renames the owner's category", func() {
			cat, err := service.Create(userA, category.CategoryDTO{Name: "Drafts"})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(cat.ID, userA, category.CategoryDTO{Name: "Archive"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Archive"))
		})

		It("allows keeping the current name", func() {
			cat, err := service.Create(userA, category.CategoryDTO{Name: "Drafts"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(cat.ID, userA, category.CategoryDTO{Name: "Drafts"})
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
