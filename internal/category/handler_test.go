package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"

	"github.com/frahmantamala/document-management/internal/auth"
	"github.com/frahmantamala/document-management/internal/category"
	categoryPostgres "github.com/frahmantamala/document-management/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/category"
	"github.com/frahmantamala/document-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler", func() {
	var (
		router  *chi.Mux
		service *category.Service
	)

	principal := func(id int64) *auth.User {
		return &auth.User{ID: id, Username: "someone", RoleName: "User"}
	}

	serve := func(method, target string, body string, userID int64) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req = req.WithContext(auth.ContextWithUser(req.Context(), principal(userID)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&categoryDatamodel.Category{})).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, slogger)
		handler := category.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Post("/categories/create", handler.Create)
		router.Get("/categories/index", handler.Index)
		router.Put("/categories/update/{id}", handler.Update)
		router.Delete("/categories/delete/{id}", handler.Delete)
	})

	It("creates a category and returns the success envelope", func() {
		w := serve(http.MethodPost, "/categories/create", `{"name":"Invoices"}`, 1)

		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["status"]).To(Equal(true))
		Expect(body["message"]).To(Equal("Category created successfully"))
		Expect(body["category"]).NotTo(BeNil())
	})

	It("returns the validation envelope for a missing name", func() {
		w := serve(http.MethodPost, "/categories/create", `{}`, 1)

		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["status"]).To(Equal(false))
		Expect(body["message"]).To(Equal("Validation error"))
		Expect(body["errors"]).To(HaveKey("name"))
	})

	It("lists only the caller's categories", func() {
		_, err := service.Create(1, category.CategoryDTO{Name: "Invoices"})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Create(2, category.CategoryDTO{Name: "Receipts"})
		Expect(err).NotTo(HaveOccurred())

		w := serve(http.MethodGet, "/categories/index", "", 2)

		Expect(w.Code).To(Equal(http.StatusOK))

		var body struct {
			Status     bool                 `json:"status"`
			Message    string               `json:"message"`
			Categories []*category.Category `json:"categories"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Message).To(Equal("All categories"))
		Expect(body.Categories).To(HaveLen(1))
		Expect(body.Categories[0].Name).To(Equal("Receipts"))
	})

	It("responds 404 with the not-found envelope when updating another user's category", func() {
		cat, err := service.Create(1, category.CategoryDTO{Name: "Invoices"})
		Expect(err).NotTo(HaveOccurred())

		w := serve(http.MethodPut, "/categories/update/"+strconv.FormatInt(cat.ID, 10), `{"name":"Stolen"}`, 2)

		Expect(w.Code).To(Equal(http.StatusNotFound))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["status"]).To(Equal(false))
		Expect(body["message"]).To(Equal("Category not found"))
	})

	It("deletes the caller's own category", func() {
		cat, err := service.Create(1, category.CategoryDTO{Name: "Invoices"})
		Expect(err).NotTo(HaveOccurred())

		w := serve(http.MethodDelete, "/categories/delete/"+strconv.FormatInt(cat.ID, 10), "", 1)

		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["message"]).To(Equal("Category deleted successfully"))
	})
})
