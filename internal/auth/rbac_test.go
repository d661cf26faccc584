package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/document-management/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RBAC Authorization", func() {
	var (
		rbac    *auth.RBACAuthorization
		handler http.Handler
		called  bool
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		rbac = auth.NewRBACAuthorization(logger)
		called = false

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})
		handler = rbac.RequirePermission("List Users")(next)
	})

	serve := func(principal *auth.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users/index", nil)
		if principal != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), principal))
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	It("returns 401 when no principal is present", func() {
		w := serve(nil)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(called).To(BeFalse())

		var body map[string]string
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["message"]).To(Equal("Unauthenticated."))
	})

	It("returns 403 when the principal lacks the permission", func() {
		w := serve(&auth.User{ID: 2, Username: "staff", RoleName: "User"})

		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(called).To(BeFalse())

		var body map[string]string
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["message"]).To(Equal("You do not have permission to perform this action"))
	})

	It("lets an Admin through without any direct grants", func() {
		w := serve(&auth.User{ID: 1, Username: "admin", RoleName: "Admin"})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(called).To(BeTrue())
	})

	It("lets a non-admin through with a matching direct grant", func() {
		w := serve(&auth.User{
			ID:          2,
			Username:    "staff",
			RoleName:    "User",
			Permissions: []string{"List Users"},
		})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(called).To(BeTrue())
	})

	It("does not match on a different permission label", func() {
		w := serve(&auth.User{
			ID:          2,
			Username:    "staff",
			RoleName:    "User",
			Permissions: []string{"List Roles"},
		})

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})
})
