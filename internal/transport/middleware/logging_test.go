package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/document-management/internal/transport/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("LoggingMiddleware", func() {
	var logOutput *bytes.Buffer

	serve := func(handler http.Handler, target string) {
		logger := slog.New(slog.NewJSONHandler(logOutput, nil))
		wrapped := middleware.LoggingMiddleware(logger)(handler)
		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	BeforeEach(func() {
		logOutput = &bytes.Buffer{}
	})

	It("logs JSON response bodies", func() {
		serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":true,"message":"All categories"}`))
		}), "/api/categories/index")

		Expect(logOutput.String()).To(ContainSubstring("All categories"))
	})

	It("does not buffer blob download bodies", func() {
		blob := strings.Repeat("x", 1<<16)
		serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte(blob))
		}), "/storage/documents/report.pdf")

		Expect(logOutput.String()).To(ContainSubstring("[NON-JSON - not logged]"))
		Expect(logOutput.String()).NotTo(ContainSubstring(blob))
		Expect(logOutput.String()).To(ContainSubstring(`"response_size":65536`))
	})

	It("never buffers multipart request bodies", func() {
		logger := slog.New(slog.NewJSONHandler(logOutput, nil))
		handler := middleware.LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/documents/create", strings.NewReader("file-bytes"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(logOutput.String()).To(ContainSubstring("[MULTIPART - not logged]"))
		Expect(logOutput.String()).NotTo(ContainSubstring("file-bytes"))
	})

	It("filters sensitive fields from request bodies", func() {
		logger := slog.New(slog.NewJSONHandler(logOutput, nil))
		handler := middleware.LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"hunter2"}`))
		req.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(logOutput.String()).To(ContainSubstring("alice"))
		Expect(logOutput.String()).NotTo(ContainSubstring("hunter2"))
	})
})
