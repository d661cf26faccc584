package document_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/document-management/internal"
	categoryDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/category"
	documentDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/document"
	"github.com/frahmantamala/document-management/internal/document"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDocumentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Document Service Suite")
}

// MockRepository implements document.RepositoryAPI for testing
type MockRepository struct {
	documents  map[int64]*documentDatamodel.Document
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		documents: make(map[int64]*documentDatamodel.Document),
		nextID:    1,
	}
}

func (m *MockRepository) GetAllByUser(userID int64) ([]*documentDatamodel.Document, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*documentDatamodel.Document
	for _, d := range m.documents {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByIDForUser(id, userID int64) (*documentDatamodel.Document, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	d, ok := m.documents[id]
	if !ok || d.UserID != userID {
		return nil, nil
	}
	return d, nil
}

func (m *MockRepository) Create(d *documentDatamodel.Document) error {
	if m.shouldFail {
		return m.failError
	}
	d.ID = m.nextID
	m.nextID++
	m.documents[d.ID] = d
	return nil
}

func (m *MockRepository) Update(d *documentDatamodel.Document) error {
	if m.shouldFail {
		return m.failError
	}
	m.documents[d.ID] = d
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.documents, id)
	return nil
}

func (m *MockRepository) GetCategoryNames(ids []int64) (map[int64]string, error) {
	names := make(map[int64]string)
	for _, id := range ids {
		names[id] = "Invoices"
	}
	return names, nil
}

// MockCategoryLookup simulates the owner-constrained category lookup
type MockCategoryLookup struct {
	categories map[int64]*categoryDatamodel.Category
}

func (m *MockCategoryLookup) GetByIDForUser(id, userID int64) (*categoryDatamodel.Category, error) {
	cat, ok := m.categories[id]
	if !ok || cat.UserID != userID {
		return nil, nil
	}
	return cat, nil
}

// MockBlobStore records saves without touching disk
type MockBlobStore struct {
	saves      int
	lastExt    string
	shouldFail bool
}

func (m *MockBlobStore) Save(ext string, contents io.Reader) (string, error) {
	if m.shouldFail {
		return "", errors.New("disk full")
	}
	m.saves++
	m.lastExt = ext
	io.Copy(io.Discard, contents)
	return "/storage/documents/generated-id." + ext, nil
}

var _ = Describe("Document Service", func() {
	var (
		mockRepo   *MockRepository
		mockLookup *MockCategoryLookup
		mockStore  *MockBlobStore
		service    *document.Service
	)

	upload := func(fileName string, categoryID *int64) document.UploadDTO {
		return document.UploadDTO{
			FileName:   fileName,
			Size:       128,
			Contents:   bytes.NewReader([]byte("content")),
			CategoryID: categoryID,
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockLookup = &MockCategoryLookup{categories: map[int64]*categoryDatamodel.Category{
			10: {ID: 10, Name: "Invoices", UserID: 1},
		}}
		mockStore = &MockBlobStore{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = document.NewService(mockRepo, mockLookup, mockStore, logger)
	})

	Describe("CreateFromUpload", func() {
		It("stores the blob and derives title and format from the filename", func() {
			doc, err := service.CreateFromUpload(1, upload("Quarterly Report.pdf", nil))

			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Title).To(Equal("Quarterly Report"))
			Expect(doc.Format).To(Equal("pdf"))
			Expect(doc.UserID).To(Equal(int64(1)))
			Expect(doc.PathURL).To(HavePrefix("/storage/documents/"))
			Expect(mockStore.saves).To(Equal(1))
		})

		It("rejects a disallowed extension before writing anything", func() {
			_, err := service.CreateFromUpload(1, upload("malware.exe", nil))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Message).To(ContainSubstring("Invalid file type."))

			Expect(mockStore.saves).To(BeZero())
			Expect(mockRepo.documents).To(BeEmpty())
		})

		It("rejects a missing file", func() {
			_, err := service.CreateFromUpload(1, document.UploadDTO{})

			var verr *internal.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Errors["path_url"]).To(ContainElement("The path url field is required."))
		})

		It("rejects an oversized file", func() {
			dto := upload("big.pdf", nil)
			dto.Size = document.MaxUploadSize + 1

			_, err := service.CreateFromUpload(1, dto)

			var verr *internal.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Errors["path_url"]).To(ContainElement("The path url may not be greater than 10240 kilobytes."))
		})

		It("links an owned category and renders it as a reference", func() {
			catID := int64(10)
			doc, err := service.CreateFromUpload(1, upload("invoice.pdf", &catID))

			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Category).NotTo(BeNil())
			Expect(doc.Category.ID).To(Equal(catID))
			Expect(doc.Category.Name).To(Equal("Invoices"))
		})

		It("returns category not found when the category belongs to someone else", func() {
			catID := int64(10)
			_, err := service.CreateFromUpload(2, upload("invoice.pdf", &catID))

			Expect(err).To(MatchError(document.ErrCategoryNotFound))
			Expect(mockStore.saves).To(BeZero())
		})

		It("accepts extensions case-insensitively", func() {
			doc, err := service.CreateFromUpload(1, upload("Scan.JPG", nil))

			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Format).To(Equal("jpg"))
			Expect(doc.Title).To(Equal("Scan"))
		})
	})

	Describe("ownership scoping", func() {
		var docID int64

		BeforeEach(func() {
			doc, err := service.CreateFromUpload(1, upload("mine.pdf", nil))
			Expect(err).NotTo(HaveOccurred())
			docID = doc.ID
		})

		It("lists only the requesting user's documents", func() {
			docs, err := service.GetAllForUser(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(BeEmpty())
		})

		It("returns not found when updating another user's document", func() {
			_, err := service.Update(docID, 2, document.UpdateDocumentDTO{Title: "Stolen"})
			Expect(err).To(MatchError(document.ErrDocumentNotFound))
		})

		It("returns not found when deleting another user's document", func() {
			err := service.Delete(docID, 2)
			Expect(err).To(MatchError(document.ErrDocumentNotFound))
		})

		It("updates the owner's document", func() {
			updated, err := service.Update(docID, 1, document.UpdateDocumentDTO{Title: "Renamed"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Title).To(Equal("Renamed"))
			Expect(updated.UpdatedAt).To(BeTemporally("<=", time.Now()))
		})
	})
})

var _ = Describe("LocalStorage", func() {
	It("saves blobs under a generated name, never the client filename", func() {
		dir, err := os.MkdirTemp("", "blobs")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)

		store, err := document.NewLocalStorage(dir, "/storage/documents")
		Expect(err).NotTo(HaveOccurred())

		pathURL, err := store.Save("pdf", strings.NewReader("first"))
		Expect(err).NotTo(HaveOccurred())
		Expect(pathURL).To(HavePrefix("/storage/documents/"))
		Expect(pathURL).To(HaveSuffix(".pdf"))
		Expect(pathURL).NotTo(ContainSubstring("first"))

		other, err := store.Save("pdf", strings.NewReader("second"))
		Expect(err).NotTo(HaveOccurred())
		Expect(other).NotTo(Equal(pathURL))

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))
	})
})
