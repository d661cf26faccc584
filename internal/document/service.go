package document

import (
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/document-management/internal"
	categoryDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/category"
	documentDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/document"
)

var (
	ErrDocumentNotFound = internal.NewNotFoundError("Document not found")
	ErrCategoryNotFound = internal.NewNotFoundError("Category not found")
)

type RepositoryAPI interface {
	GetAllByUser(userID int64) ([]*documentDatamodel.Document, error)
	// GetByIDForUser returns nil (no error) when the row is absent or owned
	// by someone else.
	GetByIDForUser(id, userID int64) (*documentDatamodel.Document, error)
	Create(d *documentDatamodel.Document) error
	Update(d *documentDatamodel.Document) error
	Delete(id int64) error
	GetCategoryNames(ids []int64) (map[int64]string, error)
}

// CategoryLookupAPI is the slice of the category repository the document
// service needs to enforce that a referenced category belongs to the owner.
type CategoryLookupAPI interface {
	GetByIDForUser(id, userID int64) (*categoryDatamodel.Category, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryLookupAPI
	store      BlobStore
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryLookupAPI, store BlobStore, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		store:      store,
		logger:     logger,
	}
}

// CreateFromUpload validates the upload, stores the blob under a generated
// identifier and records the document row. On any validation failure nothing
// is written to storage or the database.
func (s *Service) CreateFromUpload(userID int64, dto UploadDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ext := dto.Extension()
	if !ExtensionAllowed(ext) {
		return nil, internal.NewBadRequestError(
			"Invalid file type. the file must be file of type: " + strings.Join(AllowedExtensions, ", "))
	}

	if dto.CategoryID != nil {
		cat, err := s.categories.GetByIDForUser(*dto.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
	}

	pathURL, err := s.store.Save(ext, dto.Contents)
	if err != nil {
		s.logger.Error("failed to store document blob", "error", err, "user_id", userID)
		return nil, err
	}

	now := time.Now()
	record := &documentDatamodel.Document{
		Title:      TitleFromFileName(dto.FileName, ext),
		Format:     ext,
		PathURL:    pathURL,
		CategoryID: dto.CategoryID,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create document", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("document created", "document_id", record.ID, "user_id", userID, "format", ext)

	doc := FromDataModel(record)
	s.attachCategoryRefs([]*Document{doc})
	return doc, nil
}

// GetAllForUser lists only the principal's documents, with each category
// rendered as an {id, name} reference.
func (s *Service) GetAllForUser(userID int64) ([]*Document, error) {
	records, err := s.repo.GetAllByUser(userID)
	if err != nil {
		s.logger.Error("failed to list documents", "error", err, "user_id", userID)
		return nil, err
	}

	docs := make([]*Document, len(records))
	for i, r := range records {
		docs[i] = FromDataModel(r)
	}
	s.attachCategoryRefs(docs)
	return docs, nil
}

func (s *Service) Update(id, userID int64, dto UpdateDocumentDTO) (*Document, error) {
	record, err := s.repo.GetByIDForUser(id, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrDocumentNotFound
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.CategoryID != nil {
		cat, err := s.categories.GetByIDForUser(*dto.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
	}

	record.Title = dto.Title
	record.CategoryID = dto.CategoryID
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update document", "error", err, "document_id", id)
		return nil, err
	}

	doc := FromDataModel(record)
	s.attachCategoryRefs([]*Document{doc})
	return doc, nil
}

func (s *Service) Delete(id, userID int64) error {
	record, err := s.repo.GetByIDForUser(id, userID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrDocumentNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete document", "error", err, "document_id", id)
		return err
	}

	s.logger.Info("document deleted", "document_id", id, "user_id", userID)
	return nil
}

func (s *Service) attachCategoryRefs(docs []*Document) {
	var ids []int64
	for _, d := range docs {
		if d.CategoryID != nil {
			ids = append(ids, *d.CategoryID)
		}
	}
	if len(ids) == 0 {
		return
	}

	names, err := s.repo.GetCategoryNames(ids)
	if err != nil {
		s.logger.Warn("failed to resolve category names", "error", err)
		return
	}

	for _, d := range docs {
		if d.CategoryID == nil {
			continue
		}
		if name, ok := names[*d.CategoryID]; ok {
			d.Category = &CategoryRef{ID: *d.CategoryID, Name: name}
		}
	}
}
