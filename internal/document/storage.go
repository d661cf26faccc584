package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded file contents and returns the public path the
// blob is served from.
type BlobStore interface {
	Save(ext string, contents io.Reader) (string, error)
}

// LocalStorage writes blobs to a directory on disk. Blob names are generated
// identifiers, never the client-supplied filename, so equal filenames from
// different uploads can never overwrite each other.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalStorage) Save(ext string, contents io.Reader) (string, error) {
	blobName := uuid.NewString() + "." + strings.ToLower(ext)

	f, err := os.Create(filepath.Join(s.dir, blobName))
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, contents); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return s.baseURL + "/" + blobName, nil
}
