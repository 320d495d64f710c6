package documents

import (
	"context"
	"io"

	"docuserve/internal/domain"
)

// Catalog defines the interface for document record persistence
type Catalog interface {
	Create(ctx context.Context, d *domain.Document) error
	Update(ctx context.Context, d *domain.Document) error
	FindByNameInsensitive(ctx context.Context, name string) (*domain.Document, error)
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	ListAll(ctx context.Context) ([]domain.Document, error)
	DeleteByID(ctx context.Context, id int64) error
}

// BlobStore defines the interface for raw content persistence
type BlobStore interface {
	Save(name string, src io.ReadCloser) (path string, size int64, err error)
	Exists(path string) bool
	Read(path string) ([]byte, error)
	Delete(path string) error
}
