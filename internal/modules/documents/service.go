package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"docuserve/internal/domain"
	"docuserve/internal/repository"
)

// Service implements the ingestion pipeline plus the read and delete
// surfaces over the catalog and the blob store. There is no locking and no
// transaction spanning both stores: concurrent uploads of the same name
// race, and a failed catalog write leaves the blob behind. Both are
// accepted limitations, not bugs to paper over here.
type Service struct {
	catalog Catalog
	store   BlobStore
}

func NewService(catalog Catalog, store BlobStore) *Service {
	return &Service{catalog: catalog, store: store}
}

// Upload persists the stream and upserts the catalog record keyed by the
// case-insensitive normalized filename. Matching an existing record
// mutates it in place (same id, same stored name); otherwise a new record
// is inserted. The source stream is closed on every path.
func (s *Service) Upload(ctx context.Context, filename, contentType string, src io.ReadCloser, modifiedBy string) (*domain.Document, error) {
	name := normalizeFilename(filename)
	if name == "" {
		src.Close()
		return nil, ErrEmptyFilename
	}

	if modifiedBy == "" {
		modifiedBy = domain.AnonymousUser
	}

	existing, err := s.catalog.FindByNameInsensitive(ctx, name)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("lookup by name %q: %w", name, err)
	}

	path, size, err := s.store.Save(name, src)
	if err != nil {
		return nil, fmt.Errorf("save blob %q: %w", name, err)
	}

	raw, err := s.store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read back blob %q: %w", path, err)
	}
	text := extractText(raw)

	if existing != nil {
		existing.Size = size
		existing.CreatedAt = time.Now().UTC()
		existing.LastModifiedBy = modifiedBy
		existing.ExtractedText = text
		existing.Path = path
		if err := s.catalog.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update document %d: %w", existing.ID, err)
		}
		return existing, nil
	}

	doc := &domain.Document{
		Name:           name,
		Size:           size,
		ContentType:    contentType,
		Path:           path,
		CreatedAt:      time.Now().UTC(),
		OwnerID:        domain.DefaultOwnerID,
		LastModifiedBy: modifiedBy,
		ExtractedText:  text,
	}
	if err := s.catalog.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert document %q: %w", name, err)
	}
	return doc, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Document, error) {
	return s.catalog.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// View returns the document's text read fresh from the blob store, not the
// cached extracted_text column. A record whose blob was removed
// out-of-band reports ErrFileMissing instead of an internal failure.
func (s *Service) View(ctx context.Context, id int64) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if !s.store.Exists(doc.Path) {
		return "", ErrFileMissing
	}

	raw, err := s.store.Read(doc.Path)
	if err != nil {
		return "", fmt.Errorf("read blob %q: %w", doc.Path, err)
	}
	return decodeText(raw), nil
}

// Delete removes the blob and then the catalog record. The two removals
// are not transactional; a catalog failure after the blob removal leaves a
// record pointing at nothing, which View reports as not found.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if doc.Path != "" && s.store.Exists(doc.Path) {
		if err := s.store.Delete(doc.Path); err != nil {
			return nil, fmt.Errorf("delete blob %q: %w", doc.Path, err)
		}
	}

	if err := s.catalog.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("delete document %d: %w", id, err)
	}
	return doc, nil
}

// normalizeFilename strips any directory component and surrounding
// whitespace. Unlike filepath.Base, a trailing separator yields the empty
// string, so "dir/" is rejected as having no filename at all.
func normalizeFilename(raw string) string {
	name := raw
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}
