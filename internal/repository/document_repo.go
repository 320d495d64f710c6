package repository

import (
	"context"
	"errors"
	"time"

	"docuserve/internal/domain"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist. Repositories map
// gorm.ErrRecordNotFound to it so services never import gorm.
var ErrNotFound = errors.New("record not found")

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type documentModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;index"`
	Size           int64     `gorm:"column:size"`
	ContentType    string    `gorm:"column:content_type"`
	Path           string    `gorm:"column:path"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	OwnerID        int64     `gorm:"column:owner_id"`
	LastModifiedBy string    `gorm:"column:last_modified_by"`
	ExtractedText  string    `gorm:"column:extracted_text"`
}

func (documentModel) TableName() string { return "documents" }

func toDomainDocument(m documentModel) *domain.Document {
	return &domain.Document{
		ID:             m.ID,
		Name:           m.Name,
		Size:           m.Size,
		ContentType:    m.ContentType,
		Path:           m.Path,
		CreatedAt:      m.CreatedAt,
		OwnerID:        m.OwnerID,
		LastModifiedBy: m.LastModifiedBy,
		ExtractedText:  m.ExtractedText,
	}
}

func toDocumentModel(d *domain.Document) documentModel {
	return documentModel{
		ID:             d.ID,
		Name:           d.Name,
		Size:           d.Size,
		ContentType:    d.ContentType,
		Path:           d.Path,
		CreatedAt:      d.CreatedAt,
		OwnerID:        d.OwnerID,
		LastModifiedBy: d.LastModifiedBy,
		ExtractedText:  d.ExtractedText,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	m := toDocumentModel(d)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDocument(m)
	return nil
}

// Update replaces the stored record with the same ID.
func (r *DocumentRepository) Update(ctx context.Context, d *domain.Document) error {
	m := toDocumentModel(d)
	tx := r.db.WithContext(ctx).Model(&documentModel{}).
		Where("id = ?", m.ID).
		Select("name", "size", "content_type", "path", "created_at", "owner_id", "last_modified_by", "extracted_text").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByNameInsensitive returns the single document whose name matches
// case-insensitively, or nil when there is none. The comparison is exact
// apart from case: no trimming, no partial match.
func (r *DocumentRepository) FindByNameInsensitive(ctx context.Context, name string) (*domain.Document, error) {
	var m documentModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainDocument(m), nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var m documentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomainDocument(m), nil
}

// ListAll returns every document ordered by id descending (most recently
// assigned id first; this is id order, not write-time order).
func (r *DocumentRepository) ListAll(ctx context.Context) ([]domain.Document, error) {
	var models []documentModel
	tx := r.db.WithContext(ctx).Order("id DESC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	docs := make([]domain.Document, 0, len(models))
	for _, m := range models {
		docs = append(docs, *toDomainDocument(m))
	}
	return docs, nil
}

func (r *DocumentRepository) DeleteByID(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&documentModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Migrate creates the documents table if it does not exist.
func (r *DocumentRepository) Migrate() error {
	return r.db.AutoMigrate(&documentModel{})
}
