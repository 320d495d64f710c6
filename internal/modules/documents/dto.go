package documents

import (
	"time"

	"docuserve/internal/domain"
)

// DocumentVersion is a reserved extension point: the API shape carries a
// versions list but nothing populates it yet.
type DocumentVersion struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Size           int64             `json:"size"`
	ContentType    string            `json:"content_type"`
	Path           string            `json:"path"`
	CreatedAt      time.Time         `json:"created_at"`
	OwnerID        int64             `json:"owner_id"`
	LastModifiedBy string            `json:"last_modified_by"`
	ExtractedText  string            `json:"extracted_text"`
	Versions       []DocumentVersion `json:"versions"`
}

func toResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID,
		Name:           d.Name,
		Size:           d.Size,
		ContentType:    d.ContentType,
		Path:           d.Path,
		CreatedAt:      d.CreatedAt,
		OwnerID:        d.OwnerID,
		LastModifiedBy: d.LastModifiedBy,
		ExtractedText:  d.ExtractedText,
		Versions:       []DocumentVersion{},
	}
}

func toResponseList(docs []domain.Document) []DocumentResponse {
	items := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		items = append(items, toResponse(&docs[i]))
	}
	return items
}
