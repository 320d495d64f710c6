package domain

import "time"

// DefaultOwnerID is recorded on every document until real multi-tenant
// ownership exists.
const DefaultOwnerID int64 = 1

// AnonymousUser is the identity label recorded when the caller does not
// supply one.
const AnonymousUser = "Anonymous"

// Document is a catalog record for one uploaded file. Name is the
// normalized filename and acts as the case-insensitive upsert key;
// CreatedAt records the time of the most recent write, not the first one.
type Document struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Size           int64     `json:"size"`
	ContentType    string    `json:"content_type"`
	Path           string    `json:"path"`
	CreatedAt      time.Time `json:"created_at"`
	OwnerID        int64     `json:"owner_id"`
	LastModifiedBy string    `json:"last_modified_by"`
	ExtractedText  string    `json:"extracted_text"`
}
