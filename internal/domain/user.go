package domain

// User is an identity record keyed by a browser-generated ID. Only the
// seeder touches it; the upload path records a free-text identity label
// instead of a foreign key to this table.
type User struct {
	ID        int64  `json:"id"`
	BrowserID string `json:"browser_id"`
	Nickname  string `json:"nickname"`
}
