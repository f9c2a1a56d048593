package models

// User is the authenticated user's profile as returned by the backend.
type User struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// DocumentBinding records which uploaded document the active chat is
// grounded in. Re-upload overwrites it; it is never cleared otherwise.
type DocumentBinding struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
}
