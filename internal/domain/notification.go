package domain

import "time"

// Notification is an in-app message for a tenant user. Writes are
// fire-and-forget from the workflow services.
type Notification struct {
	ID        int64             `json:"id"`
	TenantID  int64             `json:"tenant_id"`
	UserID    int64             `json:"user_id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	IsRead    bool              `json:"is_read"`
	CreatedOn time.Time         `json:"created_on"`
}
