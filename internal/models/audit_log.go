package models

import "time"

// AuditLog records a user-initiated mutation for traceability. Writes are
// best-effort and never block the primary operation.
type AuditLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Action       string    `gorm:"not null" json:"action"`
	ResourceType string    `gorm:"not null" json:"resource_type"`
	ResourceID   uint      `json:"resource_id"`
	IPAddress    string    `json:"ip_address"`
	Changes      string    `gorm:"type:text" json:"changes"`
	CreatedAt    time.Time `json:"created_at"`
}
