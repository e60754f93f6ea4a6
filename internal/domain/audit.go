package domain

import "time"

// AuditEntry records an admin-initiated state change: who did what to
// which record, with before/after values. Written for every tier,
// boost and verification mutation; a failed write is logged and never
// blocks the underlying operation.
type AuditEntry struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	ActorID     int64     `gorm:"column:actor_id;index" json:"actor_id"`
	ActorRole   string    `gorm:"column:actor_role" json:"actor_role"`
	Action      string    `gorm:"column:action" json:"action"`
	SubjectType string    `gorm:"column:subject_type" json:"subject_type"`
	SubjectID   int64     `gorm:"column:subject_id;index" json:"subject_id"`
	OldValue    string    `gorm:"column:old_value" json:"old_value,omitempty"`
	NewValue    string    `gorm:"column:new_value" json:"new_value,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (AuditEntry) TableName() string { return "audit_entries" }
