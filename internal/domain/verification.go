package domain

import "time"

// VerificationStatus of an identity-proof application.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// VerificationApplication is a submitted identity-proof request.
// pending -> approved and pending -> rejected are the only valid
// transitions; both are terminal.
type VerificationApplication struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	ProfileID int64  `gorm:"column:profile_id;index" json:"profile_id"`
	UserID    int64  `gorm:"column:user_id;index" json:"user_id"`

	Status      VerificationStatus `gorm:"column:status;index" json:"status"`
	PhotoURL    string             `gorm:"column:photo_url" json:"photo_url"`
	DocumentURL string             `gorm:"column:document_url" json:"document_url"`

	SubmitterNotes string     `gorm:"column:submitter_notes" json:"submitter_notes,omitempty"`
	AdminNotes     string     `gorm:"column:admin_notes" json:"admin_notes,omitempty"`
	ReviewedBy     *int64     `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (VerificationApplication) TableName() string { return "verification_applications" }
