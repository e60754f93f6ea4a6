package domain

import "time"

type UserRole string

const (
	RoleMember   UserRole = "member"
	RoleProvider UserRole = "provider"
	RoleAgency   UserRole = "agency"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleMember, RoleProvider, RoleAgency, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Role         UserRole  `gorm:"column:role" json:"role"`
	Name         string    `gorm:"column:name" json:"name"`
	Phone        string    `gorm:"column:phone" json:"phone,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Actor identifies who performs an admin or self-service operation.
// Services take it explicitly instead of reading ambient session
// state, which keeps them testable without a live auth layer.
type Actor struct {
	ID   int64
	Role UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
