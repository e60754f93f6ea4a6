package auth

import "velvetdir/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Phone    string `json:"phone" validate:"omitempty,min=5,max=32"`
	Role     string `json:"role" validate:"required,oneof=member provider agency"`

	// Agency registrations open an agency account in the same call.
	AgencyName     string `json:"agency_name" validate:"omitempty,min=2,max=100"`
	AgencyDistrict string `json:"agency_district" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    int64           `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Phone string          `json:"phone,omitempty"`
	Role  domain.UserRole `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
		Role:  u.Role,
	}
}
