package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"velvetdir/internal/domain"
)

// Service handles account registration and login. Admin accounts are
// never created through the public endpoint; they come from the seed
// binary.
type Service struct {
	users    UserRepository
	agencies AgencyRepository
	tokens   TokenIssuer
}

func NewService(users UserRepository, agencies AgencyRepository, tokens TokenIssuer) *Service {
	return &Service{users: users, agencies: agencies, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role := domain.UserRole(req.Role)
	switch role {
	case domain.RoleMember, domain.RoleProvider, domain.RoleAgency:
	default:
		return nil, ErrInvalidRole
	}

	if role == domain.RoleAgency {
		if strings.TrimSpace(req.AgencyName) == "" {
			return nil, ErrAgencyNameRequired
		}
		if d := strings.TrimSpace(req.AgencyDistrict); d != "" && !domain.ValidDistrict(d) {
			return nil, ErrUnknownDistrict
		}
	}

	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         req.Name,
		Phone:        req.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if role == domain.RoleAgency {
		agency := &domain.Agency{
			UserID:           user.ID,
			Name:             strings.TrimSpace(req.AgencyName),
			District:         strings.TrimSpace(req.AgencyDistrict),
			SubscriptionTier: domain.AgencyTierNone,
			ModelLimit:       0,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.agencies.Create(ctx, agency); err != nil {
			return nil, err
		}
	}

	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me resolves the authenticated user from a token's claims.
func (s *Service) Me(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) issue(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
