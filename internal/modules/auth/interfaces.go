package auth

import (
	"context"

	"velvetdir/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AgencyRepository interface {
	Create(ctx context.Context, a *domain.Agency) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
