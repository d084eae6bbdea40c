package usecase

import (
	"context"

	domain "github.com/dzmitrysafronau/shop-project/internal/entity"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Register creates user accounts. Duplicate email/username surfaces as a
// validation failure from the repo.
type Register struct {
	users  UserRepo
	hasher PasswordHasher
}

func NewRegister(users UserRepo, hasher PasswordHasher) *Register {
	return &Register{users: users, hasher: hasher}
}

func (uc *Register) Execute(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(reg.Password)
	if err != nil {
		return nil, domain.WrapInternal(err)
	}
	u := &domain.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hash,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
