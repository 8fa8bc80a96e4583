package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"shophop/internal/domain/entity"
	"shophop/internal/domain/repository"
	"shophop/pkg/errors"
)

// TokenGenerator issues an access token for a user id.
type TokenGenerator interface {
	Generate(userID string) (string, error)
}

type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenGenerator
}

func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenGenerator) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.Conflict("Email is already registered", nil)
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Email:        email,
		Username:     input.Username,
		PasswordHash: string(hash),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to issue token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid email or password", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}

	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to issue token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}
