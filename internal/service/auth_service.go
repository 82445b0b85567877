package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todo-tracker/internal/apperr"
	"todo-tracker/internal/model"
	"todo-tracker/internal/repository"
	"todo-tracker/internal/validation"
)

const invalidCredentials = "Invalid credentials"

// AuthService handles signup, login and identity lookup.
type AuthService struct {
	users *repository.UserRepository
	cost  int
}

func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// Signup registers a new account and returns its public projection.
func (s *AuthService) Signup(ctx context.Context, body validation.Payload) (model.PublicUser, error) {
	email, err := body.RequiredString("email", "Email")
	if err != nil {
		return model.PublicUser{}, err
	}
	password, err := body.RequiredString("password", "Password")
	if err != nil {
		return model.PublicUser{}, err
	}
	if !validation.Email(email) {
		return model.PublicUser{}, apperr.Validation("Invalid email format")
	}
	if !validation.Password(password) {
		return model.PublicUser{}, apperr.Validation(fmt.Sprintf("Password must be at least %d characters long", validation.MinPasswordLength))
	}

	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return model.PublicUser{}, apperr.Validation("Email already registered")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return model.PublicUser{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, &user); err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

// Login checks credentials. Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, body validation.Payload) (model.PublicUser, error) {
	email, err := body.RequiredString("email", "Email")
	if err != nil {
		return model.PublicUser{}, err
	}
	password, err := body.RequiredString("password", "Password")
	if err != nil {
		return model.PublicUser{}, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.PublicUser{}, apperr.Unauthorized(invalidCredentials)
		}
		return model.PublicUser{}, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.PublicUser{}, apperr.Unauthorized(invalidCredentials)
	}
	return user.Public(), nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, notFound(err, "User not found")
	}
	return user.Public(), nil
}
