package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

// UserAccounts is the user store used for signup and login.
type UserAccounts interface {
	UserDirectory
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// SignupInput is the signup request body. IsActive defaults to true.
type SignupInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=25"`
	Email    string `json:"email"    validate:"required,email,max=80"`
	Password string `json:"password" validate:"required,min=6"`
	IsStaff  bool   `json:"is_staff"`
	IsActive *bool  `json:"is_active"`
}

// LoginInput is the login request body.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is returned by a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthService struct {
	users  UserAccounts
	tokens *auth.JWT
}

func NewAuthService(users UserAccounts, tokens *auth.JWT) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup creates an account. Usernames and emails are unique.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, firstViolation(errs)
	}

	taken, err := s.users.Exists(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(ErrBadRequest, "User with the username or email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		IsStaff:  in.IsStaff,
		IsActive: active,
	}
	// Exists can race a concurrent signup; the unique index is the final word.
	err = s.users.Create(ctx, user)
	if errors.Is(err, repositories.ErrUserExists) {
		return nil, newError(ErrBadRequest, "User with the username or email already exists")
	}
	if err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("user signed up", "user_id", user.ID, "username", user.Username, "staff", user.IsStaff)
	return user, nil
}

// Login checks credentials and issues an access and refresh token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, in.Username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return TokenPair{}, newError(ErrUnauthorized, "Invalid Username or Password")
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return TokenPair{}, newError(ErrUnauthorized, "Invalid Username or Password")
	}
	if !user.IsActive {
		return TokenPair{}, newError(ErrUnauthorized, "User is inactive")
	}
	return s.issue(user.Username)
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	subject, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", newError(ErrUnauthorized, "Please provide a valid refresh token")
	}
	user, err := s.users.FindByUsername(ctx, subject)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return "", newError(ErrUnauthorized, detailInvalidToken)
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", newError(ErrUnauthorized, "User is inactive")
	}
	return s.tokens.GenerateToken(subject)
}

// IssueFor mints a token pair for an existing user without a password check.
func (s *AuthService) IssueFor(ctx context.Context, username string) (TokenPair, error) {
	if _, err := s.users.FindByUsername(ctx, username); err != nil {
		return TokenPair{}, err
	}
	return s.issue(username)
}

func (s *AuthService) issue(subject string) (TokenPair, error) {
	access, err := s.tokens.GenerateToken(subject)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(subject)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}
