package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/gallery-service/internal/apperrors"
	"github.com/Dan9191/gallery-service/internal/models"
	"github.com/Dan9191/gallery-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user with a bcrypt-hashed password
func (s *Service) Register(email, password, username string) error {
	if email == "" {
		return apperrors.Validation("Email is required")
	}
	if password == "" {
		return apperrors.Validation("Password is required")
	}
	if username == "" {
		return apperrors.Validation("Username is required")
	}

	_, err := s.store.FindUserByEmail(email)
	if err == nil {
		return apperrors.Conflict("User with this email already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return apperrors.Internal("failed to check existing user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("failed to hash password", err)
	}

	id, err := s.store.NextID("users")
	if err != nil {
		return apperrors.Internal("failed to allocate user id", err)
	}

	user := &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(user); err != nil {
		return apperrors.Internal("failed to create user", err)
	}

	if s.mail != nil {
		go func(to, name string) {
			if err := s.mail.SendWelcome(to, name); err != nil {
				s.log.Errorf("Failed to send welcome email to %s: %v", to, err)
			}
		}(user.Email, user.Username)
	}

	s.log.Infof("User registered: %s", user.Email)
	return nil
}

// Login authenticates a user and returns a signed bearer token.
// Unknown email and wrong password produce the same error so the response
// cannot be used to probe which addresses are registered.
func (s *Service) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperrors.Validation("Email and password are required")
	}

	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperrors.Unauthorized("Invalid email or password")
		}
		return "", apperrors.Internal("failed to find user", err)
	}

	// Inactive accounts are refused regardless of password correctness
	if !user.IsActive {
		return "", apperrors.Inactive("Account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("Invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperrors.Internal(fmt.Sprintf("failed to issue token for user %d", user.ID), err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, nil
}
