package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jigsawlab/jigsaw-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, email, password, preferredLanguage string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db       *sql.DB
	eventSvc EventServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, eventSvc EventServiceProvider) *UserService {
	return &UserService{db: db, eventSvc: eventSvc}
}

// Register creates a new user, hashing their password. Returns
// ErrDuplicateEmail if the email is already registered.
func (s *UserService) Register(ctx context.Context, username, email, password, preferredLanguage string) (models.User, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists)
	if err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if preferredLanguage == "" {
		preferredLanguage = "en"
	}

	user := models.User{
		ID:                uuid.New().String(),
		Username:          username,
		Email:             email,
		PasswordHash:      string(hashedPassword),
		PreferredLanguage: preferredLanguage,
		CreatedAt:         time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, username, email, password_hash, preferred_language, created_at) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.PreferredLanguage, user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	if s.eventSvc != nil {
		s.eventSvc.CreateEvent("user.registered", "info", fmt.Sprintf("User %s registered", user.Username), &user.ID)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. Returns ErrInvalidCredentials
// for both an unknown email and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, total_score, puzzles_completed, preferred_language, created_at FROM users WHERE email = ?",
		email)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.TotalScore, &user.PuzzlesCompleted, &user.PreferredLanguage, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, email, total_score, puzzles_completed, preferred_language, created_at FROM users WHERE id = ?",
		id)
	err := row.Scan(&user.ID, &user.Username, &user.Email,
		&user.TotalScore, &user.PuzzlesCompleted, &user.PreferredLanguage, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}
