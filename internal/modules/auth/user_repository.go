package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike, so login failures don't leak which one it was
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an existing email
	ErrEmailTaken = errors.New("email already registered")

	// ErrSessionInvalid is returned for unknown or expired tokens
	ErrSessionInvalid = errors.New("session invalid or expired")
)

// UserRepository handles user and session persistence
type UserRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, log zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log.With().Str("repo", "user").Logger(),
	}
}

// Register creates a new user. The password is stored as a bcrypt hash;
// bcrypt handles salting internally.
func (r *UserRepository) Register(creds Credentials) (User, error) {
	if err := creds.Validate(true); err != nil {
		return User{}, err
	}

	var exists int
	err := r.db.QueryRow("SELECT 1 FROM users WHERE email = ? LIMIT 1", creds.Email).Scan(&exists)
	if err == nil {
		return User{}, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		ID:        uuid.NewString(),
		Name:      creds.Name,
		Email:     creds.Email,
		CreatedAt: time.Now().UTC(),
	}

	_, err = r.db.Exec(
		"INSERT INTO users (id, name, email, password_digest, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, string(hash),
		user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info().Str("email", user.Email).Msg("User registered")
	return user, nil
}

// Authenticate verifies credentials and returns the matching user
func (r *UserRepository) Authenticate(creds Credentials) (User, error) {
	if err := creds.Validate(false); err != nil {
		return User{}, ErrInvalidCredentials
	}

	var user User
	var storedHash, createdAt string
	err := r.db.QueryRow(
		"SELECT id, name, email, password_digest, created_at FROM users WHERE email = ?",
		creds.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &storedHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		user.CreatedAt = t
	}

	return user, nil
}

// CreateSession issues a bearer token for a user
func (r *UserRepository) CreateSession(userID string, ttl time.Duration) (Session, error) {
	session := Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	_, err := r.db.Exec(
		"INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)",
		session.Token, session.UserID, session.ExpiresAt.Format(time.RFC3339),
	)
	if err != nil {
		return Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ValidateToken resolves a bearer token to its session. Expired sessions are
// deleted on sight.
func (r *UserRepository) ValidateToken(token string) (Session, error) {
	var session Session
	var expiresAt string

	err := r.db.QueryRow(
		"SELECT token, user_id, expires_at FROM sessions WHERE token = ?",
		token,
	).Scan(&session.Token, &session.UserID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrSessionInvalid
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up session: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, expiresAt); err == nil {
		session.ExpiresAt = t
	}

	if session.Expired() {
		_, _ = r.db.Exec("DELETE FROM sessions WHERE token = ?", token)
		return Session{}, ErrSessionInvalid
	}

	return session, nil
}

// DeleteSession logs a session out
func (r *UserRepository) DeleteSession(token string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
