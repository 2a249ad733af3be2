package auth

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered account. The password digest never leaves this package.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is a bearer-token login session
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its TTL
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Credentials is the register/login request body
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks and normalizes registration input
func (c *Credentials) Validate(requireName bool) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Name = strings.TrimSpace(c.Name)

	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}

	if len(c.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	if requireName && c.Name == "" {
		return fmt.Errorf("name is required")
	}

	return nil
}
