package account

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
)

// Session is what a successful register or login returns.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`

	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func newSession(tokens *auth.Tokens, id uint, name, email, role string) (*Session, error) {
	token, exp, err := tokens.Issue(id, role)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		ExpiresAt: exp,
		UserID:    id,
		Name:      name,
		Email:     email,
		Role:      role,
	}, nil
}
