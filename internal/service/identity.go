package service

import (
	"net/mail"
	"strings"

	"paint-it-black-manufacturer/internal/model"
)

// Identity is the verified caller, as yielded by the token service.
type Identity struct {
	Subject string
	Role    model.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", validationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", validationError("email is malformed")
	}
	return email, nil
}

// authorize requires the caller to act on its own behalf and returns the owner in the
// normalized form used as the stored user id.
func authorize(caller Identity, owner string) (string, error) {
	if caller.Subject == "" {
		return "", ErrAuthorizationDenied
	}
	normalized, err := normalizeEmail(owner)
	if err != nil {
		return "", err
	}
	if caller.Subject != normalized {
		return "", ErrAuthorizationDenied
	}
	return normalized, nil
}
