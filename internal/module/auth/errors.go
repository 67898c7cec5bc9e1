package auth

import "errors"

var (
	// ErrInvalidToken is returned when an access token fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials is returned when login fails. Wrong email
	// and wrong password are not distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInvitationCode is returned when registration is
	// attempted without a valid invitation code.
	ErrInvalidInvitationCode = errors.New("invalid invitation code")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)
