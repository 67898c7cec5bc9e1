package auth

import "time"

// RegisterRequest is the payload for registering a new account.
// Registration is invitation-only: the code must match one of the
// configured invitation codes.
type RegisterRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	InvitationCode string `json:"invitation_code" binding:"required"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
