package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/server/internal/module/person"
)

// Service handles registration and login.
type Service struct {
	persons         person.Repository
	jwt             *JWTManager
	invitationCodes []string
	logger          *zap.Logger
}

// NewService creates a new auth service.
func NewService(persons person.Repository, jwt *JWTManager, invitationCodes []string, logger *zap.Logger) *Service {
	return &Service{
		persons:         persons,
		jwt:             jwt,
		invitationCodes: invitationCodes,
		logger:          logger,
	}
}

// Register creates a new account. The invitation code gates who can
// sign up; without a matching code registration is rejected before any
// other validation leaks whether the email is known.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*person.Person, error) {
	if !s.validInvitationCode(req.InvitationCode) {
		return nil, ErrInvalidInvitationCode
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.persons.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, person.ErrPersonNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &person.Person{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.persons.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	s.logger.Info("person registered", zap.Int64("person_id", p.ID))
	return p, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	p, err := s.persons.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, person.ErrPersonNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load person: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(p)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) validInvitationCode(code string) bool {
	for _, c := range s.invitationCodes {
		if subtle.ConstantTimeCompare([]byte(c), []byte(code)) == 1 {
			return true
		}
	}
	return false
}
