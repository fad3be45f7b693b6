package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/course-service/internal/auth"
	"github.com/spec-kit/course-service/internal/config"
	"github.com/spec-kit/course-service/internal/domain"
	"github.com/spec-kit/course-service/internal/repository"
)

// Service is the in-process identity provider: it owns account records,
// role claims, and token issuance.
type Service struct {
	identities repository.IdentityRepository
	profiles   repository.ProfileRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// Dependencies encapsulates repo requirements for the identity service.
type Dependencies struct {
	IdentityRepo repository.IdentityRepository
	ProfileRepo  repository.ProfileRepository
}

// NewService builds the service.
func NewService(cfg config.Config, deps Dependencies) *Service {
	return &Service{
		identities: deps.IdentityRepo,
		profiles:   deps.ProfileRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// SignUp creates an account in three ordered steps: the identity record, the
// role claim, and the mirrored profile document. Steps are not transactional
// and earlier steps are not rolled back when a later one fails, so a profile
// write failure leaves an orphaned identity behind. The role string is stored
// as provided; it is not validated against the known roles, and there is no
// update path for it afterwards.
func (s *Service) SignUp(ctx context.Context, email, password, role string) (*domain.User, error) {
	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return nil, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, err
	}

	if err := s.identities.SetRoleClaim(ctx, identity.UID, domain.Role(role)); err != nil {
		return nil, err
	}
	identity.Role = domain.Role(role)

	profile := &domain.User{
		UID:   identity.UID,
		Email: email,
		Role:  identity.Role,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Login verifies credentials and issues a token carrying the role claim.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Identity, string, time.Time, error) {
	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if err := auth.ComparePassword(identity.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(identity.UID, identity.Email, identity.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return identity, token, exp, nil
}

// LookupEmail resolves an account's email address by uid.
func (s *Service) LookupEmail(ctx context.Context, uid string) (string, error) {
	identity, err := s.identities.GetByUID(ctx, uid)
	if err != nil {
		return "", err
	}
	return identity.Email, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *Service) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
