package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

type authGateway interface {
	SignIn(ctx context.Context, req models.SignInRequest) (models.SignInGrant, error)
	SignOut(ctx context.Context, token string) error
	Profile(ctx context.Context, token string, role models.UserRole) (models.Profile, error)
	ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) (string, error)
	UpdateProfile(ctx context.Context, token string, fields map[string]string, files []apiclient.File) (string, error)
	ToggleNotifications(ctx context.Context, token string) (string, error)
	ToggleAccount(ctx context.Context, token string) (string, error)
}

// AuthService signs users in against the API and manages their portal sessions.
type AuthService struct {
	repo      authGateway
	sessions  *SessionService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authGateway, sessions *SessionService, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, sessions: sessions, validator: validate, logger: logger, now: time.Now}
}

// SignIn exchanges credentials for an API token and opens a portal session.
func (s *AuthService) SignIn(ctx context.Context, req models.SignInRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sign-in payload")
	}

	grant, err := s.repo.SignIn(ctx, req)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrUnauthorized.Code) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, appErrors.FromError(err).Message)
		}
		return nil, err
	}
	if grant.Token == "" {
		return nil, appErrors.Clone(appErrors.ErrUpstreamMalformed, "sign-in response did not include a credential")
	}

	// The API signs the credential; the portal only reads its claims.
	var claims models.CredentialClaims
	if _, _, err := jwt.NewParser().ParseUnverified(grant.Token, &claims); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, "received an unreadable credential")
	}
	if claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "credential has already expired")
	}

	role := grant.Role
	if !role.Valid() {
		role = claims.Role
	}
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "this account has no portal access")
	}

	session, err := s.sessions.Create(ctx, uuid.NewString(), grant.Token, claims, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user signed in", zap.String("user_id", claims.UserID), zap.String("role", string(role)))
	return session, nil
}

// SignOut revokes the credential upstream when possible and always drops the session.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) {
	session, err := s.sessions.Resolve(ctx, sessionID)
	if err == nil {
		if err := s.repo.SignOut(ctx, session.Token); err != nil {
			s.logger.Warn("upstream sign-out failed", zap.Error(err))
		}
	}
	s.sessions.Invalidate(ctx, sessionID)
}

// Profile returns the signed-in account.
func (s *AuthService) Profile(ctx context.Context, creds Credentials, role models.UserRole) (models.Profile, error) {
	token, err := creds.Token(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	profile, err := s.repo.Profile(ctx, token, role)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return models.Profile{}, err
	}
	return profile, nil
}

// ChangePassword replaces the account password.
func (s *AuthService) ChangePassword(ctx context.Context, creds Credentials, req models.ChangePasswordRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "new password must be at least 6 characters and differ from the old one")
	}
	token, err := creds.Token(ctx)
	if err != nil {
		return "", err
	}
	msg, err := s.repo.ChangePassword(ctx, token, req)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return "", err
	}
	return msg, nil
}

// UpdateProfile forwards the validated account settings.
func (s *AuthService) UpdateProfile(ctx context.Context, creds Credentials, fields map[string]string, files []apiclient.File) (string, error) {
	token, err := creds.Token(ctx)
	if err != nil {
		return "", err
	}
	msg, err := s.repo.UpdateProfile(ctx, token, fields, files)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return "", err
	}
	return msg, nil
}

// ToggleNotifications flips whether the account receives notifications.
func (s *AuthService) ToggleNotifications(ctx context.Context, creds Credentials) (string, error) {
	return s.toggle(ctx, creds, "notifications", s.repo.ToggleNotifications)
}

// ToggleAccount flips whether the account is active.
func (s *AuthService) ToggleAccount(ctx context.Context, creds Credentials) (string, error) {
	return s.toggle(ctx, creds, "account", s.repo.ToggleAccount)
}

func (s *AuthService) toggle(ctx context.Context, creds Credentials, setting string, flip func(context.Context, string) (string, error)) (string, error) {
	token, err := creds.Token(ctx)
	if err != nil {
		return "", err
	}
	msg, err := flip(ctx, token)
	if err != nil {
		rejectCredential(ctx, creds, err)
		return "", err
	}
	s.logger.Info("account setting toggled", zap.String("setting", setting))
	return msg, nil
}

// rejectCredential drops the credential when the API refused it.
func rejectCredential(ctx context.Context, creds Credentials, err error) {
	if appErrors.HasCode(err, appErrors.ErrUnauthorized.Code) {
		creds.Invalidate(ctx)
	}
}
