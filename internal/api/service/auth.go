package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/pkg/cryptox"
	"github.com/hydrous-ai/hydrous/pkg/jwtx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_already_registered")

	// Verification rejections, ordered by pipeline stage.
	ErrRevoked          = errors.New("token_revoked")
	ErrExpired          = errors.New("token_expired")
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrMalformedSubject = errors.New("malformed_subject")
	ErrUnknownSubject   = errors.New("unknown_subject")
)

// AuthService is the token authority: it issues signed bearer tokens and
// verifies them on every request. Constructed once at startup with injected
// dependencies; no package-level state.
type AuthService struct {
	Store     store.Store
	Blacklist *BlacklistService
	Signer    *jwtx.HS256
	Issuer    string
	AccessTTL time.Duration
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

// RegisterUserInput carries the fields accepted at registration.
type RegisterUserInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	CompanyName string
	Location    string
	Sector      string
	Subsector   string
}

// RegisterUser creates a user with a hashed credential. Duplicate emails
// resolve to ErrEmailTaken. The duplicate check and insert run in one
// transaction so concurrent registrations cannot race past each other.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterUserInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CompanyName:  in.CompanyName,
		Location:     in.Location,
		Sector:       in.Sector,
		Subsector:    in.Subsector,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByEmail(ctx, in.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			err = ErrEmailTaken
		}
		if errors.Is(err, ErrEmailTaken) {
			log.Warn("registration with duplicate email", "email", in.Email)
		}
		return domain.User{}, err
	}

	log.Info("user created", "user_id", abbrev(user.ID))
	return user, nil
}

// AuthenticateUser checks an email/password pair. Unknown email and wrong
// password both resolve to ErrInvalidCredentials so callers can't probe for
// registered addresses.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login with unknown email", "email", email)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Warn("login with wrong password", "user_id", abbrev(user.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken mints a signed bearer token for the user. Stateless: no store
// access, a fresh random jti per token, expiry at now + access TTL. The only
// failure mode is signing-key misconfiguration, which app startup already
// rules out via Signer.Validate.
func (s *AuthService) IssueToken(userID string) (domain.TokenData, error) {
	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(userID, s.accessTTL(), s.Issuer, now)

	raw, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.TokenData{}, fmt.Errorf("sign token: %w", err)
	}

	return domain.TokenData{
		AccessToken: raw,
		TokenType:   "bearer",
		UserID:      userID,
		ExpiresAt:   claims.ExpiresAt.Time,
		JTI:         claims.ID,
	}, nil
}

// Login authenticates the credential pair, issues a token, and records the
// new session in the user's session registry. Session registration is
// best-effort and never fails the login.
func (s *AuthService) Login(ctx context.Context, email, password string, deviceInfo map[string]string) (domain.TokenData, error) {
	user, err := s.AuthenticateUser(ctx, email, password)
	if err != nil {
		return domain.TokenData{}, err
	}

	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(user.ID, s.accessTTL(), s.Issuer, now)

	raw, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.TokenData{}, fmt.Errorf("sign token: %w", err)
	}

	s.Blacklist.RegisterSession(ctx, user.ID, claims, deviceInfo)

	return domain.TokenData{
		AccessToken: raw,
		TokenType:   "bearer",
		UserID:      user.ID,
		ExpiresAt:   claims.ExpiresAt.Time,
		JTI:         claims.ID,
	}, nil
}

// VerifyToken runs the verification pipeline, in order:
//
//  1. blacklist lookup (ErrRevoked), first so a revoked token never
//     reaches identity resolution; the blacklist read itself fails open;
//  2. signature + expiry (ErrExpired, ErrInvalidSignature);
//  3. subject must parse as a UUID (ErrMalformedSubject);
//  4. the subject must resolve to a stored user (ErrUnknownSubject).
//
// On success it returns an identity snapshot with no secret fields and no
// side effects.
func (s *AuthService) VerifyToken(ctx context.Context, rawToken string) (*domain.Identity, error) {
	log := slogx.FromContext(ctx)

	if s.Blacklist.IsRevoked(ctx, rawToken) {
		log.Warn("rejected blacklisted token")
		return nil, ErrRevoked
	}

	claims, err := s.Signer.Verify(rawToken)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			log.Warn("rejected expired token")
			return nil, ErrExpired
		default:
			log.Warn("rejected invalid token", "err", err)
			return nil, ErrInvalidSignature
		}
	}

	userUUID, err := uuid.Parse(claims.Subject)
	if err != nil {
		log.Warn("token subject is not a uuid", "sub", claims.Subject)
		return nil, ErrMalformedSubject
	}

	user, err := s.Store.Users().GetUserByID(ctx, userUUID.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("token subject does not exist", "user_id", abbrev(claims.Subject))
			return nil, ErrUnknownSubject
		}
		return nil, err
	}

	identity := user.Identity()
	return &identity, nil
}

// Logout revokes the presented token. Write-path store errors are returned
// so the caller can report a failed logout (fail-closed).
func (s *AuthService) Logout(ctx context.Context, rawToken, userID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Blacklist.Revoke(ctx, rawToken); err != nil {
		return err
	}

	log.Info("logout", "user_id", abbrev(userID))
	return nil
}

// LogoutAllDevices sweeps the user's session registry, keeping the current
// token's session out of the count. See BlacklistService.RevokeAllSessions
// for what the sweep does and does not revoke.
func (s *AuthService) LogoutAllDevices(ctx context.Context, userID, currentToken string) (int, error) {
	return s.Blacklist.RevokeAllSessions(ctx, userID, DeriveJTI(currentToken))
}
