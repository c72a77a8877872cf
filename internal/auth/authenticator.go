// Package auth resolves bearer credentials to users and gates routes on them.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "readscape/internal/errors"
	"readscape/internal/model"
)

// Scheme selects how bearer credentials are issued and checked.
type Scheme string

const (
	// SchemeLegacy treats the decimal user id itself as the credential.
	SchemeLegacy Scheme = "legacy"
	// SchemeJWT issues HS256 tokens that are verified before any lookup.
	SchemeJWT Scheme = "jwt"
)

// UserLookup resolves a user id. It returns apperrors.ErrUserNotFound for unknown ids.
type UserLookup interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// Identity is the resolved caller of a request.
type Identity struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

// Authenticator validates bearer credentials against the identity store.
type Authenticator struct {
	scheme Scheme
	users  UserLookup
	jwt    *JWTService
	tokens TokenStoreInterface
}

// NewAuthenticator builds an Authenticator. jwtService and tokens are only
// consulted by SchemeJWT and may be nil for SchemeLegacy.
func NewAuthenticator(scheme Scheme, users UserLookup, jwtService *JWTService, tokens TokenStoreInterface) (*Authenticator, error) {
	switch scheme {
	case SchemeLegacy:
	case SchemeJWT:
		if jwtService == nil {
			return nil, errors.New("auth: jwt scheme requires a JWTService")
		}
	default:
		return nil, fmt.Errorf("auth: unknown scheme %q", scheme)
	}
	return &Authenticator{scheme: scheme, users: users, jwt: jwtService, tokens: tokens}, nil
}

// Scheme returns the configured scheme.
func (a *Authenticator) Scheme() Scheme {
	return a.scheme
}

// IssueToken returns the credential a client presents on later requests.
func (a *Authenticator) IssueToken(user *model.User) (string, error) {
	if a.scheme == SchemeJWT {
		return a.jwt.GenerateAccessToken(user.ID, user.Username)
	}
	return strconv.FormatUint(uint64(user.ID), 10), nil
}

// Authenticate resolves a raw credential. An empty credential yields
// ErrTokenMissing; anything that does not resolve to an existing user yields
// ErrInvalidToken. Storage failures are returned as-is.
func (a *Authenticator) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, apperrors.ErrTokenMissing
	}

	identity, err := a.parse(ctx, credential)
	if err != nil {
		return nil, err
	}

	if _, err := a.users.GetUser(ctx, identity.UserID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return identity, nil
}

// Revoke invalidates the credential behind identity for its remaining
// lifetime. Legacy credentials cannot be revoked.
func (a *Authenticator) Revoke(ctx context.Context, identity *Identity) error {
	if a.scheme != SchemeJWT || a.tokens == nil || identity.TokenID == "" {
		return nil
	}
	return a.tokens.Revoke(ctx, identity.TokenID, time.Until(identity.ExpiresAt))
}

func (a *Authenticator) parse(ctx context.Context, credential string) (*Identity, error) {
	if a.scheme == SchemeLegacy {
		id, ok := parseLegacyID(credential)
		if !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return &Identity{UserID: id}, nil
	}

	claims, err := a.jwt.ValidateToken(credential)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if a.tokens != nil {
		revoked, err := a.tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, apperrors.ErrInvalidToken
		}
	}
	identity := &Identity{UserID: claims.UserID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// parseLegacyID reads a decimal user id. An optional leading '+' and single
// underscores between digits are accepted, so "+1" and "1_0" resolve to 1 and 10.
func parseLegacyID(credential string) (uint, bool) {
	digits := strings.TrimPrefix(credential, "+")
	if digits == "" || digits[0] == '_' || digits[len(digits)-1] == '_' || strings.Contains(digits, "__") {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.ReplaceAll(digits, "_", ""), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ExtractCredential returns the token part of an Authorization header value:
// the second space separated field, or "" when there is none.
func ExtractCredential(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
