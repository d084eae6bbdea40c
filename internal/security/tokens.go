package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller as carried in a token.
type Identity struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenService issues and verifies HS256 access/refresh token pairs.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService { return &TokenService{cfg: cfg} }

func (s *TokenService) IssuePair(id Identity) (access, refresh string, err error) {
	if access, err = s.issue(id, TokenAccess, s.cfg.AccessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = s.issue(id, TokenRefresh, s.cfg.RefreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *TokenService) IssueAccess(id Identity) (string, error) {
	return s.issue(id, TokenAccess, s.cfg.AccessTTL)
}

func (s *TokenService) issue(id Identity, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      s.cfg.Issuer,
		"aud":      s.cfg.Audience,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
		"typ":      typ,
		"user_id":  id.UserID,
		"username": id.Username,
		"is_admin": id.IsAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// Verify parses raw, checks signature, expiry, iss/aud and the token type,
// and returns the embedded identity.
func (s *TokenService) Verify(raw, wantType string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithLeeway(30*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return Identity{}, ErrInvalidToken
	}

	uid, ok := claims["user_id"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return Identity{UserID: int64(uid), Username: username, IsAdmin: isAdmin}, nil
}
