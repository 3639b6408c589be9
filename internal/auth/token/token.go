// Package token issues and verifies the signed, expiring tokens used by the
// auth flows: access, refresh, and single-purpose email tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "intake/pkg/domain"
)

// Kind identifies a token family. Each kind has its own expiry, and access,
// refresh and email tokens are signed with independent secrets.
type Kind int

const (
	Access Kind = iota
	Refresh
	EmailForgotPassword
	EmailRegister
)

func (k Kind) String() string {
	switch k {
	case Access:
		return "access"
	case Refresh:
		return "refresh"
	case EmailForgotPassword:
		return string(EmailTypeForgotPassword)
	case EmailRegister:
		return string(EmailTypeRegister)
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// EmailType is the token_type discriminator embedded in email tokens.
type EmailType string

const (
	EmailTypeForgotPassword EmailType = "forgot_password"
	EmailTypeRegister       EmailType = "register"
)

// ParseEmailType maps a token_type string to its Kind.
func ParseEmailType(s string) (Kind, bool) {
	switch EmailType(s) {
	case EmailTypeForgotPassword:
		return EmailForgotPassword, true
	case EmailTypeRegister:
		return EmailRegister, true
	default:
		return 0, false
	}
}

func (k Kind) emailType() EmailType {
	switch k {
	case EmailForgotPassword:
		return EmailTypeForgotPassword
	case EmailRegister:
		return EmailTypeRegister
	default:
		return ""
	}
}

// Claims is the signed payload. Subject carries the principal ID.
type Claims struct {
	Role      string    `json:"role,omitempty"`
	TokenType EmailType `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (id.UserID, error) {
	return id.ParseUserID(c.Subject)
}

// Config holds per-kind secrets and expiries.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	EmailSecret   string

	AccessTTL         time.Duration
	RefreshTTL        time.Duration
	ForgotPasswordTTL time.Duration
	RegisterTTL       time.Duration
}

// Codec is stateless apart from its configuration and is safe for concurrent use.
type Codec struct {
	keys map[Kind][]byte
	ttls map[Kind]time.Duration
	now  func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// New builds a Codec from cfg.
func New(cfg Config, opts ...Option) *Codec {
	c := &Codec{
		keys: map[Kind][]byte{
			Access:              []byte(cfg.AccessSecret),
			Refresh:             []byte(cfg.RefreshSecret),
			EmailForgotPassword: []byte(cfg.EmailSecret),
			EmailRegister:       []byte(cfg.EmailSecret),
		},
		ttls: map[Kind]time.Duration{
			Access:              cfg.AccessTTL,
			Refresh:             cfg.RefreshTTL,
			EmailForgotPassword: cfg.ForgotPasswordTTL,
			EmailRegister:       cfg.RegisterTTL,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured lifetime for kind.
func (c *Codec) TTL(kind Kind) time.Duration {
	return c.ttls[kind]
}

// Issue signs claims as kind. The token ID, expiry, issue time and, for
// email kinds, the token_type discriminator are set by the codec, so two
// tokens issued in the same instant still differ.
func (c *Codec) Issue(kind Kind, claims Claims) (string, error) {
	key, ok := c.keys[kind]
	if !ok {
		return "", fmt.Errorf("issue token: unknown kind %s", kind)
	}
	if claims.Subject == "" {
		return "", errors.New("issue token: subject is required")
	}

	now := c.now()
	claims.ID = uuid.NewString()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttls[kind]))
	claims.TokenType = kind.emailType()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature, expiry and, for email kinds, the discriminator.
// Every failure is an *InvalidTokenError; its Reason is for logs only.
func (c *Codec) Verify(kind Kind, tokenString string) (*Claims, error) {
	key, ok := c.keys[kind]
	if !ok {
		return nil, invalid(kind, ReasonMalformed, fmt.Errorf("unknown kind %s", kind))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, invalid(kind, reasonFor(err), err)
	}

	if claims.TokenType != kind.emailType() {
		return nil, invalid(kind, ReasonWrongType, fmt.Errorf("token_type %q", claims.TokenType))
	}
	if claims.Subject == "" {
		return nil, invalid(kind, ReasonMalformed, errors.New("missing subject"))
	}
	return claims, nil
}

func reasonFor(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	default:
		return ReasonBadSignature
	}
}
