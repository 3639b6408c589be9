package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	id "intake/pkg/domain"
)

var allKinds = []Kind{Access, Refresh, EmailForgotPassword, EmailRegister}

type CodecSuite struct {
	suite.Suite
	now   time.Time
	codec *Codec
	user  id.UserID
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecSuite))
}

func (s *CodecSuite) SetupTest() {
	s.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	s.codec = New(Config{
		AccessSecret:      "access-secret",
		RefreshSecret:     "refresh-secret",
		EmailSecret:       "email-secret",
		AccessTTL:         30 * time.Minute,
		RefreshTTL:        7 * 24 * time.Hour,
		ForgotPasswordTTL: time.Hour,
		RegisterTTL:       72 * time.Hour,
	}, WithClock(func() time.Time { return s.now }))
	s.user = id.NewUserID()
}

func (s *CodecSuite) claimsFor(role string) Claims {
	return Claims{Role: role, RegisteredClaims: jwt.RegisteredClaims{Subject: s.user.String()}}
}

func (s *CodecSuite) TestRoundTripPerKind() {
	for _, kind := range allKinds {
		s.Run(kind.String(), func() {
			tok, err := s.codec.Issue(kind, s.claimsFor("clinician"))
			s.Require().NoError(err)

			claims, err := s.codec.Verify(kind, tok)
			s.Require().NoError(err)

			s.Equal(s.user.String(), claims.Subject)
			s.Equal("clinician", claims.Role)
			s.True(claims.ExpiresAt.Time.Equal(s.now.Add(s.codec.TTL(kind))))

			userID, err := claims.UserID()
			s.Require().NoError(err)
			s.Equal(s.user, userID)
		})
	}
}

func (s *CodecSuite) TestTokenRejectedByEveryOtherKind() {
	for _, issued := range allKinds {
		tok, err := s.codec.Issue(issued, s.claimsFor(""))
		s.Require().NoError(err)

		for _, other := range allKinds {
			if other == issued {
				continue
			}
			s.Run(issued.String()+" as "+other.String(), func() {
				_, err := s.codec.Verify(other, tok)
				s.Require().ErrorIs(err, ErrInvalidToken)
			})
		}
	}
}

func (s *CodecSuite) TestEmailDiscriminator() {
	s.Run("forgot-password token is rejected as register with wrong_type", func() {
		tok, err := s.codec.Issue(EmailForgotPassword, s.claimsFor(""))
		s.Require().NoError(err)

		_, err = s.codec.Verify(EmailRegister, tok)
		s.Equal(ReasonWrongType, ReasonOf(err))
	})

	s.Run("issued email token carries token_type", func() {
		tok, err := s.codec.Issue(EmailRegister, s.claimsFor(""))
		s.Require().NoError(err)

		claims, err := s.codec.Verify(EmailRegister, tok)
		s.Require().NoError(err)
		s.Equal(EmailTypeRegister, claims.TokenType)
	})
}

func (s *CodecSuite) TestSameInstantTokensDiffer() {
	first, err := s.codec.Issue(Refresh, s.claimsFor(""))
	s.Require().NoError(err)
	second, err := s.codec.Issue(Refresh, s.claimsFor(""))
	s.Require().NoError(err)
	s.NotEqual(first, second)

	claims, err := s.codec.Verify(Refresh, first)
	s.Require().NoError(err)
	s.NotEmpty(claims.ID)
}

func (s *CodecSuite) TestExpiry() {
	for _, kind := range allKinds {
		s.Run(kind.String(), func() {
			issuedAt := s.now
			tok, err := s.codec.Issue(kind, s.claimsFor(""))
			s.Require().NoError(err)

			s.now = issuedAt.Add(s.codec.TTL(kind) + time.Second)
			defer func() { s.now = issuedAt }()

			_, err = s.codec.Verify(kind, tok)
			s.Require().ErrorIs(err, ErrInvalidToken)
			s.Equal(ReasonExpired, ReasonOf(err))
		})
	}
}

func (s *CodecSuite) TestFailureReasons() {
	s.Run("tampered signature", func() {
		tok, err := s.codec.Issue(Access, s.claimsFor(""))
		s.Require().NoError(err)
		tampered := tok[:len(tok)-2] + flip(tok[len(tok)-2:])

		_, err = s.codec.Verify(Access, tampered)
		s.Equal(ReasonBadSignature, ReasonOf(err))
	})

	s.Run("garbage input", func() {
		_, err := s.codec.Verify(Access, "not-a-jwt")
		s.Equal(ReasonMalformed, ReasonOf(err))
	})

	s.Run("other signing algorithm", func() {
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, s.claimsFor("")).SignedString(jwt.UnsafeAllowNoneSignatureType)
		s.Require().NoError(err)

		_, err = s.codec.Verify(Access, none)
		s.Require().ErrorIs(err, ErrInvalidToken)
	})

	s.Run("error message does not leak claims", func() {
		_, err := s.codec.Verify(Refresh, "not-a-jwt")
		s.Equal("invalid refresh token: malformed", err.Error())
	})
}

func TestIssueRequiresSubject(t *testing.T) {
	codec := New(Config{AccessSecret: "a", AccessTTL: time.Minute})
	_, err := codec.Issue(Access, Claims{})
	require.Error(t, err)
}

func TestParseEmailType(t *testing.T) {
	kind, ok := ParseEmailType("forgot_password")
	assert.True(t, ok)
	assert.Equal(t, EmailForgotPassword, kind)

	kind, ok = ParseEmailType("register")
	assert.True(t, ok)
	assert.Equal(t, EmailRegister, kind)

	_, ok = ParseEmailType("access")
	assert.False(t, ok)
}

func flip(s string) string {
	if strings.HasPrefix(s, "A") {
		return "B" + s[1:]
	}
	return "A" + s[1:]
}
