package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-library/internal/domain"
)

func newTestTokenService(t *testing.T, now time.Time) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-signing-key", "HS256", 30*time.Minute)
	require.NoError(t, err)
	svc.now = func() time.Time { return now }
	return svc
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(t, issuedAt)

	token, err := svc.IssueFor("alice")
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(t, issuedAt)

	token, err := svc.Issue("alice", time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(time.Minute + time.Second) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_Truncated(t *testing.T) {
	svc := newTestTokenService(t, time.Unix(1_700_000_000, 0))

	token, err := svc.IssueFor("alice")
	require.NoError(t, err)

	_, err = svc.Verify(token[:len(token)-5])
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_WrongKey(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(t, now)

	other, err := NewTokenService("another-key", "HS256", time.Hour)
	require.NoError(t, err)
	other.now = func() time.Time { return now }

	token, err := other.IssueFor("alice")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RejectsOtherAlgorithm(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(t, now)

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RequiresSubjectAndExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestTokenService(t, now)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"}).
		SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	_, err = svc.Verify(noExpiry)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	noSubject, err := svc.IssueFor("")
	require.NoError(t, err)
	_, err = svc.Verify(noSubject)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService("", "HS256", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenService("key", "RS256", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenService("key", "HS256", 0)
	assert.Error(t, err)

	svc, err := NewTokenService("key", "hs512", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TTL())
}
