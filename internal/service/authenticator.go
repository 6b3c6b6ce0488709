package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"movie-library/internal/auth"
	"movie-library/internal/domain"
)

// dummyPassword is hashed once so unknown usernames cost one bcrypt comparison too.
const dummyPassword = "not-a-real-password"

// Tokens issues and verifies bearer tokens for a subject.
type Tokens interface {
	IssueFor(subject string) (string, error)
	Verify(token string) (string, error)
}

// Authenticator checks credentials and resolves bearer tokens to users.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	IssueToken(user *domain.User) (string, error)
	ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error)
}

type authenticator struct {
	users     UserDirectory
	hasher    auth.PasswordHasher
	tokens    Tokens
	dummyHash string
	logger    logrus.FieldLogger
}

func NewAuthenticator(users UserDirectory, hasher auth.PasswordHasher, tokens Tokens, logger logrus.FieldLogger) (Authenticator, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, errors.Wrap(err, "prepare authenticator")
	}
	return &authenticator{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
		logger:    fieldLogger(logger, "auth"),
	}, nil
}

// Authenticate returns the user owning username when password matches.
// Unknown users and wrong passwords both yield domain.ErrUnauthorized.
func (a *authenticator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		a.hasher.Verify(password, a.dummyHash)
		a.logger.WithField("username", username).Debug("login for unknown user")
		return nil, domain.ErrUnauthorized
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.WithField("username", username).Debug("login with wrong password")
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// IssueToken signs a bearer token whose subject is the username.
func (a *authenticator) IssueToken(user *domain.User) (string, error) {
	token, err := a.tokens.IssueFor(user.Username)
	if err != nil {
		return "", errors.Wrap(err, "issue token")
	}
	return token, nil
}

// ResolveCurrentUser maps a bearer token to a live user. A bad token and a
// user deleted after issuance fail the same way, with domain.ErrUnauthorized.
func (a *authenticator) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	subject, err := a.tokens.Verify(token)
	if err != nil {
		a.logger.WithError(err).Debug("rejected bearer token")
		return nil, domain.ErrUnauthorized
	}

	user, err := a.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.logger.WithField("username", subject).Debug("token subject no longer exists")
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
