package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"movie-library/internal/auth"
	"movie-library/internal/domain"
	"movie-library/internal/repository"
)

const (
	msgUserExists     = "Username or email already exists."
	msgUsernameExists = "Username already exists."
	msgEmailTaken     = "Email is taken."

	// a unique violation on insert does not say which column collided
	fieldIdentity = "username_or_email"
)

// RegistrationInput is a validated sign-up request carrying the plaintext password.
type RegistrationInput struct {
	Username string
	Password string
	Email    *string
}

// UserDirectory owns user accounts.
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Register(ctx context.Context, in RegistrationInput) (*domain.User, error)
	Update(ctx context.Context, user *domain.User, edit domain.UserEdit) (*domain.User, error)
	Delete(ctx context.Context, user *domain.User) (int64, error)
}

type userDirectory struct {
	store  Store
	hasher auth.PasswordHasher
	logger logrus.FieldLogger
}

func NewUserDirectory(store Store, hasher auth.PasswordHasher, logger logrus.FieldLogger) UserDirectory {
	return &userDirectory{
		store:  store,
		hasher: hasher,
		logger: fieldLogger(logger, "users"),
	}
}

// FindByUsername returns the user or an error wrapping domain.ErrNotFound.
func (d *userDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := d.store.Users().GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return user, nil
}

func (d *userDirectory) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := d.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return user, nil
}

// Create stores a user whose password is already hashed. A taken username or
// email yields a *domain.ConflictError.
func (d *userDirectory) Create(ctx context.Context, user *domain.User) error {
	if err := d.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.NewConflict(fieldIdentity, msgUserExists)
		}
		return errors.Wrap(err, "create user")
	}
	d.logger.WithField("user_id", user.ID).Info("user registered")
	return nil
}

// Register hashes the password and creates the account.
func (d *userDirectory) Register(ctx context.Context, in RegistrationInput) (*domain.User, error) {
	hash, err := d.hasher.Hash(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "register user")
	}
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := d.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies edit to user. A changed username is checked before a changed
// email and the first collision is reported with its field.
func (d *userDirectory) Update(ctx context.Context, user *domain.User, edit domain.UserEdit) (*domain.User, error) {
	var updated *domain.User
	err := d.store.Execute(ctx, func(repos repository.Repositories) error {
		users := repos.Users()

		if edit.Username != user.Username {
			existing, err := users.GetByUsername(ctx, edit.Username)
			taken, err := takenByOther(existing, err, user.ID)
			if err != nil {
				return errors.Wrap(err, "check username")
			}
			if taken {
				return domain.NewConflict("username", msgUsernameExists)
			}
		}

		if edit.Email != nil && *edit.Email != user.EmailValue() {
			existing, err := users.GetByEmail(ctx, *edit.Email)
			taken, err := takenByOther(existing, err, user.ID)
			if err != nil {
				return errors.Wrap(err, "check email")
			}
			if taken {
				return domain.NewConflict("email", msgEmailTaken)
			}
		}

		next := *user
		next.Username = edit.Username
		next.Email = edit.Email
		if edit.PasswordHash != nil {
			next.PasswordHash = *edit.PasswordHash
		}
		if err := users.Update(ctx, &next); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return domain.NewConflict(fieldIdentity, msgUserExists)
			}
			return errors.Wrap(err, "update user")
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the user and reports how many rows went away.
func (d *userDirectory) Delete(ctx context.Context, user *domain.User) (int64, error) {
	n, err := d.store.Users().Delete(ctx, user.ID)
	if err != nil {
		return 0, errors.Wrap(err, "delete user")
	}
	d.logger.WithFields(logrus.Fields{"user_id": user.ID, "removed": n}).Info("user deleted")
	return n, nil
}

func takenByOther(found *domain.User, err error, self uuid.UUID) (bool, error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return found.ID != self, nil
	}
}
