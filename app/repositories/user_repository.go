package repositories

import (
	"context"
	"fmt"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB. The
// email and verification token indexes are written in the same
// transaction as the document.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user, failing with ErrDuplicate if the email is taken.
func (r *BadgerUserRepository) Create(ctx context.Context, user *models.User) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		taken, err := exists(txn, userEmailKey(user.Email))
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicate
		}

		if err := putEntity(txn, userKey(user.ID), user); err != nil {
			return err
		}
		if err := txn.Set(userEmailKey(user.Email), []byte(user.ID)); err != nil {
			return err
		}
		if user.VerificationToken != "" {
			return txn.Set(userTokenKey(user.VerificationToken), []byte(user.ID))
		}
		return nil
	})
}

func (r *BadgerUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return getEntity(txn, userKey(id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *BadgerUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByIndex(ctx, userEmailKey(models.NormalizeEmail(email)))
}

func (r *BadgerUserRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return r.getByIndex(ctx, userTokenKey(token))
}

func (r *BadgerUserRepository) getByIndex(ctx context.Context, key []byte) (*models.User, error) {
	var user models.User
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		id, err := getIndex(txn, key)
		if err != nil {
			return err
		}
		return getEntity(txn, userKey(id), &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user, oldest first.
func (r *BadgerUserRepository) List(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(UserKeyPrefix), func(val []byte) error {
			var user models.User
			if err := unmarshalEntity(val, &user); err != nil {
				return fmt.Errorf("failed to unmarshal user: %w", err)
			}
			users = append(users, &user)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortBy(users, func(a, b *models.User) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return users, nil
}

// Update replaces the stored user and moves any index entries whose
// email or token changed.
func (r *BadgerUserRepository) Update(ctx context.Context, user *models.User) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		var existing models.User
		if err := getEntity(txn, userKey(user.ID), &existing); err != nil {
			return err
		}

		if existing.Email != user.Email {
			taken, err := exists(txn, userEmailKey(user.Email))
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicate
			}
			if err := txn.Delete(userEmailKey(existing.Email)); err != nil {
				return err
			}
			if err := txn.Set(userEmailKey(user.Email), []byte(user.ID)); err != nil {
				return err
			}
		}

		if existing.VerificationToken != user.VerificationToken {
			if existing.VerificationToken != "" {
				if err := txn.Delete(userTokenKey(existing.VerificationToken)); err != nil {
					return err
				}
			}
			if user.VerificationToken != "" {
				if err := txn.Set(userTokenKey(user.VerificationToken), []byte(user.ID)); err != nil {
					return err
				}
			}
		}

		return putEntity(txn, userKey(user.ID), user)
	})
}

// Delete removes a user and its index entries.
func (r *BadgerUserRepository) Delete(ctx context.Context, id string) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		var existing models.User
		if err := getEntity(txn, userKey(id), &existing); err != nil {
			return err
		}
		if err := txn.Delete(userEmailKey(existing.Email)); err != nil {
			return err
		}
		if existing.VerificationToken != "" {
			if err := txn.Delete(userTokenKey(existing.VerificationToken)); err != nil {
				return err
			}
		}
		return txn.Delete(userKey(id))
	})
}
