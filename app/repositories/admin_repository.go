package repositories

import (
	"context"
	"fmt"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerAdminRepository keys admin records by user id, so a user can be
// promoted at most once.
type BadgerAdminRepository struct {
	db *badger.DB
}

func NewBadgerAdminRepository(db *badger.DB) *BadgerAdminRepository {
	return &BadgerAdminRepository{db: db}
}

func (r *BadgerAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		found, err := exists(txn, adminKey(admin.UserID))
		if err != nil {
			return err
		}
		if found {
			return ErrDuplicate
		}
		return putEntity(txn, adminKey(admin.UserID), admin)
	})
}

func (r *BadgerAdminRepository) GetByUserID(ctx context.Context, userID string) (*models.Admin, error) {
	var admin models.Admin
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return getEntity(txn, adminKey(userID), &admin)
	})
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *BadgerAdminRepository) List(ctx context.Context) ([]*models.Admin, error) {
	admins := []*models.Admin{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(AdminKeyPrefix), func(val []byte) error {
			var admin models.Admin
			if err := unmarshalEntity(val, &admin); err != nil {
				return fmt.Errorf("failed to unmarshal admin: %w", err)
			}
			admins = append(admins, &admin)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return admins, nil
}
