package repositories

import (
	"context"
	"fmt"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		found, err := exists(txn, postKey(post.ID))
		if err != nil {
			return err
		}
		if found {
			return ErrDuplicate
		}
		return putEntity(txn, postKey(post.ID), post)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves a page of posts, newest first
func (r *BadgerPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scanPrefix(txn, []byte(PostKeyPrefix), func(val []byte) error {
			var post models.Post
			if err := unmarshalEntity(val, &post); err != nil {
				return fmt.Errorf("failed to unmarshal post: %w", err)
			}
			posts = append(posts, &post)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortBy(posts, func(a, b *models.Post) bool { return a.CreatedAt.After(b.CreatedAt) })
	return paginate(posts, limit, offset), nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(ctx context.Context, post *models.Post) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		found, err := exists(txn, postKey(post.ID))
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		// Comments live under their own keys.
		stored := *post
		stored.Comments = nil
		return putEntity(txn, postKey(post.ID), &stored)
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(ctx context.Context, id string) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		found, err := exists(txn, postKey(id))
		if err != nil {
			return err
		}
		if !found {
			return ErrNotFound
		}
		return txn.Delete(postKey(id))
	})
}
