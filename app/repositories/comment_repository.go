package repositories

import (
	"context"
	"fmt"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB.
// Comments are keyed comment:<postID>:<id> so a post's comments share a prefix.
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		return putEntity(txn, commentKey(comment.PostID, comment.ID), comment)
	})
}

// ListByPost retrieves all comments for a post, oldest first
func (r *BadgerCommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return scanPrefix(txn, commentPrefix(postID), func(val []byte) error {
			var comment models.Comment
			if err := unmarshalEntity(val, &comment); err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			comments = append(comments, &comment)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortBy(comments, func(a, b *models.Comment) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return comments, nil
}

// DeleteByPost removes every comment attached to postID.
func (r *BadgerCommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		prefix := commentPrefix(postID)
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		var keys [][]byte
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
