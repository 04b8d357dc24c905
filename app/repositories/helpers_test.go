package repositories

import (
	"context"
	"testing"
	"time"

	"quill/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(email string) *models.User {
	u := &models.User{
		Name:         "Doe",
		FirstName:    "Jane",
		Email:        email,
		Country:      "US",
		PasswordHash: "hash",
	}
	u.BeforeCreate()
	return u
}

func newTestPost(owner, title string, createdAt time.Time) *models.Post {
	p := &models.Post{Title: title, Content: "content of " + title, UserID: owner, CreatedAt: createdAt}
	p.BeforeCreate()
	return p
}

var ctx = context.Background()

func newTestAdmin(userID string) *models.Admin {
	return models.NewAdmin(userID)
}
