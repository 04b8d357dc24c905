package mock

import (
	"context"
	"sort"
	"strings"
	"sync"

	"quill/app/models"
	"quill/app/repositories"
)

// NewStore returns a Store backed entirely by in-memory repositories.
func NewStore() *repositories.Store {
	return &repositories.Store{
		Users:    NewUserRepository(),
		Admins:   NewAdminRepository(),
		Posts:    NewPostRepository(),
		Comments: NewCommentRepository(),
	}
}

type UserRepository struct {
	users map[string]models.User
	mutex sync.RWMutex
}

type AdminRepository struct {
	admins map[string]models.Admin
	mutex  sync.RWMutex
}

type PostRepository struct {
	posts map[string]models.Post
	mutex sync.RWMutex
}

type CommentRepository struct {
	comments map[string][]models.Comment
	mutex    sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.User)}
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{admins: make(map[string]models.Admin)}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]models.Post)}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string][]models.Comment)}
}

// UserRepository implementation
func (m *UserRepository) Create(_ context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrDuplicate
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (m *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == models.NormalizeEmail(email) })
}

func (m *UserRepository) GetByVerificationToken(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, repositories.ErrNotFound
	}
	return m.find(func(u models.User) bool { return u.VerificationToken == token })
}

func (m *UserRepository) find(match func(models.User) bool) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, u := range m.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) List(_ context.Context) ([]*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		u := u
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (m *UserRepository) Update(_ context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *UserRepository) Delete(_ context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// Count reports how many users are stored.
func (m *UserRepository) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.users)
}

// AdminRepository implementation
func (m *AdminRepository) Create(_ context.Context, admin *models.Admin) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.admins[admin.UserID]; ok {
		return repositories.ErrDuplicate
	}
	m.admins[admin.UserID] = *admin
	return nil
}

func (m *AdminRepository) GetByUserID(_ context.Context, userID string) (*models.Admin, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	a, ok := m.admins[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &a, nil
}

func (m *AdminRepository) List(_ context.Context) ([]*models.Admin, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	admins := make([]*models.Admin, 0, len(m.admins))
	for _, a := range m.admins {
		a := a
		admins = append(admins, &a)
	}
	return admins, nil
}

// PostRepository implementation
func (m *PostRepository) Create(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.posts[post.ID]; ok {
		return repositories.ErrDuplicate
	}
	stored := *post
	stored.Comments = nil
	m.posts[post.ID] = stored
	return nil
}

func (m *PostRepository) GetByID(_ context.Context, id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (m *PostRepository) List(_ context.Context, limit, offset int) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		p := p
		posts = append(posts, &p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })

	if offset >= len(posts) {
		return []*models.Post{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (m *PostRepository) Update(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.posts[post.ID]; !ok {
		return repositories.ErrNotFound
	}
	stored := *post
	stored.Comments = nil
	m.posts[post.ID] = stored
	return nil
}

func (m *PostRepository) Delete(_ context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(_ context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.comments[comment.PostID] = append(m.comments[comment.PostID], *comment)
	return nil
}

func (m *CommentRepository) ListByPost(_ context.Context, postID string) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comments := make([]*models.Comment, 0, len(m.comments[postID]))
	for _, c := range m.comments[postID] {
		c := c
		comments = append(comments, &c)
	}
	return comments, nil
}

func (m *CommentRepository) DeleteByPost(_ context.Context, postID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.comments, postID)
	return nil
}

// Count reports how many comments are stored across all posts.
func (m *CommentRepository) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	n := 0
	for _, cs := range m.comments {
		n += len(cs)
	}
	return n
}
