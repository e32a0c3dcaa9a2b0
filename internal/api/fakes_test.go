package api

import (
	"context"
	"sort"
	"time"

	"github.com/calloway/quill-api/internal/domain"
	"github.com/calloway/quill-api/internal/store"
	"github.com/calloway/quill-api/internal/validation"
)

// In-memory stores backing the handler tests. They honor the pagination
// window and record the last relation delta they were asked to apply.

type fakeUserStore struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

type fakePostStore struct {
	posts     map[int64]*domain.Post
	nextID    int64
	lastDelta *domain.RelationDelta
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[int64]*domain.Post{}, nextID: 1}
}

func (f *fakePostStore) Create(_ context.Context, post *domain.Post, categories *domain.RelationDelta) error {
	for _, p := range f.posts {
		if p.Title == post.Title {
			return store.ErrTitleExists
		}
	}
	post.ID = f.nextID
	f.nextID++
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	f.posts[post.ID] = post
	f.lastDelta = categories
	return nil
}

func (f *fakePostStore) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}
	return p, nil
}

func (f *fakePostStore) List(_ context.Context, w validation.Window) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sortPosts(out, w)
	return window(out, w), nil
}

// sortPosts orders the slice per the window. Ids are assigned monotonically,
// so id order stands in for creation-date order.
func sortPosts(posts []domain.Post, w validation.Window) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if w.Order == validation.OrderDesc {
			a, b = b, a
		}
		if w.OrderBy == validation.OrderByTitle {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})
}

func (f *fakePostStore) ListByCategory(ctx context.Context, _ int64, w validation.Window) ([]domain.Post, error) {
	return f.List(ctx, w)
}

func (f *fakePostStore) Update(_ context.Context, post *domain.Post, categories *domain.RelationDelta) error {
	if _, ok := f.posts[post.ID]; !ok {
		return store.ErrPostNotFound
	}
	f.posts[post.ID] = post
	f.lastDelta = categories
	return nil
}

func (f *fakePostStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return store.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) TitleTaken(_ context.Context, title string, excludeID int64) (bool, error) {
	for _, p := range f.posts {
		if p.Title == title && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.posts[id]
	return ok, nil
}

func (f *fakePostStore) ExistsByTitle(_ context.Context, title string) (bool, error) {
	for _, p := range f.posts {
		if p.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePostStore) CategoryNames(_ context.Context, id int64) ([]string, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	var names []string
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return names, nil
}

type fakeCategoryStore struct {
	categories map[int64]*domain.Category
	postTitles map[int64][]string
	nextID     int64
	lastDelta  *domain.RelationDelta
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{
		categories: map[int64]*domain.Category{},
		postTitles: map[int64][]string{},
		nextID:     1,
	}
}

func (f *fakeCategoryStore) Create(_ context.Context, category *domain.Category, posts *domain.RelationDelta) error {
	for _, c := range f.categories {
		if c.Name == category.Name {
			return store.ErrCategoryNameExists
		}
	}
	category.ID = f.nextID
	f.nextID++
	category.CreatedAt = time.Now().UTC()
	f.categories[category.ID] = category
	f.lastDelta = posts
	return nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryStore) List(_ context.Context, w validation.Window) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, w), nil
}

func (f *fakeCategoryStore) Update(_ context.Context, category *domain.Category, posts *domain.RelationDelta) error {
	if _, ok := f.categories[category.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	f.categories[category.ID] = category
	f.lastDelta = posts
	return nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryStore) NameTaken(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, c := range f.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeCategoryStore) PostTitles(_ context.Context, id int64) ([]string, error) {
	return f.postTitles[id], nil
}

type fakeCommentStore struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[int64]*domain.Comment{}, nextID: 1}
}

func (f *fakeCommentStore) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, store.ErrCommentNotFound
	}
	return c, nil
}

func (f *fakeCommentStore) List(_ context.Context, w validation.Window) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range f.comments {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, w), nil
}

func (f *fakeCommentStore) ListByPost(_ context.Context, postID int64, w validation.Window) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, w), nil
}

func (f *fakeCommentStore) Update(_ context.Context, comment *domain.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return store.ErrCommentNotFound
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return store.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.comments[id]
	return ok, nil
}

// window applies the pagination window to an already-ordered slice.
func window[T any](items []T, w validation.Window) []T {
	if w.Start >= len(items) {
		return nil
	}
	end := w.End
	if end > len(items) {
		end = len(items)
	}
	return items[w.Start:end]
}

// Compile-time checks keeping the fakes aligned with the store interfaces.
var (
	_ store.UserStore     = (*fakeUserStore)(nil)
	_ store.PostStore     = (*fakePostStore)(nil)
	_ store.CategoryStore = (*fakeCategoryStore)(nil)
	_ store.CommentStore  = (*fakeCommentStore)(nil)
)
