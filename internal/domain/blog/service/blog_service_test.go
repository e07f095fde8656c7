package service

import (
	"testing"

	"lms_commerce/internal/domain/blog/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockBlogRepository is a mock of BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) CreatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockBlogRepository) GetPostByID(id string) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockBlogRepository) GetPosts(status, tag string, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(status, tag, offset, limit)
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) UpdatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockBlogRepository) UpdatePostStatus(id string, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockBlogRepository) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockBlogRepository) GetCommentByID(id string) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockBlogRepository) GetCommentsByPostID(postID string, offset, limit int) ([]model.Comment, int64, error) {
	args := m.Called(postID, offset, limit)
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) CreateLike(like *model.Like) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockBlogRepository) DeleteLike(userID, targetID, targetType string) error {
	args := m.Called(userID, targetID, targetType)
	return args.Error(0)
}

func (m *MockBlogRepository) HasLiked(userID, targetID, targetType string) (bool, error) {
	args := m.Called(userID, targetID, targetType)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) CountLikes(targetID, targetType string) (int64, error) {
	args := m.Called(targetID, targetType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) GetTagByName(name string) (*model.Tag, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockBlogRepository) CreateTag(tag *model.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockBlogRepository) GetTags(keyword string, offset, limit int) ([]model.Tag, int64, error) {
	args := m.Called(keyword, offset, limit)
	return args.Get(0).([]model.Tag), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) DeleteTag(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func publishedPost(id string) *model.Post {
	p := &model.Post{Title: "Release notes", Status: model.PostPublished}
	p.ID = id
	return p
}

func TestCreatePost(t *testing.T) {
	t.Run("New tags are created on first use", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := NewBlogService(repo)

		repo.On("GetTagByName", "golang").Return(nil, gorm.ErrRecordNotFound)
		repo.On("CreateTag", mock.MatchedBy(func(tag *model.Tag) bool {
			return tag.Name == "golang"
		})).Return(nil)
		repo.On("CreatePost", mock.MatchedBy(func(post *model.Post) bool {
			return post.Status == model.PostDraft && len(post.Tags) == 1
		})).Return(nil)

		post, err := svc.CreatePost("admin-1", "Release notes", "body", "", []string{"golang"})

		assert.NoError(t, err)
		assert.Equal(t, model.PostDraft, post.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Existing tags are reused", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := NewBlogService(repo)

		existing := &model.Tag{Name: "golang"}
		existing.ID = "tag-1"
		repo.On("GetTagByName", "golang").Return(existing, nil)
		repo.On("CreatePost", mock.Anything).Return(nil)

		_, err := svc.CreatePost("admin-1", "Release notes", "body", "", []string{"golang"})

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "CreateTag")
	})
}

func TestGetPost(t *testing.T) {
	t.Run("Draft posts are invisible to readers", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := NewBlogService(repo)

		draft := publishedPost("post-1")
		draft.Status = model.PostDraft
		repo.On("GetPostByID", "post-1").Return(draft, nil)

		post, err := svc.GetPost("post-1")

		assert.ErrorIs(t, err, ErrPostNotFound)
		assert.Nil(t, post)
	})
}

func TestAddComment(t *testing.T) {
	t.Run("Reply to a first-level comment nests at level two", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := NewBlogService(repo)

		parent := &model.Comment{PostID: "post-1", Level: 1}
		parent.ID = "comment-1"

		repo.On("GetPostByID", "post-1").Return(publishedPost("post-1"), nil)
		repo.On("GetCommentByID", "comment-1").Return(parent, nil)
		repo.On("CreateComment", mock.MatchedBy(func(c *model.Comment) bool {
			return c.Level == 2 && c.RootID == "comment-1" && c.ParentID == "comment-1"
		})).Return(nil)

		comment, err := svc.AddComment("user-1", "post-1", "nice", "comment-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, comment.Level)
		repo.AssertExpectations(t)
	})

	t.Run("Reply to a reply keeps the original root", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := NewBlogService(repo)

		parent := &model.Comment{PostID: "post-1", Level: 2, RootID: "comment-1"}
		parent.ID = "comment-2"

		repo.On("GetPostByID", "post-1").Return(publishedPost("post-1"), nil)
		repo.On("GetCommentByID", "comment-2").Return(parent, nil)
		repo.On("CreateComment", mock.MatchedBy(func(c *model.Comment) bool {
			return c.Level == 2 && c.RootID == "comment-1"
		})).Return(nil)

		_, err := svc.AddComment("user-1", "post-1", "agreed", "comment-2")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Parent comment from another post is rejected", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := NewBlogService(repo)

		parent := &model.Comment{PostID: "post-2", Level: 1}
		parent.ID = "comment-1"

		repo.On("GetPostByID", "post-1").Return(publishedPost("post-1"), nil)
		repo.On("GetCommentByID", "comment-1").Return(parent, nil)

		_, err := svc.AddComment("user-1", "post-1", "hm", "comment-1")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "CreateComment")
	})
}

func TestToggleLike(t *testing.T) {
	t.Run("First toggle likes", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := NewBlogService(repo)

		repo.On("HasLiked", "user-1", "post-1", "post").Return(false, nil)
		repo.On("CreateLike", mock.Anything).Return(nil)

		liked, err := svc.ToggleLike("user-1", "post-1", "post")

		assert.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("Second toggle unlikes", func(t *testing.T) {
		repo := new(MockBlogRepository)
		svc := NewBlogService(repo)

		repo.On("HasLiked", "user-1", "post-1", "post").Return(true, nil)
		repo.On("DeleteLike", "user-1", "post-1", "post").Return(nil)

		liked, err := svc.ToggleLike("user-1", "post-1", "post")

		assert.NoError(t, err)
		assert.False(t, liked)
	})
}
