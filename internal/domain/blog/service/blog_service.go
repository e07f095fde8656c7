package service

import (
	"errors"

	"lms_commerce/internal/domain/blog/model"
	"lms_commerce/internal/domain/blog/repository"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostNotPublished = errors.New("post is not published")
)

type BlogService interface {
	CreatePost(authorID, title, content, coverURL string, tagNames []string) (*model.Post, error)
	PublishPost(postID string) error
	ArchivePost(postID string) error
	GetPost(id string) (*model.Post, error)
	GetFeed(tag string, page, limit int) ([]model.Post, int64, error)
	GetDrafts(page, limit int) ([]model.Post, int64, error)

	AddComment(userID, postID, content, parentID string) (*model.Comment, error)
	GetPostComments(postID string, page, limit int) ([]model.Comment, int64, error)

	ToggleLike(userID, targetID, targetType string) (bool, error)

	GetTagList(keyword string, page, limit int) ([]model.Tag, int64, error)
	DeleteTag(id string) error
}

type blogService struct {
	repo repository.BlogRepository
}

func NewBlogService(repo repository.BlogRepository) BlogService {
	return &blogService{repo: repo}
}

// CreatePost stores a draft. Tags are matched by name and created on
// first use.
func (s *blogService) CreatePost(authorID, title, content, coverURL string, tagNames []string) (*model.Post, error) {
	var tags []model.Tag
	for _, name := range tagNames {
		tag, err := s.repo.GetTagByName(name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = &model.Tag{Name: name}
				if err := s.repo.CreateTag(tag); err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		tags = append(tags, *tag)
	}

	post := &model.Post{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		CoverURL: coverURL,
		Status:   model.PostDraft,
		Tags:     tags,
	}

	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *blogService) PublishPost(postID string) error {
	if _, err := s.getPost(postID); err != nil {
		return err
	}
	return s.repo.UpdatePostStatus(postID, model.PostPublished)
}

func (s *blogService) ArchivePost(postID string) error {
	if _, err := s.getPost(postID); err != nil {
		return err
	}
	return s.repo.UpdatePostStatus(postID, model.PostArchived)
}

func (s *blogService) getPost(id string) (*model.Post, error) {
	post, err := s.repo.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// GetPost returns a published post. Drafts stay invisible to readers.
func (s *blogService) GetPost(id string) (*model.Post, error) {
	post, err := s.getPost(id)
	if err != nil {
		return nil, err
	}
	if post.Status != model.PostPublished {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *blogService) GetFeed(tag string, page, limit int) ([]model.Post, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetPosts(model.PostPublished, tag, offset, limit)
}

func (s *blogService) GetDrafts(page, limit int) ([]model.Post, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetPosts(model.PostDraft, "", offset, limit)
}

// AddComment comments on a published post. Replies nest at most two
// levels; a reply to a reply attaches to the same root.
func (s *blogService) AddComment(userID, postID, content, parentID string) (*model.Comment, error) {
	post, err := s.getPost(postID)
	if err != nil {
		return nil, err
	}
	if post.Status != model.PostPublished {
		return nil, ErrPostNotPublished
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
		Level:   1,
	}

	if parentID != "" {
		parent, err := s.repo.GetCommentByID(parentID)
		if err != nil {
			return nil, errors.New("parent comment not found")
		}
		if parent.PostID != postID {
			return nil, errors.New("parent comment does not belong to this post")
		}

		comment.ParentID = parentID
		comment.Level = 2
		if parent.Level == 1 {
			comment.RootID = parent.ID
		} else {
			comment.RootID = parent.RootID
		}
	}

	if err := s.repo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *blogService) GetPostComments(postID string, page, limit int) ([]model.Comment, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetCommentsByPostID(postID, offset, limit)
}

// ToggleLike flips the caller's like. Returns the resulting state.
func (s *blogService) ToggleLike(userID, targetID, targetType string) (bool, error) {
	liked, err := s.repo.HasLiked(userID, targetID, targetType)
	if err != nil {
		return false, err
	}

	if liked {
		return false, s.repo.DeleteLike(userID, targetID, targetType)
	}

	return true, s.repo.CreateLike(&model.Like{
		UserID:     userID,
		TargetID:   targetID,
		TargetType: targetType,
	})
}

func (s *blogService) GetTagList(keyword string, page, limit int) ([]model.Tag, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetTags(keyword, offset, limit)
}

func (s *blogService) DeleteTag(id string) error {
	return s.repo.DeleteTag(id)
}
