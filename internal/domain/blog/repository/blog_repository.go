package repository

import (
	"lms_commerce/internal/domain/blog/model"

	"gorm.io/gorm"
)

type BlogRepository interface {
	CreatePost(post *model.Post) error
	GetPostByID(id string) (*model.Post, error)
	GetPosts(status, tag string, offset, limit int) ([]model.Post, int64, error)
	UpdatePost(post *model.Post) error
	UpdatePostStatus(id string, status string) error

	CreateComment(comment *model.Comment) error
	GetCommentByID(id string) (*model.Comment, error)
	GetCommentsByPostID(postID string, offset, limit int) ([]model.Comment, int64, error)

	CreateLike(like *model.Like) error
	DeleteLike(userID, targetID, targetType string) error
	HasLiked(userID, targetID, targetType string) (bool, error)
	CountLikes(targetID, targetType string) (int64, error)

	GetTagByName(name string) (*model.Tag, error)
	CreateTag(tag *model.Tag) error
	GetTags(keyword string, offset, limit int) ([]model.Tag, int64, error)
	DeleteTag(id string) error
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// --- Post ---

func (r *blogRepository) CreatePost(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *blogRepository) GetPostByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Preload("Tags").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) GetPosts(status, tag string, offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.db.Model(&model.Post{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if tag != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Tags").Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *blogRepository) UpdatePost(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *blogRepository) UpdatePostStatus(id string, status string) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).Update("status", status).Error
}

// --- Comment ---

func (r *blogRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *blogRepository) GetCommentByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *blogRepository) GetCommentsByPostID(postID string, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.db.Model(&model.Comment{}).Where("post_id = ?", postID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// --- Like ---

func (r *blogRepository) CreateLike(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *blogRepository) DeleteLike(userID, targetID, targetType string) error {
	return r.db.Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).Delete(&model.Like{}).Error
}

func (r *blogRepository) HasLiked(userID, targetID, targetType string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).Count(&count).Error
	return count > 0, err
}

func (r *blogRepository) CountLikes(targetID, targetType string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("target_id = ? AND target_type = ?", targetID, targetType).Count(&count).Error
	return count, err
}

// --- Tag ---

func (r *blogRepository) GetTagByName(name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *blogRepository) CreateTag(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

func (r *blogRepository) GetTags(keyword string, offset, limit int) ([]model.Tag, int64, error) {
	var tags []model.Tag
	var total int64

	query := r.db.Model(&model.Tag{})
	if keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&tags).Error; err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *blogRepository) DeleteTag(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Tag{}).Error
}
