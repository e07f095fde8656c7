package model

import (
	baseModel "lms_commerce/pkg/model"
)

// Post is an article on the learning platform: announcements, course
// updates, study guides.
type Post struct {
	baseModel.BaseModel
	AuthorID string `gorm:"type:uuid;index;not null" json:"authorId"`
	Title    string `gorm:"type:varchar(200);not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	CoverURL string `gorm:"type:varchar(500)" json:"coverUrl"`
	Status   string `gorm:"type:varchar(20);default:'DRAFT';index" json:"status"`

	Comments []Comment `json:"comments,omitempty"`
	Tags     []Tag     `gorm:"many2many:post_tags;" json:"tags,omitempty"`
}

// Post statuses.
const (
	PostDraft     = "DRAFT"
	PostPublished = "PUBLISHED"
	PostArchived  = "ARCHIVED"
)

// Tag groups posts by subject.
type Tag struct {
	baseModel.BaseModel
	Name string `gorm:"type:varchar(50);unique;not null" json:"name"`
}

// Comment is a reader comment on a published post. Replies are capped at
// two levels; RootID points at the first-level ancestor for cheap listing.
type Comment struct {
	baseModel.BaseModel
	PostID   string `gorm:"type:uuid;index;not null" json:"postId"`
	UserID   string `gorm:"type:uuid;not null" json:"userId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ParentID string `gorm:"type:uuid" json:"parentId"`
	RootID   string `gorm:"type:uuid;index" json:"rootId"`
	Level    int    `gorm:"default:1" json:"level"`
}

// Like marks a user's like on a post or a comment.
type Like struct {
	baseModel.BaseModel
	UserID     string `gorm:"type:uuid;index;not null" json:"userId"`
	TargetID   string `gorm:"type:uuid;index;not null" json:"targetId"`
	TargetType string `gorm:"type:varchar(20);not null" json:"targetType"` // post, comment
}
