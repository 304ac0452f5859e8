package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post is a top-level community board item. Posts are write-once:
// they are never edited or deleted through this application.
type Post struct {
	ID         int        `json:"id" bson:"id" validate:"gte=0"`
	Content    string     `json:"content" bson:"content" validate:"required,max=5000"`
	AuthorID   int        `json:"authorId" bson:"authorId" validate:"required,gte=1"`
	AuthorName string     `json:"authorName" bson:"authorName" validate:"required,max=100"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	Comments   []*Comment `json:"comments,omitempty" bson:"-" validate:"-"`
}

// Comment belongs to exactly one Post.
type Comment struct {
	ID         int       `json:"id" bson:"id" validate:"gte=0"`
	PostID     int       `json:"postId" bson:"postId" validate:"required,gte=1"`
	Content    string    `json:"content" bson:"content" validate:"required,max=2000"`
	AuthorID   int       `json:"authorId" bson:"authorId" validate:"required,gte=1"`
	AuthorName string    `json:"authorName" bson:"authorName" validate:"required,max=100"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	Replies    []*Reply  `json:"replies,omitempty" bson:"-" validate:"-"`
}

// Reply belongs to exactly one Comment. PostID is carried alongside
// CommentID so the storage path can be built without an extra lookup.
type Reply struct {
	ID         int       `json:"id" bson:"id" validate:"gte=0"`
	PostID     int       `json:"postId" bson:"postId" validate:"required,gte=1"`
	CommentID  int       `json:"commentId" bson:"commentId" validate:"required,gte=1"`
	Content    string    `json:"content" bson:"content" validate:"required,max=2000"`
	AuthorID   int       `json:"authorId" bson:"authorId" validate:"required,gte=1"`
	AuthorName string    `json:"authorName" bson:"authorName" validate:"required,max=100"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
