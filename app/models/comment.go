package models

import (
	"errors"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

// AddReply attaches a reply to the comment
func (c *Comment) AddReply(reply *Reply) error {
	if reply == nil {
		return errors.New("reply cannot be nil")
	}

	reply.PostID = c.PostID
	reply.CommentID = c.ID
	c.Replies = append(c.Replies, reply)
	return nil
}
