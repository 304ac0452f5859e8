package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"agricare/app/models"
	"agricare/app/repositories"
)

// CommunityService handles business logic for the community board:
// posts, comments under posts, and replies under comments.
type CommunityService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	replyRepo   repositories.ReplyRepository
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, replyRepo repositories.ReplyRepository) *CommunityService {
	return &CommunityService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		replyRepo:   replyRepo,
	}
}

// CanComment reports whether a user may comment on a post. Authors do
// not comment on their own posts.
func CanComment(post *models.Post, userID int) bool {
	return !post.OwnedBy(userID)
}

// CreatePost creates a new community post authored by actor.
func (s *CommunityService) CreatePost(ctx context.Context, actor *models.User, content string) (*models.Post, error) {
	if actor.Role != models.RoleFarmer {
		return nil, ErrFarmerOnly
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	post := &models.Post{
		Content:    content,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return post, nil
}

// CreateComment creates a comment under a post. The actor must not be
// the post's author.
func (s *CommunityService) CreateComment(ctx context.Context, actor *models.User, postID int, content string) (*models.Comment, error) {
	if actor.Role != models.RoleFarmer {
		return nil, ErrFarmerOnly
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	// Verify the parent exists and check ownership in the write path
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post not found: %v", err)
	}
	if !CanComment(post, actor.ID) {
		return nil, ErrOwnPost
	}

	comment := &models.Comment{
		PostID:     postID,
		Content:    content,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return comment, nil
}

// CreateReply creates a reply under a comment. Any farmer may reply,
// including the post's author.
func (s *CommunityService) CreateReply(ctx context.Context, actor *models.User, postID, commentID int, content string) (*models.Reply, error) {
	if actor.Role != models.RoleFarmer {
		return nil, ErrFarmerOnly
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	// Verify the parent comment exists under the given post
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post not found: %v", err)
	}
	found := false
	for _, c := range comments {
		if c.ID == commentID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("comment %d not found under post %d", commentID, postID)
	}

	reply := &models.Reply{
		PostID:     postID,
		CommentID:  commentID,
		Content:    content,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return reply, nil
}

// BuildContentTree re-reads the whole board and assembles the
// denormalized post -> comments -> replies tree. Posts are ordered by
// creation time, newest first; posts not yet stamped by the backend
// sort last. Comments and replies stay in insertion order. Any read
// failure fails the whole build so callers never see a torn tree.
func (s *CommunityService) BuildContentTree(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	for _, post := range posts {
		comments, err := s.commentRepo.ListByPost(ctx, post.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: comments for post %d: %v", ErrLoad, post.ID, err)
		}
		for _, comment := range comments {
			replies, err := s.replyRepo.ListByComment(ctx, post.ID, comment.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: replies for comment %d: %v", ErrLoad, comment.ID, err)
			}
			comment.Replies = replies
		}
		post.Comments = comments
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].CreatedAt, posts[j].CreatedAt
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})

	return posts, nil
}
