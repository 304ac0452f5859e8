package repositories

import (
	"context"

	"agricare/app/models"
)

// PostRepository defines the interface for community post data access.
// Posts are create/read only; the board has no edit or delete surface.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
}

// ReplyRepository defines the interface for reply data access
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	ListByComment(ctx context.Context, postID, commentID int) ([]*models.Reply, error)
}

// UserRepository defines the interface for account data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ListingRepository defines the interface for crop listing data access
type ListingRepository interface {
	Create(ctx context.Context, listing *models.CropListing) error
	List(ctx context.Context) ([]*models.CropListing, error)
	ListBySeller(ctx context.Context, sellerID int) ([]*models.CropListing, error)
}

// BuyRequestRepository defines the interface for buy request data access
type BuyRequestRepository interface {
	Create(ctx context.Context, req *models.BuyRequest) error
	ListBySeller(ctx context.Context, sellerID int) ([]*models.BuyRequest, error)
	ListByBuyer(ctx context.Context, buyerID int) ([]*models.BuyRequest, error)
}

// Store bundles the repositories behind a single backend so callers
// can swap the embedded Badger store for the hosted Mongo one.
type Store interface {
	Posts() PostRepository
	Comments() CommentRepository
	Replies() ReplyRepository
	Users() UserRepository
	Listings() ListingRepository
	BuyRequests() BuyRequestRepository
	Close() error
}
