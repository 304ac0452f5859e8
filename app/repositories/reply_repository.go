package repositories

import (
	"context"
	"fmt"
	"sort"

	"agricare/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerReplyRepository implements ReplyRepository using BadgerDB
type BadgerReplyRepository struct {
	db *badger.DB
}

// NewBadgerReplyRepository creates a new BadgerReplyRepository
func NewBadgerReplyRepository(db *badger.DB) *BadgerReplyRepository {
	return &BadgerReplyRepository{db: db}
}

// Create creates a new reply under its comment
func (r *BadgerReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	return r.db.Update(func(txn *badger.Txn) error {
		// Get next ID
		id, err := getNextID(txn, ReplySeqKey)
		if err != nil {
			return err
		}
		reply.ID = id
		reply.BeforeCreate()

		// Marshal reply
		data, err := marshalEntity(reply)
		if err != nil {
			return err
		}

		// Save reply keyed by the (postID, commentID) pair
		key := []byte(fmt.Sprintf("%s%d:%d:%d", ReplyKeyPrefix, reply.PostID, reply.CommentID, reply.ID))
		return txn.Set(key, data)
	})
}

// ListByComment retrieves all replies for a comment in insertion order
func (r *BadgerReplyRepository) ListByComment(ctx context.Context, postID, commentID int) ([]*models.Reply, error) {
	var replies []*models.Reply
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%d:%d:", ReplyKeyPrefix, postID, commentID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var reply models.Reply
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &reply)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal reply: %v", err)
			}
			replies = append(replies, &reply)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(replies, func(i, j int) bool {
		return replies[i].ID < replies[j].ID
	})
	return replies, nil
}
