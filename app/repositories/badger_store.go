package repositories

import (
	"github.com/dgraph-io/badger/v4"
)

// BadgerStore is the embedded document store backend. An empty path
// opens an in-memory database, which tests rely on for isolation.
type BadgerStore struct {
	db *badger.DB

	posts    *BadgerPostRepository
	comments *BadgerCommentRepository
	replies  *BadgerReplyRepository
	users    *BadgerUserRepository
	listings *BadgerListingRepository
	buyReqs  *BadgerBuyRequestRepository
}

// OpenBadger opens the Badger database at path and wires the
// repositories on top of it.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{
		db:       db,
		posts:    NewBadgerPostRepository(db),
		comments: NewBadgerCommentRepository(db),
		replies:  NewBadgerReplyRepository(db),
		users:    NewBadgerUserRepository(db),
		listings: NewBadgerListingRepository(db),
		buyReqs:  NewBadgerBuyRequestRepository(db),
	}, nil
}

func (s *BadgerStore) Posts() PostRepository             { return s.posts }
func (s *BadgerStore) Comments() CommentRepository       { return s.comments }
func (s *BadgerStore) Replies() ReplyRepository          { return s.replies }
func (s *BadgerStore) Users() UserRepository             { return s.users }
func (s *BadgerStore) Listings() ListingRepository       { return s.listings }
func (s *BadgerStore) BuyRequests() BuyRequestRepository { return s.buyReqs }

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
