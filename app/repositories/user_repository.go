package repositories

import (
	"context"
	"fmt"
	"strings"

	"agricare/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

func emailKey(email string) []byte {
	return []byte(EmailKeyPrefix + strings.ToLower(email))
}

// Create creates a new user and an email index entry pointing at it.
// Fails if the email is already registered.
func (r *BadgerUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		// Enforce unique email
		_, err := txn.Get(emailKey(user.Email))
		if err == nil {
			return fmt.Errorf("email already registered: %s", user.Email)
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id
		user.BeforeCreate()

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, user.ID))
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(emailKey(user.Email), []byte(fmt.Sprintf("%d", user.ID)))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user via the email index
func (r *BadgerUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey(email))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id int
		if err := item.Value(func(val []byte) error {
			_, err := fmt.Sscanf(string(val), "%d", &id)
			return err
		}); err != nil {
			return err
		}

		userItem, err := txn.Get([]byte(fmt.Sprintf("%s%d", UserKeyPrefix, id)))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return userItem.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}
