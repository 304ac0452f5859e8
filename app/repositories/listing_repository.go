package repositories

import (
	"context"
	"fmt"
	"sort"

	"agricare/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerListingRepository implements ListingRepository using BadgerDB
type BadgerListingRepository struct {
	db *badger.DB
}

// NewBadgerListingRepository creates a new BadgerListingRepository
func NewBadgerListingRepository(db *badger.DB) *BadgerListingRepository {
	return &BadgerListingRepository{db: db}
}

// Create creates a new crop listing
func (r *BadgerListingRepository) Create(ctx context.Context, listing *models.CropListing) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, ListingSeqKey)
		if err != nil {
			return err
		}
		listing.ID = id
		listing.BeforeCreate()

		data, err := marshalEntity(listing)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", ListingKeyPrefix, listing.ID))
		return txn.Set(key, data)
	})
}

// List retrieves all listings in insertion order
func (r *BadgerListingRepository) List(ctx context.Context) ([]*models.CropListing, error) {
	return r.scan(func(*models.CropListing) bool { return true })
}

// ListBySeller retrieves all listings created by a seller
func (r *BadgerListingRepository) ListBySeller(ctx context.Context, sellerID int) ([]*models.CropListing, error) {
	return r.scan(func(l *models.CropListing) bool { return l.SellerID == sellerID })
}

func (r *BadgerListingRepository) scan(keep func(*models.CropListing) bool) ([]*models.CropListing, error) {
	var listings []*models.CropListing
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ListingKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var listing models.CropListing
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &listing)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal listing: %v", err)
			}
			if keep(&listing) {
				listings = append(listings, &listing)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].ID < listings[j].ID
	})
	return listings, nil
}
